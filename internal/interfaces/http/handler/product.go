package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	appbook "github.com/pricebook/backend/internal/application/pricebook"
	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/pricebook/backend/internal/infrastructure/export"
)

// ProductHandler serves the price-book list and the single-item editor.
type ProductHandler struct {
	BaseHandler
	catalog *appbook.CatalogService
	editor  *appbook.EditorService
	now     func() time.Time
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalog *appbook.CatalogService, editor *appbook.EditorService) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		editor:  editor,
		now:     time.Now,
	}
}

func (h *ProductHandler) filtered(c *gin.Context, f appbook.ProductFilter) ([]pricebook.Product, bool) {
	category, err := pricebook.ParseSelector(f.Category)
	if err != nil {
		h.HandleError(c, err)
		return nil, false
	}
	return h.catalog.Filter(c.Request.Context(), f.Query, category), true
}

// List godoc
// @ID           listProducts
// @Summary      List products
// @Description  Returns the products matching the search text and category, newest first, each with its margin
// @Tags         products
// @Produce      json
// @Param        q        query string false "Case-insensitive text matched against name and remarks"
// @Param        category query string false "Category code or label; All or empty selects every category"
// @Success      200 {object} APIResponse[[]pricebook.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var filter appbook.ProductFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	products, ok := h.filtered(c, filter)
	if !ok {
		return
	}
	h.SuccessWithTotal(c, appbook.ToProductResponses(products), len(products))
}

// Stats godoc
// @ID           getProductStats
// @Summary      Get price-book statistics
// @Description  Item count, summed unit cost and the average margin over the whole price book
// @Tags         products
// @Produce      json
// @Success      200 {object} APIResponse[pricebook.Stats]
// @Router       /products/stats [get]
func (h *ProductHandler) Stats(c *gin.Context) {
	h.Success(c, h.catalog.Stats(c.Request.Context()))
}

// Export godoc
// @ID           exportProducts
// @Summary      Export products
// @Description  Downloads the filtered list as CSV or XLSX. The CSV can be imported again through /reviews/csv.
// @Tags         products
// @Produce      text/csv
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        q        query string false "Search text"
// @Param        category query string false "Category selector"
// @Param        format   query string false "csv (default) or xlsx" Enums(csv, xlsx)
// @Success      200 {file} file
// @Failure      400 {object} ErrorResponse
// @Router       /products/export [get]
func (h *ProductHandler) Export(c *gin.Context) {
	var filter appbook.ExportFilter
	if !h.BindQuery(c, &filter) {
		return
	}
	format, err := export.ParseFormat(filter.Format)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	products, ok := h.filtered(c, filter.ProductFilter)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, products); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+format.Filename(h.now())+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// Get godoc
// @ID           getProduct
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} APIResponse[pricebook.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, appbook.ToProductResponse(p))
}

// Create godoc
// @ID           createProduct
// @Summary      Create a product
// @Description  Adds a product at the top of the list. The name is required; syncUnitPrices fills unit prices from case prices first.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body pricebook.ProductRequest true "Product form"
// @Success      201 {object} APIResponse[pricebook.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req appbook.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	fields, err := req.ToFields()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	p, err := h.editor.Create(c.Request.Context(), fields, req.SyncUnitPrices)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, appbook.ToProductResponse(p))
}

// Update godoc
// @ID           updateProduct
// @Summary      Replace a product
// @Description  Overwrites every editable field from the full editor form
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id      path string                  true "Product ID"
// @Param        request body pricebook.ProductRequest true "Product form"
// @Success      200 {object} APIResponse[pricebook.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	var req appbook.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	fields, err := req.ToFields()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	p, err := h.editor.Replace(c.Request.Context(), c.Param("id"), fields, req.SyncUnitPrices)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, appbook.ToProductResponse(p))
}

// Patch godoc
// @ID           patchProduct
// @Summary      Update product fields
// @Description  Changes only the named fields; null clears a price. Numbers that do not parse leave the field unset.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id      path string                       true "Product ID"
// @Param        request body pricebook.PatchProductRequest true "Fields to change"
// @Success      200 {object} APIResponse[pricebook.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /products/{id} [patch]
func (h *ProductHandler) Patch(c *gin.Context) {
	var req appbook.PatchProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	p, err := h.editor.Update(c.Request.Context(), c.Param("id"), pricebook.Patch(req.Fields), req.SyncUnitPrices)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, appbook.ToProductResponse(p))
}

// Delete godoc
// @ID           deleteProduct
// @Summary      Delete a product
// @Description  Removes the product. Deleting an unknown id succeeds without changing anything.
// @Tags         products
// @Param        id path string true "Product ID"
// @Success      204
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	h.catalog.Delete(c.Request.Context(), c.Param("id"))
	h.NoContent(c)
}
