package handler

import (
	"github.com/gin-gonic/gin"
	appbook "github.com/pricebook/backend/internal/application/pricebook"
)

// PricingHandler exposes the price calculator to the editor form.
type PricingHandler struct {
	BaseHandler
	editor *appbook.EditorService
}

// NewPricingHandler creates a new PricingHandler
func NewPricingHandler(editor *appbook.EditorService) *PricingHandler {
	return &PricingHandler{editor: editor}
}

// Derive godoc
// @ID           derivePrices
// @Summary      Suggest unit prices
// @Description  Computes unit cost from case cost and quantity, and fills the unit wholesale price only when it is empty. Nothing is stored.
// @Tags         pricing
// @Accept       json
// @Produce      json
// @Param        request body pricebook.ProductRequest true "Current form values"
// @Success      200 {object} APIResponse[pricebook.DeriveResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /pricing/derive [post]
func (h *PricingHandler) Derive(c *gin.Context) {
	var req appbook.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}
	fields, err := req.ToFields()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	derived := h.editor.Derive(fields)
	h.Success(c, appbook.DeriveResponse{
		UnitCost:       derived.UnitCost,
		WholesalePrice: derived.WholesalePrice,
	})
}
