package handler

import (
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	appbook "github.com/pricebook/backend/internal/application/pricebook"
	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/pricebook/backend/internal/infrastructure/recognition"
)

// ReviewHandler drives the batch import review: open from a photo or a
// CSV sheet, correct rows, then confirm or cancel.
type ReviewHandler struct {
	BaseHandler
	reviews       *appbook.ReviewService
	maxImageBytes int64
}

// NewReviewHandler creates a new ReviewHandler. maxImageBytes <= 0 leaves
// image size to the request body limit.
func NewReviewHandler(reviews *appbook.ReviewService, maxImageBytes int64) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, maxImageBytes: maxImageBytes}
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// readImage answers the request itself when it returns false.
func (h *ReviewHandler) readImage(c *gin.Context) (pricebook.Image, bool) {
	if !isMultipart(c) {
		var req appbook.RecognizeRequest
		if !h.BindJSON(c, &req) {
			return pricebook.Image{}, false
		}
		img, err := recognition.DecodeImage(req.Image, req.MIMEType, h.maxImageBytes)
		if err != nil {
			h.HandleError(c, err)
			return pricebook.Image{}, false
		}
		return img, true
	}

	fh, err := c.FormFile("image")
	if err != nil {
		h.HandleError(c, pricebook.ErrInvalidImage)
		return pricebook.Image{}, false
	}
	f, err := fh.Open()
	if err != nil {
		h.HandleError(c, pricebook.ErrInvalidImage)
		return pricebook.Image{}, false
	}
	defer f.Close()

	r := io.Reader(f)
	if h.maxImageBytes > 0 {
		r = io.LimitReader(f, h.maxImageBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		h.HandleError(c, pricebook.ErrInvalidImage)
		return pricebook.Image{}, false
	}
	img, err := recognition.NewImage(data, fh.Header.Get("Content-Type"), h.maxImageBytes)
	if err != nil {
		h.HandleError(c, err)
		return pricebook.Image{}, false
	}
	return img, true
}

// Recognize godoc
// @ID           recognizePriceSheet
// @Summary      Open a review from a photo
// @Description  Sends a price-sheet photo to the recognizer and opens a review with the rows found. Accepts multipart field "image" or JSON with base64 or a data URL. Only one recognition runs at a time.
// @Tags         reviews
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Param        image   formData file                       false "Price sheet photo"
// @Param        request body     pricebook.RecognizeRequest false "Base64 image"
// @Success      201 {object} APIResponse[pricebook.ReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /reviews/recognize [post]
func (h *ReviewHandler) Recognize(c *gin.Context) {
	img, ok := h.readImage(c)
	if !ok {
		return
	}
	review, err := h.reviews.StartFromImage(c.Request.Context(), img)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, appbook.ToReviewResponse(review))
}

// UploadCSV godoc
// @ID           uploadPriceSheet
// @Summary      Open a review from a CSV sheet
// @Description  Parses a UTF-8 CSV price sheet (multipart field "file") into review rows. Headers may be field names or the Chinese column titles used by the export.
// @Tags         reviews
// @Accept       mpfd
// @Produce      json
// @Param        file formData file true "CSV price sheet"
// @Success      201 {object} APIResponse[pricebook.ReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /reviews/csv [post]
func (h *ReviewHandler) UploadCSV(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "multipart field \"file\" is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		h.BadRequest(c, "uploaded file could not be read")
		return
	}
	defer f.Close()

	review, err := h.reviews.StartFromCSV(c.Request.Context(), f)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, appbook.ToReviewResponse(review))
}

// Get godoc
// @ID           getReview
// @Summary      Get an open review
// @Tags         reviews
// @Produce      json
// @Param        id path string true "Review ID"
// @Success      200 {object} APIResponse[pricebook.ReviewResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /reviews/{id} [get]
func (h *ReviewHandler) Get(c *gin.Context) {
	review, err := h.reviews.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, appbook.ToReviewResponse(review))
}

func rowIndex(c *gin.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, pricebook.ErrRowNotFound
	}
	return index, nil
}

// EditRow godoc
// @ID           editReviewRow
// @Summary      Edit a review row
// @Description  Replaces one field of one row. Numbers that do not parse leave the field unset.
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id      path string                   true "Review ID"
// @Param        index   path int                      true "Row index"
// @Param        request body pricebook.EditRowRequest true "Field and value"
// @Success      200 {object} APIResponse[pricebook.ReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /reviews/{id}/rows/{index} [patch]
func (h *ReviewHandler) EditRow(c *gin.Context) {
	index, err := rowIndex(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	var req appbook.EditRowRequest
	if !h.BindJSON(c, &req) {
		return
	}
	review, err := h.reviews.EditField(c.Request.Context(), c.Param("id"), index, req.Field, req.Value)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, appbook.ToReviewResponse(review))
}

// RemoveRow godoc
// @ID           removeReviewRow
// @Summary      Remove a review row
// @Tags         reviews
// @Produce      json
// @Param        id    path string true "Review ID"
// @Param        index path int    true "Row index"
// @Success      200 {object} APIResponse[pricebook.ReviewResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /reviews/{id}/rows/{index} [delete]
func (h *ReviewHandler) RemoveRow(c *gin.Context) {
	index, err := rowIndex(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	review, err := h.reviews.RemoveRow(c.Request.Context(), c.Param("id"), index)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, appbook.ToReviewResponse(review))
}

// Confirm godoc
// @ID           confirmReview
// @Summary      Confirm a review
// @Description  Adds every remaining row to the top of the price book in row order and closes the review. Blank names get a placeholder.
// @Tags         reviews
// @Produce      json
// @Param        id path string true "Review ID"
// @Success      200 {object} APIResponse[pricebook.ConfirmResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /reviews/{id}/confirm [post]
func (h *ReviewHandler) Confirm(c *gin.Context) {
	products, err := h.reviews.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, appbook.ConfirmResponse{
		Count:    len(products),
		Products: appbook.ToProductResponses(products),
	})
}

// Cancel godoc
// @ID           cancelReview
// @Summary      Cancel a review
// @Description  Discards the review. The price book is not changed.
// @Tags         reviews
// @Param        id path string true "Review ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) Cancel(c *gin.Context) {
	if err := h.reviews.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
