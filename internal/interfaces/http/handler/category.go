package handler

import (
	"github.com/gin-gonic/gin"
	appbook "github.com/pricebook/backend/internal/application/pricebook"
)

// CategoryHandler lists the category selector options.
type CategoryHandler struct {
	BaseHandler
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// List godoc
// @ID           listCategories
// @Summary      List categories
// @Description  Category codes with their display labels, starting with All
// @Tags         categories
// @Produce      json
// @Success      200 {object} APIResponse[[]pricebook.CategoryOption]
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	options := appbook.CategoryOptions()
	h.SuccessWithTotal(c, options, len(options))
}
