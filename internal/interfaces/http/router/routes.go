package router

import (
	"github.com/gin-gonic/gin"
	"github.com/pricebook/backend/internal/interfaces/http/handler"
)

// APIHandlers bundles the handlers served under the versioned API path.
type APIHandlers struct {
	Products   *handler.ProductHandler
	Pricing    *handler.PricingHandler
	Categories *handler.CategoryHandler
	Reviews    *handler.ReviewHandler
	System     *handler.SystemHandler
}

// PricebookGroups builds the API route groups. recognizeGuards run in
// front of the photo recognition endpoint only.
func PricebookGroups(h APIHandlers, recognizeGuards ...gin.HandlerFunc) []*DomainGroup {
	products := NewDomainGroup("products", "/products")
	products.GET("", h.Products.List).
		GET("/stats", h.Products.Stats).
		GET("/export", h.Products.Export).
		GET("/:id", h.Products.Get).
		POST("", h.Products.Create).
		PUT("/:id", h.Products.Update).
		PATCH("/:id", h.Products.Patch).
		DELETE("/:id", h.Products.Delete)

	pricing := NewDomainGroup("pricing", "/pricing")
	pricing.POST("/derive", h.Pricing.Derive)

	categories := NewDomainGroup("categories", "/categories")
	categories.GET("", h.Categories.List)

	recognize := append(append([]gin.HandlerFunc{}, recognizeGuards...), h.Reviews.Recognize)
	reviews := NewDomainGroup("reviews", "/reviews")
	reviews.POST("/recognize", recognize...).
		POST("/csv", h.Reviews.UploadCSV).
		GET("/:id", h.Reviews.Get).
		DELETE("/:id", h.Reviews.Cancel).
		POST("/:id/confirm", h.Reviews.Confirm)
	rows := reviews.Group("rows", "/:id/rows")
	rows.PATCH("/:index", h.Reviews.EditRow).
		DELETE("/:index", h.Reviews.RemoveRow)

	system := NewDomainGroup("system", "/system")
	system.GET("/info", h.System.GetSystemInfo).
		GET("/ping", h.System.Ping)

	return []*DomainGroup{products, pricing, categories, reviews, system}
}

// Registrars converts groups for Router.Register.
func Registrars(groups []*DomainGroup) []RouteRegistrar {
	out := make([]RouteRegistrar, len(groups))
	for i, g := range groups {
		out[i] = g
	}
	return out
}
