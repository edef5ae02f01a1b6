package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pricebook/backend/internal/interfaces/http/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func TestNewRouter(t *testing.T) {
	r := NewRouter(gin.New())

	assert.Equal(t, "v1", r.apiVersion)
	assert.Equal(t, "/api/v1", r.BasePath())
	assert.Empty(t, r.registrars)

	r = NewRouter(gin.New(), WithAPIVersion("v2"))
	assert.Equal(t, "/api/v2", r.BasePath())
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	group := NewDomainGroup("test", "/test")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	r.Use(func(c *gin.Context) {
		c.Header("X-API", "1")
		c.Next()
	})
	r.Register(group).Setup()
	engine.GET("/outside", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(engine, http.MethodGet, "/api/v1/test/ping")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, "1", w.Header().Get("X-API"))

	w = serve(engine, http.MethodGet, "/outside")
	assert.Empty(t, w.Header().Get("X-API"), "router middleware is scoped to the API group")
}

func TestDomainGroup(t *testing.T) {
	t.Run("name and prefix", func(t *testing.T) {
		g := NewDomainGroup("products", "/products")
		assert.Equal(t, "products", g.Name())
		assert.Equal(t, "/products", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
		g.GET("/items", ok).
			POST("/items", ok).
			PUT("/items/:id", ok).
			PATCH("/items/:id", ok).
			DELETE("/items/:id", ok)
		g.RegisterRoutes(engine.Group("/api/v1"))

		tests := []struct {
			method string
			path   string
		}{
			{http.MethodGet, "/api/v1/test/items"},
			{http.MethodPost, "/api/v1/test/items"},
			{http.MethodPut, "/api/v1/test/items/1"},
			{http.MethodPatch, "/api/v1/test/items/1"},
			{http.MethodDelete, "/api/v1/test/items/1"},
		}
		for _, tt := range tests {
			w := serve(engine, tt.method, tt.path)
			assert.Equal(t, http.StatusOK, w.Code, "%s %s", tt.method, tt.path)
			assert.Equal(t, tt.method, w.Body.String())
		}
	})

	t.Run("applies middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test")
		g.Use(func(c *gin.Context) {
			c.Header("X-Test-Middleware", "applied")
			c.Next()
		})
		g.GET("/items", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
		g.RegisterRoutes(engine.Group("/api/v1"))

		w := serve(engine, http.MethodGet, "/api/v1/test/items")
		assert.Equal(t, "applied", w.Header().Get("X-Test-Middleware"))
	})

	t.Run("subgroups and route listing", func(t *testing.T) {
		g := NewDomainGroup("reviews", "/reviews")
		g.GET("/:id", func(*gin.Context) {})
		rows := g.Group("rows", "/:id/rows")
		rows.DELETE("/:index", func(*gin.Context) {})

		assert.Equal(t, []Route{
			{Method: http.MethodGet, Path: "/reviews/:id"},
			{Method: http.MethodDelete, Path: "/reviews/:id/rows/:index"},
		}, g.Routes())
	})
}

func TestPricebookGroups(t *testing.T) {
	h := APIHandlers{
		Products:   &handler.ProductHandler{},
		Pricing:    &handler.PricingHandler{},
		Categories: &handler.CategoryHandler{},
		Reviews:    &handler.ReviewHandler{},
		System:     &handler.SystemHandler{},
	}

	var routes []string
	for _, g := range PricebookGroups(h) {
		for _, r := range g.Routes() {
			routes = append(routes, r.String())
		}
	}

	assert.ElementsMatch(t, []string{
		"GET /products",
		"GET /products/stats",
		"GET /products/export",
		"GET /products/:id",
		"POST /products",
		"PUT /products/:id",
		"PATCH /products/:id",
		"DELETE /products/:id",
		"POST /pricing/derive",
		"GET /categories",
		"POST /reviews/recognize",
		"POST /reviews/csv",
		"GET /reviews/:id",
		"DELETE /reviews/:id",
		"POST /reviews/:id/confirm",
		"PATCH /reviews/:id/rows/:index",
		"DELETE /reviews/:id/rows/:index",
		"GET /system/info",
		"GET /system/ping",
	}, routes)
}

func TestPricebookGroups_RecognizeGuards(t *testing.T) {
	h := APIHandlers{
		Products:   &handler.ProductHandler{},
		Pricing:    &handler.PricingHandler{},
		Categories: &handler.CategoryHandler{},
		Reviews:    &handler.ReviewHandler{},
		System:     handler.NewSystemHandler("pricebook"),
	}
	blocked := func(c *gin.Context) { c.AbortWithStatus(http.StatusTooManyRequests) }

	engine := gin.New()
	r := NewRouter(engine)
	r.Register(Registrars(PricebookGroups(h, blocked))...).Setup()

	w := serve(engine, http.MethodPost, "/api/v1/reviews/recognize")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	w = serve(engine, http.MethodGet, "/api/v1/system/ping")
	require.Equal(t, http.StatusOK, w.Code, "guards apply to recognition only")
}
