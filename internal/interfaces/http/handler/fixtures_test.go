package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	appbook "github.com/pricebook/backend/internal/application/pricebook"
	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/pricebook/backend/internal/infrastructure/cache"
	"github.com/pricebook/backend/internal/infrastructure/event"
	csvimport "github.com/pricebook/backend/internal/infrastructure/import"
	"github.com/pricebook/backend/internal/infrastructure/storage"
	"github.com/pricebook/backend/internal/interfaces/http/dto"
	"github.com/pricebook/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

var fixedNow = time.Date(2025, 1, 20, 9, 30, 0, 0, time.UTC)

type mockRecognizer struct {
	mock.Mock
}

func (m *mockRecognizer) Recognize(ctx context.Context, img pricebook.Image) ([]pricebook.CandidateRow, error) {
	args := m.Called(ctx, img)
	rows, _ := args.Get(0).([]pricebook.CandidateRow)
	return rows, args.Error(1)
}

type testApp struct {
	engine     *gin.Engine
	catalog    *appbook.CatalogService
	reviews    *appbook.ReviewService
	store      *storage.MemoryStore
	recognizer *mockRecognizer
}

func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return prefix + strconv.Itoa(n)
	}
}

// newTestApp wires real services over the memory store, seeded with the
// default catalog, and registers every handler on a bare engine.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()

	store := storage.NewMemoryStore()
	bus := event.NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(appbook.NewSnapshotWriter(store, "pricebook.v1", "memory", nil, zap.NewNop()))
	catalog := appbook.NewCatalogService(store, "pricebook.v1", bus, zap.NewNop(),
		appbook.WithClock(func() time.Time { return fixedNow }),
		appbook.WithIDGenerator(sequentialIDs("new-")),
	)
	catalog.Load(ctx)

	reviewStore := cache.NewInMemoryReviewStore(time.Hour)
	t.Cleanup(func() { _ = reviewStore.Close() })

	recognizer := new(mockRecognizer)
	reviews := appbook.NewReviewService(reviewStore, catalog, recognizer, csvimport.NewSheetParser(0),
		appbook.ReviewSettings{TTL: time.Hour, PlaceholderName: "未命名商品", RecognitionTimeout: time.Second},
		zap.NewNop(),
		appbook.WithReviewClock(func() time.Time { return fixedNow }),
		appbook.WithReviewIDGenerator(sequentialIDs("r")),
	)
	editor := appbook.NewEditorService(catalog)

	products := NewProductHandler(catalog, editor)
	products.now = func() time.Time { return fixedNow }
	pricing := NewPricingHandler(editor)
	categories := NewCategoryHandler()
	reviewHandler := NewReviewHandler(reviews, 1024)
	system := NewSystemHandler("pricebook", WithSnapshotStore(store, "memory", "pricebook.v1"), WithRevision(catalog))

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.GET("/health", system.Health)

	api := engine.Group("/api/v1")
	api.GET("/products", products.List)
	api.GET("/products/stats", products.Stats)
	api.GET("/products/export", products.Export)
	api.GET("/products/:id", products.Get)
	api.POST("/products", products.Create)
	api.PUT("/products/:id", products.Update)
	api.PATCH("/products/:id", products.Patch)
	api.DELETE("/products/:id", products.Delete)
	api.POST("/pricing/derive", pricing.Derive)
	api.GET("/categories", categories.List)
	api.POST("/reviews/recognize", reviewHandler.Recognize)
	api.POST("/reviews/csv", reviewHandler.UploadCSV)
	api.GET("/reviews/:id", reviewHandler.Get)
	api.PATCH("/reviews/:id/rows/:index", reviewHandler.EditRow)
	api.DELETE("/reviews/:id/rows/:index", reviewHandler.RemoveRow)
	api.POST("/reviews/:id/confirm", reviewHandler.Confirm)
	api.DELETE("/reviews/:id", reviewHandler.Cancel)
	api.GET("/system/info", system.GetSystemInfo)
	api.GET("/system/ping", system.Ping)

	return &testApp{
		engine:     engine,
		catalog:    catalog,
		reviews:    reviews,
		store:      store,
		recognizer: recognizer,
	}
}

func (a *testApp) do(method, path string, body any) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = bytes.NewBufferString(b)
		default:
			data, _ := json.Marshal(b)
			r = bytes.NewReader(data)
		}
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func (a *testApp) upload(t *testing.T, path, field, filename, contentType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
	if contentType != "" {
		h["Content-Type"] = []string{contentType}
	}
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

// envelope decodes the standard response, keeping data raw for typed
// decoding by the caller.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorInfo  `json:"error"`
	Meta    *dto.Meta       `json:"meta"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	env := decode(t, w)
	require.True(t, env.Success, w.Body.String())
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}
