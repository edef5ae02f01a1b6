package handler

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	appbook "github.com/pricebook/backend/internal/application/pricebook"
	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/pricebook/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var recognizedRows = []pricebook.CandidateRow{
	{Fields: pricebook.Fields{Name: "加特林", Category: pricebook.CategoryFireworks, CaseCost: pricebook.Num(240), CaseQuantity: pricebook.Num(20)}},
	{Fields: pricebook.Fields{Name: "", RetailPrice: pricebook.Num(5)}},
}

const priceSheetCSV = "商品名称,整箱进价,每箱数量,零售价,类别,备注\n" +
	"小金鱼,120,30,8,小烟花,\n" +
	",,,3,鞭炮,无名\n" +
	"冷光烟花,abc,10,15,Rockets,\n"

func openCSVReview(t *testing.T, app *testApp) appbook.ReviewResponse {
	t.Helper()
	w := app.upload(t, "/api/v1/reviews/csv", "file", "sheet.csv", "text/csv", []byte(priceSheetCSV))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeData[appbook.ReviewResponse](t, w)
}

func TestReviewHandler_Recognize(t *testing.T) {
	t.Run("json data url", func(t *testing.T) {
		app := newTestApp(t)
		app.recognizer.On("Recognize", mock.Anything, mock.MatchedBy(func(img pricebook.Image) bool {
			return img.MIMEType == "image/png" && len(img.Data) > 0
		})).Return(recognizedRows, nil).Once()

		w := app.do(http.MethodPost, "/api/v1/reviews/recognize", map[string]any{
			"image": "data:image/png;base64,iVBORw0KGgo=",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		review := decodeData[appbook.ReviewResponse](t, w)
		assert.Equal(t, "r1", review.ID)
		assert.Equal(t, string(pricebook.ReviewSourceImage), review.Source)
		require.Len(t, review.Rows, 2)
		assert.Equal(t, 1, review.Rows[1].Index)
		assert.Equal(t, "加特林", review.Rows[0].Name)
		assert.Len(t, app.catalog.List(t.Context()), 11, "recognition alone never changes the catalog")
		app.recognizer.AssertExpectations(t)
	})

	t.Run("multipart upload", func(t *testing.T) {
		app := newTestApp(t)
		photo := []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10}
		app.recognizer.On("Recognize", mock.Anything, pricebook.Image{Data: photo, MIMEType: "image/jpeg"}).
			Return(recognizedRows, nil).Once()

		w := app.upload(t, "/api/v1/reviews/recognize", "image", "sheet.jpg", "image/jpeg", photo)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		app.recognizer.AssertExpectations(t)
	})

	failures := []struct {
		name       string
		setup      func(m *mockRecognizer)
		wantStatus int
		wantCode   string
	}{
		{
			name: "nothing recognized",
			setup: func(m *mockRecognizer) {
				m.On("Recognize", mock.Anything, mock.Anything).Return(nil, pricebook.ErrNothingRecognized)
			},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   dto.ErrCodeNothingRecognized,
		},
		{
			name: "recognizer failure",
			setup: func(m *mockRecognizer) {
				m.On("Recognize", mock.Anything, mock.Anything).Return(nil, errors.New("upstream 503"))
			},
			wantStatus: http.StatusBadGateway,
			wantCode:   dto.ErrCodeRecognitionFailed,
		},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			tt.setup(app.recognizer)
			before := app.catalog.Revision()

			w := app.do(http.MethodPost, "/api/v1/reviews/recognize", map[string]any{"image": "/9j/4AAQ"})

			assert.Equal(t, tt.wantStatus, w.Code)
			env := decode(t, w)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.NotContains(t, env.Error.Message, "upstream")
			assert.Equal(t, before, app.catalog.Revision())
		})
	}

	badImages := []struct {
		name string
		body any
	}{
		{"not base64", map[string]any{"image": "%%%not-base64%%%"}},
		{"empty data url", map[string]any{"image": "data:image/png;base64,"}},
		{"too large", map[string]any{"image": strings.Repeat("QUFB", 400)}},
	}
	for _, tt := range badImages {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)

			w := app.do(http.MethodPost, "/api/v1/reviews/recognize", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, dto.ErrCodeInvalidImage, decode(t, w).Error.Code)
			app.recognizer.AssertNotCalled(t, "Recognize", mock.Anything, mock.Anything)
		})
	}

	t.Run("image field is required", func(t *testing.T) {
		app := newTestApp(t)
		w := app.do(http.MethodPost, "/api/v1/reviews/recognize", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("multipart without image", func(t *testing.T) {
		app := newTestApp(t)
		w := app.upload(t, "/api/v1/reviews/recognize", "photo", "x.jpg", "image/jpeg", []byte{1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidImage, decode(t, w).Error.Code)
	})
}

func TestReviewHandler_Recognize_OneAtATime(t *testing.T) {
	app := newTestApp(t)
	entered := make(chan struct{})
	release := make(chan struct{})
	app.recognizer.On("Recognize", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).
		Return(recognizedRows, nil).Once()

	first := make(chan *httptest.ResponseRecorder)
	go func() {
		first <- app.do(http.MethodPost, "/api/v1/reviews/recognize", map[string]any{"image": "/9j/4AAQ"})
	}()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("first recognition never started")
	}

	w := app.do(http.MethodPost, "/api/v1/reviews/recognize", map[string]any{"image": "/9j/4AAQ"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, dto.ErrCodeRecognitionInFlight, decode(t, w).Error.Code)

	close(release)
	assert.Equal(t, http.StatusCreated, (<-first).Code)
	app.recognizer.AssertNumberOfCalls(t, "Recognize", 1)
}

func TestReviewHandler_UploadCSV(t *testing.T) {
	t.Run("opens a review", func(t *testing.T) {
		app := newTestApp(t)

		review := openCSVReview(t, app)

		assert.Equal(t, string(pricebook.ReviewSourceCSV), review.Source)
		require.Len(t, review.Rows, 3)
		assert.Equal(t, "小金鱼", review.Rows[0].Name)
		assert.Equal(t, pricebook.CategorySmallFireworks, review.Rows[0].Category)
		assert.Equal(t, 120.0, *review.Rows[0].CaseCost)
		assert.Equal(t, pricebook.CategoryCrackers, review.Rows[1].Category)
		assert.Nil(t, review.Rows[2].CaseCost, "unparseable numbers stay unset")
		assert.Equal(t, pricebook.CategoryOthers, review.Rows[2].Category)
	})

	t.Run("empty sheet", func(t *testing.T) {
		app := newTestApp(t)

		w := app.upload(t, "/api/v1/reviews/csv", "file", "empty.csv", "text/csv", []byte("  \n"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decode(t, w)
		assert.Equal(t, dto.ErrCodeInvalidSheet, env.Error.Code)
		assert.Equal(t, "CSV file is empty", env.Error.Message)
	})

	t.Run("header only", func(t *testing.T) {
		app := newTestApp(t)

		w := app.upload(t, "/api/v1/reviews/csv", "file", "h.csv", "text/csv", []byte("商品名称,零售价\n"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeInvalidSheet, decode(t, w).Error.Code)
	})

	t.Run("file field missing", func(t *testing.T) {
		app := newTestApp(t)

		w := app.upload(t, "/api/v1/reviews/csv", "sheet", "a.csv", "text/csv", []byte(priceSheetCSV))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeBadRequest, decode(t, w).Error.Code)
	})
}

func TestReviewHandler_EditAndRemoveRows(t *testing.T) {
	app := newTestApp(t)
	review := openCSVReview(t, app)
	base := "/api/v1/reviews/" + review.ID

	w := app.do(http.MethodPatch, base+"/rows/0", map[string]any{"field": "retailPrice", "value": "12.5"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	edited := decodeData[appbook.ReviewResponse](t, w)
	assert.Equal(t, 12.5, *edited.Rows[0].RetailPrice)

	w = app.do(http.MethodPatch, base+"/rows/1", map[string]any{"field": "category", "value": "Fireworks"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pricebook.CategoryFireworks, decodeData[appbook.ReviewResponse](t, w).Rows[1].Category)

	rejected := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{"row out of range", http.MethodPatch, base + "/rows/7", map[string]any{"field": "name", "value": "x"}, http.StatusNotFound, dto.ErrCodeRowNotFound},
		{"negative row", http.MethodDelete, base + "/rows/-1", nil, http.StatusNotFound, dto.ErrCodeRowNotFound},
		{"row not a number", http.MethodDelete, base + "/rows/abc", nil, http.StatusNotFound, dto.ErrCodeRowNotFound},
		{"unknown field", http.MethodPatch, base + "/rows/0", map[string]any{"field": "colour", "value": "x"}, http.StatusBadRequest, dto.ErrCodeInvalidField},
		{"unknown category", http.MethodPatch, base + "/rows/0", map[string]any{"field": "category", "value": "Rockets"}, http.StatusBadRequest, dto.ErrCodeInvalidCategory},
		{"unknown review", http.MethodPatch, "/api/v1/reviews/nope/rows/0", map[string]any{"field": "name", "value": "x"}, http.StatusNotFound, dto.ErrCodeReviewNotFound},
	}
	for _, tt := range rejected {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decode(t, w).Error.Code)
		})
	}

	w = app.do(http.MethodDelete, base+"/rows/2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeData[appbook.ReviewResponse](t, w).Rows, 2)

	w = app.do(http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	current := decodeData[appbook.ReviewResponse](t, w)
	require.Len(t, current.Rows, 2)
	assert.Equal(t, 12.5, *current.Rows[0].RetailPrice)
}

func TestReviewHandler_Confirm(t *testing.T) {
	app := newTestApp(t)
	review := openCSVReview(t, app)

	w := app.do(http.MethodPost, "/api/v1/reviews/"+review.ID+"/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	confirmed := decodeData[appbook.ConfirmResponse](t, w)
	assert.Equal(t, 3, confirmed.Count)
	require.Len(t, confirmed.Products, 3)
	assert.Equal(t, "小金鱼", confirmed.Products[0].Name)
	assert.Equal(t, "未命名商品", confirmed.Products[1].Name)
	assert.Equal(t, "冷光烟花", confirmed.Products[2].Name)

	list := app.catalog.List(t.Context())
	require.Len(t, list, 14)
	for i, p := range confirmed.Products {
		assert.Equal(t, p.ID, list[i].ID, "confirmed rows lead the list in row order")
	}
	assert.Equal(t, "p1", list[3].ID)

	t.Run("review is closed", func(t *testing.T) {
		w := app.do(http.MethodGet, "/api/v1/reviews/"+review.ID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = app.do(http.MethodPost, "/api/v1/reviews/"+review.ID+"/confirm", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, dto.ErrCodeReviewNotFound, decode(t, w).Error.Code)
		assert.Len(t, app.catalog.List(t.Context()), 14)
	})
}

func TestReviewHandler_Cancel(t *testing.T) {
	app := newTestApp(t)
	review := openCSVReview(t, app)
	base := "/api/v1/reviews/" + review.ID
	before := app.catalog.List(t.Context())
	revision := app.catalog.Revision()
	stored, err := app.store.Load(t.Context(), "pricebook.v1")
	require.NoError(t, err)

	w := app.do(http.MethodPatch, base+"/rows/0", map[string]any{"field": "retailPrice", "value": "99"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = app.do(http.MethodDelete, base+"/rows/1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = app.do(http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, before, app.catalog.List(t.Context()))
	assert.Equal(t, revision, app.catalog.Revision())

	after, err := app.store.Load(t.Context(), "pricebook.v1")
	require.NoError(t, err)
	assert.True(t, bytes.Equal(stored, after), "persisted snapshot must be byte-identical")

	w = app.do(http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeReviewNotFound, decode(t, w).Error.Code)
}
