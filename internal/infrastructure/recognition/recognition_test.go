package recognition

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRows(t *testing.T) {
	rows, err := decodeRows(`[
		{"name":"  月兔 ","caseQuantity":"12.7","retailPrice":"abc","category":"小烟花","remarks":"新货","extra":1},
		{"name":"无类别"}
	]`)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "月兔", rows[0].Name)
	assert.Equal(t, 12.0, *rows[0].CaseQuantity)
	assert.Nil(t, rows[0].RetailPrice)
	assert.Equal(t, pricebook.CategorySmallFireworks, rows[0].Category)
	assert.Equal(t, "新货", rows[0].Remarks)

	assert.Equal(t, pricebook.Category(""), rows[1].Category, "missing category is left for confirmation")

	rows, err = decodeRows("  ")
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = decodeRows(`[1,2]`)
	assert.Error(t, err)
}

func TestStubAdapter(t *testing.T) {
	ctx := context.Background()

	t.Run("built-in rows", func(t *testing.T) {
		rows, err := NewStubAdapter("").Recognize(ctx, pricebook.Image{})
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})

	t.Run("fixture file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sheet.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"name":"A"}]`), 0o600))

		rows, err := NewStubAdapter(path).Recognize(ctx, pricebook.Image{})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "A", rows[0].Name)
	})

	t.Run("empty fixture", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "sheet.json")
		require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o600))

		_, err := NewStubAdapter(path).Recognize(ctx, pricebook.Image{})
		assert.ErrorIs(t, err, pricebook.ErrNothingRecognized)
	})

	t.Run("missing fixture", func(t *testing.T) {
		_, err := NewStubAdapter("/nonexistent/sheet.json").Recognize(ctx, pricebook.Image{})
		assert.ErrorIs(t, err, pricebook.ErrRecognitionFailed)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := NewStubAdapter("").Recognize(cctx, pricebook.Image{})
		assert.ErrorIs(t, err, pricebook.ErrRecognitionFailed)
	})
}

func TestDecodeImage(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n0000")
	encoded := base64.StdEncoding.EncodeToString(png)

	t.Run("data url", func(t *testing.T) {
		img, err := DecodeImage("data:image/webp;base64,"+encoded, "", 0)
		require.NoError(t, err)
		assert.Equal(t, "image/webp", img.MIMEType)
		assert.Equal(t, png, img.Data)
	})

	t.Run("raw base64 is sniffed", func(t *testing.T) {
		img, err := DecodeImage(encoded, "", 0)
		require.NoError(t, err)
		assert.Equal(t, "image/png", img.MIMEType)
	})

	t.Run("explicit mime type wins over sniffing", func(t *testing.T) {
		img, err := DecodeImage(encoded, "image/heic", 0)
		require.NoError(t, err)
		assert.Equal(t, "image/heic", img.MIMEType)
	})

	t.Run("unpadded base64", func(t *testing.T) {
		img, err := DecodeImage(base64.RawStdEncoding.EncodeToString([]byte("ab")), "", 0)
		require.NoError(t, err)
		assert.Equal(t, []byte("ab"), img.Data)
		assert.Equal(t, DefaultMIMEType, img.MIMEType)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		for _, in := range []string{"", "data:image/png;base64", "data:image/png;base64,", "!!!"} {
			_, err := DecodeImage(in, "", 0)
			assert.ErrorIs(t, err, pricebook.ErrInvalidImage, in)
		}
	})

	t.Run("rejects oversized images", func(t *testing.T) {
		_, err := DecodeImage(encoded, "", 4)
		assert.ErrorIs(t, err, pricebook.ErrInvalidImage)
	})
}
