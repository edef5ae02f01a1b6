package recognition

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/pricebook/backend/internal/domain/pricebook"
)

// DefaultMIMEType is assumed when neither the caller nor the payload names
// an image type.
const DefaultMIMEType = "image/jpeg"

// DecodeImage accepts raw base64 or a data: URL. The MIME type comes from
// the data URL, then mimeType, then content sniffing. Payloads larger than
// maxBytes (when positive) are rejected.
func DecodeImage(encoded, mimeType string, maxBytes int64) (pricebook.Image, error) {
	encoded = strings.TrimSpace(encoded)
	if strings.HasPrefix(encoded, "data:") {
		header, body, ok := strings.Cut(encoded, ",")
		if !ok {
			return pricebook.Image{}, pricebook.ErrInvalidImage
		}
		if mt, _, _ := strings.Cut(strings.TrimPrefix(header, "data:"), ";"); mt != "" {
			mimeType = mt
		}
		encoded = body
	}
	if encoded == "" {
		return pricebook.Image{}, pricebook.ErrInvalidImage
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		if data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "=")); err != nil {
			return pricebook.Image{}, pricebook.ErrInvalidImage
		}
	}
	return NewImage(data, mimeType, maxBytes)
}

// NewImage wraps raw bytes, checking size and resolving the MIME type.
func NewImage(data []byte, mimeType string, maxBytes int64) (pricebook.Image, error) {
	if len(data) == 0 || (maxBytes > 0 && int64(len(data)) > maxBytes) {
		return pricebook.Image{}, pricebook.ErrInvalidImage
	}
	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = DefaultMIMEType
		if sniffed := http.DetectContentType(data); strings.HasPrefix(sniffed, "image/") {
			mimeType = sniffed
		}
	}
	return pricebook.Image{Data: data, MIMEType: mimeType}, nil
}
