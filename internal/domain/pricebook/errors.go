package pricebook

import "github.com/pricebook/backend/internal/domain/shared"

var (
	ErrInvalidName         = shared.NewDomainError("INVALID_NAME", "product name cannot be empty")
	ErrProductNotFound     = shared.NewDomainError("PRODUCT_NOT_FOUND", "product not found")
	ErrReviewNotFound      = shared.NewDomainError("REVIEW_NOT_FOUND", "review not found or already closed")
	ErrRowNotFound         = shared.NewDomainError("ROW_NOT_FOUND", "review row index out of range")
	ErrNothingRecognized   = shared.NewDomainError("NOTHING_RECOGNIZED", "no products were recognized")
	ErrRecognitionFailed   = shared.NewDomainError("RECOGNITION_FAILED", "price sheet recognition failed")
	ErrRecognitionInFlight = shared.NewDomainError("RECOGNITION_IN_FLIGHT", "a recognition is already running")
	ErrInvalidSheet        = shared.NewDomainError("INVALID_SHEET", "price sheet could not be read")
	ErrInvalidImage        = shared.NewDomainError("INVALID_IMAGE", "image is missing, malformed or too large")
)
