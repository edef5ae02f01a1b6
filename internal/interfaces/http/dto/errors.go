package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeValidationRequired is used when a required field is missing
	ErrCodeValidationRequired = "ERR_VALIDATION_REQUIRED"
	// ErrCodeValidationFormat is used when a field has invalid format
	ErrCodeValidationFormat = "ERR_VALIDATION_FORMAT"
	// ErrCodeValidationLength is used when a field length is invalid
	ErrCodeValidationLength = "ERR_VALIDATION_LENGTH"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeInvalidName is used when a product would be stored without a name
	ErrCodeInvalidName = "ERR_INVALID_NAME"
	// ErrCodeInvalidField is used for unknown or read-only product fields
	ErrCodeInvalidField = "ERR_INVALID_FIELD"
	// ErrCodeInvalidCategory is used when a category is neither a code nor a label
	ErrCodeInvalidCategory = "ERR_INVALID_CATEGORY"
	// ErrCodeInvalidImage is used for undecodable or oversized photos
	ErrCodeInvalidImage = "ERR_INVALID_IMAGE"
	// ErrCodeInvalidSheet is used for rejected CSV price sheets
	ErrCodeInvalidSheet = "ERR_INVALID_SHEET"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeProductNotFound is used when no product has the requested id
	ErrCodeProductNotFound = "ERR_PRODUCT_NOT_FOUND"
	// ErrCodeReviewNotFound is used for unknown, expired or finished reviews
	ErrCodeReviewNotFound = "ERR_REVIEW_NOT_FOUND"
	// ErrCodeRowNotFound is used when a review row index is out of range
	ErrCodeRowNotFound = "ERR_ROW_NOT_FOUND"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// Recognition error codes
const (
	// ErrCodeNothingRecognized is used when a photo or sheet yields no rows
	ErrCodeNothingRecognized = "ERR_NOTHING_RECOGNIZED"
	// ErrCodeRecognitionFailed is used when the recognition backend fails
	ErrCodeRecognitionFailed = "ERR_RECOGNITION_FAILED"
	// ErrCodeRecognitionInFlight is used when another recognition is running
	ErrCodeRecognitionInFlight = "ERR_RECOGNITION_IN_FLIGHT"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeValidationRequired: http.StatusBadRequest,
	ErrCodeValidationFormat:   http.StatusBadRequest,
	ErrCodeValidationLength:   http.StatusBadRequest,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeInvalidName:     http.StatusBadRequest,
	ErrCodeInvalidField:    http.StatusBadRequest,
	ErrCodeInvalidCategory: http.StatusBadRequest,
	ErrCodeInvalidImage:    http.StatusBadRequest,
	ErrCodeInvalidSheet:    http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeProductNotFound: http.StatusNotFound,
	ErrCodeReviewNotFound:  http.StatusNotFound,
	ErrCodeRowNotFound:     http.StatusNotFound,
	ErrCodeConflict:        http.StatusConflict,

	// Recognition errors
	ErrCodeNothingRecognized:   http.StatusUnprocessableEntity,
	ErrCodeRecognitionFailed:   http.StatusBadGateway,
	ErrCodeRecognitionInFlight: http.StatusConflict,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited:     http.StatusTooManyRequests,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to API error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"INVALID_INPUT":         ErrCodeBadRequest,
	"INVALID_NAME":          ErrCodeInvalidName,
	"INVALID_FIELD":         ErrCodeInvalidField,
	"INVALID_CATEGORY":      ErrCodeInvalidCategory,
	"INVALID_IMAGE":         ErrCodeInvalidImage,
	"INVALID_SHEET":         ErrCodeInvalidSheet,
	"PRODUCT_NOT_FOUND":     ErrCodeProductNotFound,
	"REVIEW_NOT_FOUND":      ErrCodeReviewNotFound,
	"ROW_NOT_FOUND":         ErrCodeRowNotFound,
	"NOTHING_RECOGNIZED":    ErrCodeNothingRecognized,
	"RECOGNITION_FAILED":    ErrCodeRecognitionFailed,
	"RECOGNITION_IN_FLIGHT": ErrCodeRecognitionInFlight,
}

// NormalizeErrorCode converts a domain error code to the API format.
// Codes already in the API format, or unknown, are returned as-is.
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
