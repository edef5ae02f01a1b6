package pricebook

import (
	"context"
	"io"
	"time"
)

// Image is a photographed price sheet.
type Image struct {
	Data     []byte
	MIMEType string
}

// Recognizer extracts candidate rows from a price-sheet photo. It returns
// ErrNothingRecognized when the sheet yields no rows and an error wrapping
// ErrRecognitionFailed when the call or its response fails.
type Recognizer interface {
	Recognize(ctx context.Context, img Image) ([]CandidateRow, error)
}

// SheetParser reads candidate rows from a tabular price sheet.
type SheetParser interface {
	Parse(r io.Reader) ([]CandidateRow, error)
}

// ReviewStore holds open reviews until they are confirmed, cancelled or
// expire.
type ReviewStore interface {
	Put(ctx context.Context, review *Review, ttl time.Duration) error
	Get(ctx context.Context, id string) (*Review, error)
	// Take removes and returns the review in one step.
	Take(ctx context.Context, id string) (*Review, error)
	Delete(ctx context.Context, id string) (bool, error)
	Close() error
}
