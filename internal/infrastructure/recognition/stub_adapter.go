package recognition

import (
	"context"
	"fmt"
	"os"

	"github.com/pricebook/backend/internal/domain/pricebook"
)

// cannedSheet is returned by the stub when no fixture file is configured.
const cannedSheet = `[
  {"name": "顾和隆 三角斗士 24/1", "caseCost": 276, "caseQuantity": 24, "unitCost": 11.5, "retailPrice": 35, "category": "小烟花"},
  {"name": "义学 财盈门全红银花炮", "unitCost": 167, "retailPrice": 280, "category": "鞭炮"},
  {"name": "", "caseCost": 80, "caseQuantity": 1, "category": "烟花", "remarks": "手写单，名称看不清"}
]`

// StubAdapter implements pricebook.Recognizer without calling any model.
// It returns the rows of a fixture file, read on every call so the file
// can be edited while the server runs.
type StubAdapter struct {
	fixture string
}

var _ pricebook.Recognizer = (*StubAdapter)(nil)

// NewStubAdapter creates a stub. An empty fixture path selects built-in
// rows.
func NewStubAdapter(fixture string) *StubAdapter {
	return &StubAdapter{fixture: fixture}
}

// Recognize ignores the image and returns the fixture rows.
func (a *StubAdapter) Recognize(ctx context.Context, _ pricebook.Image) ([]pricebook.CandidateRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", pricebook.ErrRecognitionFailed, err)
	}

	text := cannedSheet
	if a.fixture != "" {
		data, err := os.ReadFile(a.fixture)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", pricebook.ErrRecognitionFailed, err)
		}
		text = string(data)
	}

	rows, err := decodeRows(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", pricebook.ErrRecognitionFailed, err)
	}
	if len(rows) == 0 {
		return nil, pricebook.ErrNothingRecognized
	}
	return rows, nil
}
