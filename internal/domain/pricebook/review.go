package pricebook

import "time"

// ReviewSource tells where the candidate rows came from.
type ReviewSource string

const (
	ReviewSourceImage ReviewSource = "image"
	ReviewSourceCSV   ReviewSource = "csv"
)

// Review is a batch of candidate rows being corrected before they become
// products. Nothing in a review touches the catalog until it is confirmed.
type Review struct {
	ID        string         `json:"id"`
	Source    ReviewSource   `json:"source"`
	CreatedAt time.Time      `json:"createdAt"`
	Rows      []CandidateRow `json:"rows"`
}

// NewReview starts a review. An empty row list is rejected.
func NewReview(id string, source ReviewSource, rows []CandidateRow, now time.Time) (*Review, error) {
	if len(rows) == 0 {
		return nil, ErrNothingRecognized
	}
	copied := make([]CandidateRow, len(rows))
	for i, r := range rows {
		copied[i] = CandidateRow{Fields: r.Fields.Clone()}
	}
	return &Review{ID: id, Source: source, CreatedAt: now, Rows: copied}, nil
}

func (r *Review) checkIndex(index int) error {
	if index < 0 || index >= len(r.Rows) {
		return ErrRowNotFound
	}
	return nil
}

// EditField replaces one field of one row.
func (r *Review) EditField(index int, field string, value any) error {
	if err := r.checkIndex(index); err != nil {
		return err
	}
	return r.Rows[index].Set(field, value)
}

// RemoveRow drops one row; the others keep their order.
func (r *Review) RemoveRow(index int) error {
	if err := r.checkIndex(index); err != nil {
		return err
	}
	rows := make([]CandidateRow, 0, len(r.Rows)-1)
	rows = append(rows, r.Rows[:index]...)
	r.Rows = append(rows, r.Rows[index+1:]...)
	return nil
}

// Materialize converts every remaining row into a product. All products
// share one updatedAt stamp and keep the row order.
func (r *Review) Materialize(newID func() string, updatedAt int64, placeholder string) []Product {
	out := make([]Product, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row.ToProduct(newID(), updatedAt, placeholder)
	}
	return out
}

// Clone returns a deep copy safe to hand to callers.
func (r *Review) Clone() *Review {
	cp := *r
	cp.Rows = make([]CandidateRow, len(r.Rows))
	for i, row := range r.Rows {
		cp.Rows[i] = CandidateRow{Fields: row.Fields.Clone()}
	}
	return &cp
}
