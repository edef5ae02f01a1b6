package pricebook

import (
	"time"

	"github.com/pricebook/backend/internal/domain/pricebook"
)

// ProductRequest is the single-item editor form. Category accepts a code or
// its label; empty selects the default category. Price fields take numbers
// or numeric strings; anything unparsable leaves the field unset.
type ProductRequest struct {
	Name               string `json:"name" binding:"max=200"`
	Category           string `json:"category" binding:"max=32"`
	CaseCost           any    `json:"caseCost" swaggertype:"number"`
	CaseQuantity       any    `json:"caseQuantity" swaggertype:"number"`
	UnitCost           any    `json:"unitCost" swaggertype:"number"`
	CaseWholesalePrice any    `json:"caseWholesalePrice" swaggertype:"number"`
	WholesalePrice     any    `json:"wholesalePrice" swaggertype:"number"`
	RetailPrice        any    `json:"retailPrice" swaggertype:"number"`
	ImageURL           string `json:"imageUrl" binding:"max=2048"`
	Remarks            string `json:"remarks" binding:"max=1000"`
	SyncUnitPrices     bool   `json:"syncUnitPrices"`
}

// ToFields converts the form into domain fields. Values go through
// Fields.Set, the same coercion a patch uses.
func (r ProductRequest) ToFields() (pricebook.Fields, error) {
	var f pricebook.Fields
	values := []struct {
		field string
		value any
	}{
		{pricebook.FieldName, r.Name},
		{pricebook.FieldCaseCost, r.CaseCost},
		{pricebook.FieldCaseQuantity, r.CaseQuantity},
		{pricebook.FieldUnitCost, r.UnitCost},
		{pricebook.FieldCaseWholesalePrice, r.CaseWholesalePrice},
		{pricebook.FieldWholesalePrice, r.WholesalePrice},
		{pricebook.FieldRetailPrice, r.RetailPrice},
		{pricebook.FieldImageURL, r.ImageURL},
		{pricebook.FieldRemarks, r.Remarks},
		{pricebook.FieldCategory, r.Category},
	}
	for _, v := range values {
		if err := f.Set(v.field, v.value); err != nil {
			return f, err
		}
	}
	return f, nil
}

// PatchProductRequest changes only the named fields. A null value clears
// a field.
type PatchProductRequest struct {
	Fields         map[string]any `json:"fields" binding:"required"`
	SyncUnitPrices bool           `json:"syncUnitPrices"`
}

// ProductFilter holds list and export query parameters.
type ProductFilter struct {
	Query    string `form:"q" binding:"max=200"`
	Category string `form:"category" binding:"max=32"`
}

// ExportFilter adds the output format to ProductFilter.
type ExportFilter struct {
	ProductFilter
	Format string `form:"format" binding:"omitempty,oneof=csv xlsx"`
}

// ProductResponse is a product with its computed margin.
type ProductResponse struct {
	pricebook.Product
	CategoryLabel string `json:"categoryLabel"`
	Margin        *int   `json:"margin"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p pricebook.Product) ProductResponse {
	return ProductResponse{
		Product:       p,
		CategoryLabel: p.Category.Label(),
		Margin:        pricebook.Margin(p),
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []pricebook.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i, p := range products {
		out[i] = ToProductResponse(p)
	}
	return out
}

// DeriveResponse carries calculator suggestions.
type DeriveResponse struct {
	UnitCost       *float64 `json:"unitCost"`
	WholesalePrice *float64 `json:"wholesalePrice"`
}

// CategoryOption is one entry of the category selector.
type CategoryOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// CategoryOptions lists the selector entries, "All" first.
func CategoryOptions() []CategoryOption {
	cats := append([]pricebook.Category{pricebook.CategoryAll}, pricebook.Categories()...)
	out := make([]CategoryOption, len(cats))
	for i, c := range cats {
		out[i] = CategoryOption{Value: string(c), Label: c.Label()}
	}
	return out
}

// RecognizeRequest carries a photo as base64 or a data: URL.
type RecognizeRequest struct {
	Image    string `json:"image" binding:"required"`
	MIMEType string `json:"mimeType" binding:"omitempty,max=64"`
}

// EditRowRequest replaces one field of one review row.
type EditRowRequest struct {
	Field string `json:"field" binding:"required,max=32"`
	Value any    `json:"value"`
}

// ReviewRowResponse is one candidate row with its position.
type ReviewRowResponse struct {
	Index int `json:"index"`
	pricebook.Fields
}

// ReviewResponse represents an open review in API responses
type ReviewResponse struct {
	ID        string              `json:"id"`
	Source    string              `json:"source"`
	CreatedAt time.Time           `json:"createdAt"`
	Rows      []ReviewRowResponse `json:"rows"`
}

// ToReviewResponse converts a domain Review to ReviewResponse
func ToReviewResponse(r *pricebook.Review) ReviewResponse {
	rows := make([]ReviewRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = ReviewRowResponse{Index: i, Fields: row.Fields}
	}
	return ReviewResponse{
		ID:        r.ID,
		Source:    string(r.Source),
		CreatedAt: r.CreatedAt,
		Rows:      rows,
	}
}

// ConfirmResponse lists the products created by a confirmation.
type ConfirmResponse struct {
	Count    int               `json:"count"`
	Products []ProductResponse `json:"products"`
}
