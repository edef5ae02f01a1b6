package pricebook

import (
	"math"
	"sort"
	"strings"

	"github.com/pricebook/backend/internal/domain/shared"
	"github.com/spf13/cast"
)

// Editable field names, matching the persisted JSON keys.
const (
	FieldName               = "name"
	FieldCategory           = "category"
	FieldCaseCost           = "caseCost"
	FieldCaseQuantity       = "caseQuantity"
	FieldUnitCost           = "unitCost"
	FieldCaseWholesalePrice = "caseWholesalePrice"
	FieldWholesalePrice     = "wholesalePrice"
	FieldRetailPrice        = "retailPrice"
	FieldImageURL           = "imageUrl"
	FieldRemarks            = "remarks"
)

var (
	ErrUnknownField   = shared.NewDomainError("INVALID_FIELD", "unknown product field")
	ErrImmutableField = shared.NewDomainError("INVALID_FIELD", "id and updatedAt cannot be edited")
)

// Fields is the editable part of a product. Price fields are nil when
// unknown; nil never means zero.
type Fields struct {
	Name               string   `json:"name"`
	Category           Category `json:"category"`
	CaseCost           *float64 `json:"caseCost,omitempty"`
	CaseQuantity       *float64 `json:"caseQuantity,omitempty"`
	UnitCost           *float64 `json:"unitCost,omitempty"`
	CaseWholesalePrice *float64 `json:"caseWholesalePrice,omitempty"`
	WholesalePrice     *float64 `json:"wholesalePrice,omitempty"`
	RetailPrice        *float64 `json:"retailPrice,omitempty"`
	ImageURL           string   `json:"imageUrl,omitempty"`
	Remarks            string   `json:"remarks,omitempty"`
}

// Product is the persisted price-book record.
type Product struct {
	ID string `json:"id"`
	Fields
	UpdatedAt int64 `json:"updatedAt"` // epoch milliseconds
}

// Patch maps field names to new values. A nil value clears the field.
type Patch map[string]any

// Num returns a pointer to v, for building Fields literals.
func Num(v float64) *float64 {
	return &v
}

func cloneNum(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Clone returns a deep copy.
func (f Fields) Clone() Fields {
	f.CaseCost = cloneNum(f.CaseCost)
	f.CaseQuantity = cloneNum(f.CaseQuantity)
	f.UnitCost = cloneNum(f.UnitCost)
	f.CaseWholesalePrice = cloneNum(f.CaseWholesalePrice)
	f.WholesalePrice = cloneNum(f.WholesalePrice)
	f.RetailPrice = cloneNum(f.RetailPrice)
	return f
}

// Clone returns a deep copy.
func (p Product) Clone() Product {
	p.Fields = p.Fields.Clone()
	return p
}

func (f *Fields) numField(field string) **float64 {
	switch field {
	case FieldCaseCost:
		return &f.CaseCost
	case FieldCaseQuantity:
		return &f.CaseQuantity
	case FieldUnitCost:
		return &f.UnitCost
	case FieldCaseWholesalePrice:
		return &f.CaseWholesalePrice
	case FieldWholesalePrice:
		return &f.WholesalePrice
	case FieldRetailPrice:
		return &f.RetailPrice
	}
	return nil
}

// Set replaces one field. Values that do not parse as numbers leave a
// numeric field unset instead of failing; caseQuantity keeps only the
// integer part.
func (f *Fields) Set(field string, value any) error {
	if num := f.numField(field); num != nil {
		v, ok := parseNumber(value)
		if !ok {
			*num = nil
			return nil
		}
		if field == FieldCaseQuantity {
			v = math.Trunc(v)
		}
		*num = &v
		return nil
	}

	switch field {
	case FieldName:
		f.Name = cast.ToString(value)
	case FieldCategory:
		s := cast.ToString(value)
		if strings.TrimSpace(s) == "" {
			f.Category = ""
			return nil
		}
		c, err := ParseCategory(s)
		if err != nil {
			return err
		}
		f.Category = c
	case FieldImageURL:
		f.ImageURL = cast.ToString(value)
	case FieldRemarks:
		f.Remarks = cast.ToString(value)
	case "id", "updatedAt":
		return ErrImmutableField
	default:
		return ErrUnknownField
	}
	return nil
}

// Apply returns a copy of f with the patch merged in. Either every key is
// applied or f is returned unchanged with the first error.
func (f Fields) Apply(patch Patch) (Fields, error) {
	keys := make([]string, 0, len(patch))
	for k := range patch {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := f.Clone()
	for _, k := range keys {
		if err := out.Set(k, patch[k]); err != nil {
			return f, err
		}
	}
	return out, nil
}

// parseNumber coerces loosely typed input. Empty strings, nil and
// non-finite results are reported as not ok.
func parseNumber(value any) (float64, bool) {
	if value == nil {
		return 0, false
	}
	if s, ok := value.(string); ok {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false
		}
		value = s
	}
	if _, ok := value.(bool); ok {
		return 0, false
	}
	v, err := cast.ToFloat64E(value)
	if err != nil || !isFinite(v) {
		return 0, false
	}
	return v, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteOrNil(p *float64) *float64 {
	if p == nil || !isFinite(*p) {
		return nil
	}
	return cloneNum(p)
}

// sanitized drops non-finite numbers and fills the default category.
func (f Fields) sanitized() Fields {
	f.CaseCost = finiteOrNil(f.CaseCost)
	f.CaseQuantity = finiteOrNil(f.CaseQuantity)
	f.UnitCost = finiteOrNil(f.UnitCost)
	f.CaseWholesalePrice = finiteOrNil(f.CaseWholesalePrice)
	f.WholesalePrice = finiteOrNil(f.WholesalePrice)
	f.RetailPrice = finiteOrNil(f.RetailPrice)
	if !f.Category.IsValid() {
		f.Category = DefaultCategory
	}
	return f
}

// NewProduct builds a record from editor input.
func NewProduct(id string, fields Fields, updatedAt int64) Product {
	return Product{ID: id, Fields: fields.sanitized(), UpdatedAt: updatedAt}
}

// CandidateRow is an unconfirmed, partially filled row awaiting review.
// It is never stored as a Product until ToProduct is applied.
type CandidateRow struct {
	Fields
}

// ToProduct materialises the row. Blank names become placeholder, missing
// categories become DefaultCategory and non-finite numbers are dropped.
func (r CandidateRow) ToProduct(id string, updatedAt int64, placeholder string) Product {
	f := r.Fields.sanitized()
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		f.Name = placeholder
	}
	return Product{ID: id, Fields: f, UpdatedAt: updatedAt}
}
