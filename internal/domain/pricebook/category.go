package pricebook

import (
	"encoding/json"
	"strings"

	"github.com/pricebook/backend/internal/domain/shared"
)

// Category is the persisted product category code.
type Category string

const (
	CategoryFireworks      Category = "Fireworks"
	CategoryCrackers       Category = "Crackers"
	CategorySmallFireworks Category = "SmallFireworks"
	CategoryOthers         Category = "Others"

	// CategoryAll is only valid as a filter selector, never on a record.
	CategoryAll Category = "All"
)

// DefaultCategory is assigned when a record is created without one.
const DefaultCategory = CategoryOthers

var categoryLabels = map[Category]string{
	CategoryFireworks:      "烟花",
	CategoryCrackers:       "鞭炮",
	CategorySmallFireworks: "小烟花",
	CategoryOthers:         "其他",
	CategoryAll:            "全部",
}

// ErrInvalidCategory is returned when a category string matches no known category
var ErrInvalidCategory = shared.NewDomainError("INVALID_CATEGORY", "category must be one of Fireworks, Crackers, SmallFireworks, Others")

// Categories returns the record categories in display order.
func Categories() []Category {
	return []Category{CategoryFireworks, CategoryCrackers, CategorySmallFireworks, CategoryOthers}
}

// IsValid reports whether c may be stored on a product.
func (c Category) IsValid() bool {
	switch c {
	case CategoryFireworks, CategoryCrackers, CategorySmallFireworks, CategoryOthers:
		return true
	}
	return false
}

// Label returns the shop-floor label for the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

func (c Category) String() string {
	return string(c)
}

func lookupCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for code, label := range categoryLabels {
		if strings.EqualFold(s, string(code)) || s == label {
			return code, true
		}
	}
	return "", false
}

// ParseCategory accepts a category code (any case) or its label.
// "All" is rejected; use ParseSelector for filter input.
func ParseCategory(s string) (Category, error) {
	c, ok := lookupCategory(s)
	if !ok || c == CategoryAll {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// ParseSelector parses a filter selector. Empty input selects all categories.
func ParseSelector(s string) (Category, error) {
	if strings.TrimSpace(s) == "" {
		return CategoryAll, nil
	}
	c, ok := lookupCategory(s)
	if !ok {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// NormalizeCategory maps any input onto a storable category, falling back
// to DefaultCategory for empty or unrecognised values.
func NormalizeCategory(s string) Category {
	c, err := ParseCategory(s)
	if err != nil {
		return DefaultCategory
	}
	return c
}

// UnmarshalJSON accepts codes and labels so snapshots written with labels
// still load.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*c = ""
		return nil
	}
	*c = NormalizeCategory(s)
	return nil
}
