package pricebook

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter returns the records matching the category selector and the free
// text query. The query is a case-insensitive substring of name or remarks.
// Input order is preserved and the input slice is never modified.
func Filter(products []Product, query string, category Category) []Product {
	folder := cases.Fold()
	needle := folder.String(query)

	out := make([]Product, 0, len(products))
	for _, p := range products {
		if category != "" && category != CategoryAll && p.Category != category {
			continue
		}
		if needle != "" && !matchesQuery(folder, p, needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(folder cases.Caser, p Product, needle string) bool {
	if strings.Contains(folder.String(p.Name), needle) {
		return true
	}
	return p.Remarks != "" && strings.Contains(folder.String(p.Remarks), needle)
}
