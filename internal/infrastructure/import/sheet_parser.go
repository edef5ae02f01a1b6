package csvimport

import (
	"io"
	"strings"

	"github.com/pricebook/backend/internal/domain/pricebook"
)

// DefaultMaxRows caps a single sheet.
const DefaultMaxRows = 1000

// columnAliases maps accepted header names to product fields. Canonical
// field names match case-insensitively; the Chinese headers match the
// shop's printed price sheets.
var columnAliases = map[string]string{
	"商品名称":  pricebook.FieldName,
	"名称":    pricebook.FieldName,
	"整箱进价":  pricebook.FieldCaseCost,
	"每箱数量":  pricebook.FieldCaseQuantity,
	"单件成本":  pricebook.FieldUnitCost,
	"整箱批发价": pricebook.FieldCaseWholesalePrice,
	"单件批发价": pricebook.FieldWholesalePrice,
	"零售价":   pricebook.FieldRetailPrice,
	"类别":    pricebook.FieldCategory,
	"备注":    pricebook.FieldRemarks,
	"图片":    pricebook.FieldImageURL,
}

var canonicalColumns = []string{
	pricebook.FieldName,
	pricebook.FieldCategory,
	pricebook.FieldCaseCost,
	pricebook.FieldCaseQuantity,
	pricebook.FieldUnitCost,
	pricebook.FieldCaseWholesalePrice,
	pricebook.FieldWholesalePrice,
	pricebook.FieldRetailPrice,
	pricebook.FieldImageURL,
	pricebook.FieldRemarks,
}

// ColumnField resolves a header to a product field name.
func ColumnField(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if f, ok := columnAliases[header]; ok {
		return f, true
	}
	for _, f := range canonicalColumns {
		if strings.EqualFold(header, f) {
			return f, true
		}
	}
	return "", false
}

// SheetParser turns a price-sheet CSV into candidate rows.
// It implements pricebook.SheetParser.
type SheetParser struct {
	maxRows int
	opts    []ParserOption
}

var _ pricebook.SheetParser = (*SheetParser)(nil)

// NewSheetParser creates a parser. maxRows <= 0 selects DefaultMaxRows.
func NewSheetParser(maxRows int, opts ...ParserOption) *SheetParser {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return &SheetParser{maxRows: maxRows, opts: opts}
}

// Parse reads the whole sheet. Unknown columns are ignored, numeric cells
// that do not parse are left unset and unknown categories fall back to the
// default category, the same leniency applied to recognised photos.
func (s *SheetParser) Parse(r io.Reader) ([]pricebook.CandidateRow, error) {
	parser, err := NewCSVParser(r, s.opts...)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}

	columns := make(map[int]string)
	for i, h := range parser.Headers() {
		if f, ok := ColumnField(h); ok {
			columns[i] = f
		}
	}
	if len(columns) == 0 {
		return nil, ErrUnknownColumns
	}

	rows, err := parser.ReadAllRows(s.maxRows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoDataRows
	}

	out := make([]pricebook.CandidateRow, 0, len(rows))
	for _, row := range rows {
		var c pricebook.CandidateRow
		for i, field := range columns {
			value := row.Get(i)
			if field == pricebook.FieldCategory {
				if value != "" {
					c.Category = pricebook.NormalizeCategory(value)
				}
				continue
			}
			// only category can fail and it is handled above
			_ = c.Set(field, value)
		}
		out = append(out, c)
	}
	return out, nil
}
