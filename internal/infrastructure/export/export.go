// Package export writes the product list as a downloadable price sheet.
// Column headers match the ones accepted by the CSV importer, so an
// exported CSV can be imported again.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/xuri/excelize/v2"
)

// Format names an output file type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// SheetName is the worksheet holding the products in XLSX output.
const SheetName = "价目表"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseFormat accepts "csv" or "xlsx" in any case; empty selects CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename returns the download name for an export taken at t.
func (f Format) Filename(t time.Time) string {
	return fmt.Sprintf("pricebook-%s.%s", t.Format("20060102-150405"), f)
}

// Record is one exported row. Numbers are preformatted so unknown values
// stay blank instead of printing zero.
type Record struct {
	ID                 string `csv:"ID"`
	Name               string `csv:"商品名称"`
	Category           string `csv:"类别"`
	CaseCost           string `csv:"整箱进价"`
	CaseQuantity       string `csv:"每箱数量"`
	UnitCost           string `csv:"单件成本"`
	CaseWholesalePrice string `csv:"整箱批发价"`
	WholesalePrice     string `csv:"单件批发价"`
	RetailPrice        string `csv:"零售价"`
	Margin             string `csv:"利润率(%)"`
	ImageURL           string `csv:"图片"`
	Remarks            string `csv:"备注"`
	UpdatedAt          string `csv:"更新时间"`
}

var headers = []string{
	"ID", "商品名称", "类别", "整箱进价", "每箱数量", "单件成本",
	"整箱批发价", "单件批发价", "零售价", "利润率(%)", "图片", "备注", "更新时间",
}

func formatNumber(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func formatTime(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).Format("2006-01-02 15:04:05")
}

// NewRecord converts a product into an export row.
func NewRecord(p pricebook.Product) Record {
	r := Record{
		ID:                 p.ID,
		Name:               p.Name,
		Category:           p.Category.Label(),
		CaseCost:           formatNumber(p.CaseCost),
		CaseQuantity:       formatNumber(p.CaseQuantity),
		UnitCost:           formatNumber(p.UnitCost),
		CaseWholesalePrice: formatNumber(p.CaseWholesalePrice),
		WholesalePrice:     formatNumber(p.WholesalePrice),
		RetailPrice:        formatNumber(p.RetailPrice),
		ImageURL:           p.ImageURL,
		Remarks:            p.Remarks,
		UpdatedAt:          formatTime(p.UpdatedAt),
	}
	if m := pricebook.Margin(p); m != nil {
		r.Margin = strconv.Itoa(*m)
	}
	return r
}

// Write renders products in the requested format.
func Write(w io.Writer, format Format, products []pricebook.Product) error {
	switch format {
	case FormatXLSX:
		return WriteXLSX(w, products)
	case FormatCSV:
		return WriteCSV(w, products)
	}
	return fmt.Errorf("unsupported export format %q", format)
}

// WriteCSV writes a UTF-8 CSV with a byte order mark so spreadsheet
// programs detect the encoding of the Chinese headers.
func WriteCSV(w io.Writer, products []pricebook.Product) error {
	records := make([]Record, len(products))
	for i, p := range products {
		records[i] = NewRecord(p)
	}
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	if len(records) == 0 {
		// An empty export still carries the header row.
		_, err := io.WriteString(w, strings.Join(headers, ",")+"\n")
		return err
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func numberCell(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// WriteXLSX writes a single-sheet workbook with a bold header row and
// numeric price cells.
func WriteXLSX(w io.Writer, products []pricebook.Product) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FDE9D9"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	last, _ := excelize.ColumnNumberToName(len(headers))
	if err := f.SetCellStyle(SheetName, "A1", last+"1", headerStyle); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}

	for i, p := range products {
		var margin any
		if m := pricebook.Margin(p); m != nil {
			margin = *m
		}
		row := []any{
			p.ID,
			p.Name,
			p.Category.Label(),
			numberCell(p.CaseCost),
			numberCell(p.CaseQuantity),
			numberCell(p.UnitCost),
			numberCell(p.CaseWholesalePrice),
			numberCell(p.WholesalePrice),
			numberCell(p.RetailPrice),
			margin,
			p.ImageURL,
			p.Remarks,
			formatTime(p.UpdatedAt),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i+1, err)
		}
	}

	_ = f.SetColWidth(SheetName, "B", "B", 24)
	_ = f.SetColWidth(SheetName, "L", "M", 20)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
