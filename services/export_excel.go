package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelSheetName is the name of the single worksheet of an exported quote.
const ExcelSheetName = "Devis"

// excelHeaders are the column titles repeated under each phase title.
var excelHeaders = []string{"", "PRESTATIONS", "UNITÉ", "QUANTITÉ ESTIMÉE", "PRIX UNITAIRE HT", "COÛT TOTAL HT"}

// GenerateExcel creates the DQE spreadsheet for a quote and returns the file
// contents.
func GenerateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := ExcelSheetName
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	columns := []string{"A", "B", "C", "D", "E", "F"}
	lastCol := columns[len(columns)-1]

	widths := []float64{8, 60, 16, 18, 18, 18}
	for i, col := range columns {
		if err := f.SetColWidth(sheet, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	st, err := newExcelStyles(f)
	if err != nil {
		return nil, err
	}

	// ── Document header ─────────────────────────────────────────────────

	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", sanitizeExcelCell(data.Title))
	f.SetCellStyle(sheet, "A1", lastCol+"1", st.title)

	f.SetCellValue(sheet, "A2", sanitizeExcelCell(fmt.Sprintf("Devis %s du %s", data.QuoteNumber, data.Date)))
	f.SetCellStyle(sheet, "A2", "A2", st.subtitle)
	f.SetCellValue(sheet, "A3", sanitizeExcelCell("Client : "+data.ClientName))
	f.SetCellStyle(sheet, "A3", "A3", st.subtitle)

	// ── Phases ──────────────────────────────────────────────────────────

	row := 5
	for _, r := range data.Rows {
		rs := fmt.Sprint(row)
		switch r.Kind {
		case RowPhaseHeader:
			if err := f.MergeCell(sheet, "A"+rs, lastCol+rs); err != nil {
				return nil, fmt.Errorf("merge phase title: %w", err)
			}
			f.SetCellValue(sheet, "A"+rs, sanitizeExcelCell(r.Name))
			f.SetCellStyle(sheet, "A"+rs, lastCol+rs, st.phase)
			row++

			rs = fmt.Sprint(row)
			for i, h := range excelHeaders {
				f.SetCellValue(sheet, columns[i]+rs, h)
			}
			f.SetCellStyle(sheet, "A"+rs, lastCol+rs, st.header)

		case RowItem:
			f.SetCellValue(sheet, "A"+rs, sanitizeExcelCell(r.Ref))
			f.SetCellValue(sheet, "B"+rs, sanitizeExcelCell(r.Name))
			f.SetCellValue(sheet, "C"+rs, r.Unit)
			f.SetCellValue(sheet, "D"+rs, r.Quantity)
			f.SetCellValue(sheet, "E"+rs, r.UnitPrice)
			f.SetCellValue(sheet, "F"+rs, r.Total)
			f.SetCellStyle(sheet, "A"+rs, "D"+rs, st.item)
			f.SetCellStyle(sheet, "E"+rs, "F"+rs, st.itemMoney)

		case RowPhaseTotal:
			if r.Days > 0 {
				f.SetCellValue(sheet, "D"+rs, FormatDays(r.Days))
			}
			f.SetCellValue(sheet, "E"+rs, "TOTAL")
			f.SetCellStyle(sheet, "E"+rs, "E"+rs, st.summaryLabel)
			f.SetCellValue(sheet, "F"+rs, r.Total)
			f.SetCellStyle(sheet, "F"+rs, "F"+rs, st.summaryValue)
			// Blank row between phases.
			row++
		}
		row++
	}

	// ── Document totals ─────────────────────────────────────────────────

	row++
	summary := []struct {
		label string
		value float64
	}{
		{"TOTAL HT", data.SubTotalHT},
		{data.VATLabel, data.VATAmount},
		{"TOTAL TTC", data.TotalTTC},
	}
	for _, s := range summary {
		rs := fmt.Sprint(row)
		f.SetCellValue(sheet, "E"+rs, s.label)
		f.SetCellStyle(sheet, "E"+rs, "E"+rs, st.summaryLabel)
		f.SetCellValue(sheet, "F"+rs, s.value)
		f.SetCellStyle(sheet, "F"+rs, "F"+rs, st.summaryValue)
		row++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

type excelStyles struct {
	title        int
	subtitle     int
	phase        int
	header       int
	item         int
	itemMoney    int
	summaryLabel int
	summaryValue int
}

// eurNumFmt displays numeric cells as euros while keeping the raw value.
var eurNumFmt = `#,##0.00\ "€"`

func newExcelStyles(f *excelize.File) (excelStyles, error) {
	var st excelStyles
	defs := []struct {
		dst   *int
		name  string
		style *excelize.Style
	}{
		{&st.title, "title", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}},
		{&st.subtitle, "subtitle", &excelize.Style{Font: &excelize.Font{Size: 11}}},
		{&st.phase, "phase", &excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#12272B"}, Pattern: 1},
		}},
		{&st.header, "header", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 10},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#ABD8D8"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			Border:    thinBorders(),
		}},
		{&st.item, "item", &excelize.Style{
			Font:      &excelize.Font{Size: 10},
			Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
			Border:    thinBorders(),
		}},
		{&st.itemMoney, "item money", &excelize.Style{
			Font:         &excelize.Font{Size: 10},
			Border:       thinBorders(),
			CustomNumFmt: &eurNumFmt,
		}},
		{&st.summaryLabel, "summary label", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 11},
			Alignment: &excelize.Alignment{Horizontal: "right"},
		}},
		{&st.summaryValue, "summary value", &excelize.Style{
			Font:         &excelize.Font{Bold: true, Size: 11},
			CustomNumFmt: &eurNumFmt,
		}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return st, fmt.Errorf("create %s style: %w", d.name, err)
		}
		*d.dst = id
	}
	return st, nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{Type: side, Color: "#000000", Style: 1}
	}
	return borders
}
