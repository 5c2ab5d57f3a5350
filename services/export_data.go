package services

import "strings"

// RowKind tells renderers how to draw an export row.
type RowKind int

const (
	RowPhaseHeader RowKind = iota
	RowItem
	RowPhaseTotal
)

// ExportRow is one line of the quote table shared by the preview and all
// export formats.
type ExportRow struct {
	Kind     RowKind
	PhaseID  string
	Ref      string
	Name     string
	Subtitle string // phase header only
	Unit     string
	Quantity float64
	// Days is the duration in days; HasDays is false when the unit is not
	// measured in days.
	Days      float64
	HasDays   bool
	UnitPrice float64
	Total     float64
}

// ExportData holds everything needed to render or export a quote.
type ExportData struct {
	Title       string
	QuoteNumber string
	Date        string
	ClientName  string
	ProjectName string
	Rows        []ExportRow
	SubTotalHT  float64
	VATRate     float64
	VATLabel    string
	VATAmount   float64
	TotalTTC    float64
}

// HasItems reports whether the table contains at least one item row.
func (d ExportData) HasItems() bool {
	for _, r := range d.Rows {
		if r.Kind == RowItem {
			return true
		}
	}
	return false
}

// BuildExportTable flattens the document into rows: for each phase with
// billable items, a header row, one row per item and a total row. Phases with
// nothing billable are skipped. The returned data is a snapshot; later edits
// to doc do not affect it.
func BuildExportTable(doc QuoteDocument) ExportData {
	data := ExportData{
		Title:       exportTitle(doc.ProjectName),
		QuoteNumber: doc.QuoteNumber,
		Date:        doc.Date,
		ClientName:  doc.ClientName,
		ProjectName: doc.ProjectName,
		VATRate:     VATRate,
		VATLabel:    "TVA (" + FormatPercent(VATRate) + ")",
	}

	var subTotal float64
	for _, phase := range doc.Phases {
		summary := ComputePhaseSummary(phase)
		if len(summary.ActiveItems) == 0 {
			continue
		}

		data.Rows = append(data.Rows, ExportRow{
			Kind:     RowPhaseHeader,
			PhaseID:  phase.ID,
			Name:     phase.Title,
			Subtitle: phase.Subtitle,
		})
		for _, item := range summary.ActiveItems {
			days, ok := DurationInDays(item)
			data.Rows = append(data.Rows, ExportRow{
				Kind:      RowItem,
				PhaseID:   phase.ID,
				Ref:       item.Ref,
				Name:      item.Name,
				Unit:      item.UnitLabel(),
				Quantity:  item.Quantity,
				Days:      days,
				HasDays:   ok,
				UnitPrice: UnitPrice(item),
				Total:     CalcLineTotal(item),
			})
		}
		data.Rows = append(data.Rows, ExportRow{
			Kind:    RowPhaseTotal,
			PhaseID: phase.ID,
			Name:    "Total " + phase.Title,
			Days:    summary.TotalDays,
			HasDays: true,
			Total:   summary.TotalHT,
		})
		subTotal += summary.TotalHT
	}

	totals := calcTotals(subTotal)
	data.SubTotalHT = totals.SubTotalHT
	data.VATAmount = totals.VATAmount
	data.TotalTTC = totals.TotalTTC
	return data
}

func exportTitle(projectName string) string {
	name := strings.TrimSpace(projectName)
	if name == "" {
		name = "PROJET"
	}
	return name + " - DÉTAIL QUANTITATIF ESTIMATIF (DQE)"
}
