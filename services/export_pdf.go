package services

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Company is the issuer printed in the quote header.
type Company struct {
	Name    string
	Address string
	City    string
	Email   string
}

var (
	pdfInk  = &props.Color{Red: 26, Green: 54, Blue: 56}
	pdfGray = &props.Color{Red: 110, Green: 110, Blue: 110}
	pdfBand = &props.Color{Red: 245, Green: 247, Blue: 247}
)

// GeneratePDF renders the printable quote with maroto and returns the PDF bytes.
func GeneratePDF(data ExportData, company Company) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} / {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   pdfGray,
		}).
		Build()

	m := maroto.New(cfg)

	addPDFHeader(m, data, company)
	addPDFRecipient(m, data)
	addPDFTableHeader(m)
	if !data.HasItems() {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Aucune prestation sélectionnée.", props.Text{Size: 8, Align: align.Center, Color: pdfGray}),
		)))
	}
	for _, r := range data.Rows {
		addPDFRow(m, r, data.VATRate)
	}
	addPDFSummary(m, data)
	addPDFFooter(m)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addPDFHeader(m core.Maroto, data ExportData, company Company) {
	small := props.Text{Size: 8, Color: pdfGray}
	m.AddRows(
		row.New(10).Add(
			col.New(8).Add(text.New(company.Name, props.Text{Size: 12, Style: fontstyle.Bold, Color: pdfInk})),
			col.New(4).Add(text.New("DEVIS", props.Text{Size: 18, Style: fontstyle.Bold, Align: align.Right, Color: pdfInk})),
		),
		row.New(5).Add(
			col.New(8).Add(text.New(company.Address, small)),
			col.New(4).Add(text.New(data.QuoteNumber, props.Text{Size: 9, Align: align.Right, Color: pdfGray})),
		),
		row.New(5).Add(
			col.New(8).Add(text.New(company.City, small)),
			col.New(4).Add(text.New("Date: "+data.Date, props.Text{Size: 9, Align: align.Right})),
		),
		row.New(5).Add(
			col.New(12).Add(text.New(company.Email, small)),
		),
		row.New(6),
	)
}

func addPDFRecipient(m core.Maroto, data ExportData) {
	client := data.ClientName
	if client == "" {
		client = "Nom du client"
	}
	project := data.ProjectName
	if project == "" {
		project = "Nom du projet"
	}
	m.AddRows(
		row.New(5).Add(col.New(12).Add(text.New("DESTINATAIRE", props.Text{Size: 8, Style: fontstyle.Bold, Color: pdfGray}))),
		row.New(6).Add(col.New(12).Add(text.New(client, props.Text{Size: 10, Style: fontstyle.Bold, Color: pdfInk}))),
		row.New(6).Add(col.New(12).Add(text.New(project, props.Text{Size: 9, Color: pdfInk}))),
		row.New(6),
	)
}

func addPDFTableHeader(m core.Maroto) {
	headerText := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center, Color: pdfGray}
	headerLeft := headerText
	headerLeft.Align = align.Left
	cell := &props.Cell{BackgroundColor: pdfBand}

	m.AddRows(
		row.New(8).Add(
			col.New(1).Add(text.New("Réf.", headerLeft)).WithStyle(cell),
			col.New(5).Add(text.New("Prestation", headerLeft)).WithStyle(cell),
			col.New(1).Add(text.New("Jour(s)", headerText)).WithStyle(cell),
			col.New(2).Add(text.New("Prix unitaire", headerText)).WithStyle(cell),
			col.New(1).Add(text.New("TVA %", headerText)).WithStyle(cell),
			col.New(2).Add(text.New("Total HT", headerText)).WithStyle(cell),
		),
	)
}

func addPDFRow(m core.Maroto, r ExportRow, vatRate float64) {
	switch r.Kind {
	case RowPhaseHeader:
		title := r.Name
		if r.Subtitle != "" {
			title += " (" + r.Subtitle + ")"
		}
		m.AddRows(row.New(7).Add(
			col.New(12).Add(text.New(title, props.Text{Size: 8, Style: fontstyle.Bold, Color: pdfInk})).
				WithStyle(&props.Cell{BackgroundColor: pdfBand}),
		))

	case RowItem:
		base := props.Text{Size: 7, Align: align.Center}
		left := base
		left.Align = align.Left
		right := base
		right.Align = align.Right

		days := NotApplicable
		if r.HasDays {
			days = FormatQuantity(r.Days)
		}
		m.AddRows(row.New(7).Add(
			col.New(1).Add(text.New(r.Ref, left)),
			col.New(5).Add(text.New(r.Name, left)),
			col.New(1).Add(text.New(days, base)),
			col.New(2).Add(text.New(pdfSafe(FormatEUR(r.UnitPrice)), right)),
			col.New(1).Add(text.New(FormatPercent(vatRate), base)),
			col.New(2).Add(text.New(pdfSafe(FormatEUR(r.Total)), right)),
		))

	case RowPhaseTotal:
		bold := props.Text{Size: 7, Style: fontstyle.Bold, Align: align.Right}
		center := bold
		center.Align = align.Center
		cell := &props.Cell{BackgroundColor: pdfBand}
		m.AddRows(row.New(7).Add(
			col.New(6).Add(text.New(r.Name, bold)).WithStyle(cell),
			col.New(1).Add(text.New(FormatDays(r.Days), center)).WithStyle(cell),
			col.New(5).Add(text.New(pdfSafe(FormatEUR(r.Total)), bold)).WithStyle(cell),
		))
	}
}

func addPDFSummary(m core.Maroto, data ExportData) {
	m.AddRows(row.New(6))

	label := props.Text{Size: 9, Align: align.Left, Color: pdfInk}
	value := props.Text{Size: 9, Align: align.Right, Color: pdfInk}
	lines := []struct {
		label string
		value float64
	}{
		{"Sous-total HT", data.SubTotalHT},
		{data.VATLabel, data.VATAmount},
	}
	for _, l := range lines {
		m.AddRows(row.New(6).Add(
			col.New(8),
			col.New(2).Add(text.New(l.label, label)),
			col.New(2).Add(text.New(pdfSafe(FormatEUR(l.value)), value)),
		))
	}

	label.Style = fontstyle.Bold
	label.Size = 11
	value.Style = fontstyle.Bold
	value.Size = 11
	m.AddRows(row.New(8).Add(
		col.New(8),
		col.New(2).Add(text.New("Total TTC", label)),
		col.New(2).Add(text.New(pdfSafe(FormatEUR(data.TotalTTC)), value)),
	))
}

func addPDFFooter(m core.Maroto) {
	m.AddRows(row.New(10))
	note := props.Text{Size: 7, Color: pdfGray}
	m.AddRows(
		row.New(5).Add(col.New(12).Add(text.New("Note :", props.Text{Size: 7, Style: fontstyle.Bold, Color: pdfGray}))),
		row.New(8).Add(col.New(12).Add(text.New(pdfSafe(QuoteNote()), note))),
	)
}

// QuoteNote is the disclaimer printed at the bottom of every quote.
func QuoteNote() string {
	return "Ce devis est une estimation basée sur les informations fournies et peut être sujet à modification. " +
		"Taux journalier de référence : " + FormatEUR(DailyRate) + ". Devis valable 30 jours."
}

// pdfSafe swaps the narrow and no-break spaces used in French number
// formatting for plain spaces; the core PDF fonts have no glyph for them.
func pdfSafe(s string) string {
	return strings.NewReplacer("\u202f", " ", "\u00a0", " ").Replace(s)
}
