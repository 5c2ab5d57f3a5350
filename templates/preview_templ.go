package templates

import (
	"github.com/a-h/templ"

	"quotegen/services"
)

// Issuer is the company shown in the preview header.
type Issuer struct {
	Name    string
	Address string
	City    string
	Email   string
	LogoURL string
}

// PreviewData is the printable quote: issuer plus the export table.
type PreviewData struct {
	Issuer Issuer
	Data   services.ExportData
}

// Preview renders the printable quote. The #quote-preview-content element is
// what image exports capture.
func Preview(p PreviewData) templ.Component {
	return component(func(h *htmlWriter) {
		d := p.Data
		h.raw(`<div class="preview-sheet"><div id="quote-preview-content" class="preview">`)

		h.raw(`<header class="preview-header"><div>`)
		if p.Issuer.LogoURL != "" {
			h.raw(`<img class="preview-logo"`)
			h.attr("src", p.Issuer.LogoURL)
			h.attr("alt", p.Issuer.Name+" Logo")
			h.raw(`>`)
		}
		h.raw(`<div class="preview-issuer"><p class="strong">`)
		h.text(p.Issuer.Name)
		h.raw(`</p><p>`)
		h.text(p.Issuer.Address)
		h.raw(`</p><p>`)
		h.text(p.Issuer.City)
		h.raw(`</p><p>`)
		h.text(p.Issuer.Email)
		h.raw(`</p></div></div><div class="right"><h1>DEVIS</h1><p class="muted">`)
		h.text(d.QuoteNumber)
		h.raw(`</p><p>Date: `)
		h.text(d.Date)
		h.raw(`</p></div></header>`)

		h.raw(`<section class="preview-recipient"><h2>Destinataire</h2><p class="strong">`)
		h.text(orPlaceholder(d.ClientName, "Nom du client"))
		h.raw(`</p><p>`)
		h.text(orPlaceholder(d.ProjectName, "Nom du projet"))
		h.raw(`</p></section>`)

		h.raw(`<table class="preview-table"><thead><tr>` +
			`<th>Réf.</th><th>Prestation</th><th class="center">Jour(s)</th>` +
			`<th class="right">Prix unitaire</th><th class="center">TVA %</th><th class="right">Total HT</th>` +
			`</tr></thead><tbody>`)
		if !d.HasItems() {
			h.raw(`<tr><td colspan="6" class="empty">Aucune prestation sélectionnée.</td></tr>`)
		}
		vat := services.FormatPercent(d.VATRate)
		for _, r := range d.Rows {
			previewRow(h, r, vat)
		}
		h.raw(`</tbody></table>`)

		h.raw(`<section class="preview-totals"><div><span>Sous-total HT</span><span>`)
		h.text(services.FormatEUR(d.SubTotalHT))
		h.raw(`</span></div><div><span>`)
		h.text(d.VATLabel)
		h.raw(`</span><span>`)
		h.text(services.FormatEUR(d.VATAmount))
		h.raw(`</span></div><div class="grand-total"><span>Total TTC</span><span>`)
		h.text(services.FormatEUR(d.TotalTTC))
		h.raw(`</span></div></section>`)

		h.raw(`<footer class="preview-note"><p class="strong">Note :</p><p>`)
		h.text(services.QuoteNote())
		h.raw(`</p></footer>`)

		h.raw(`</div></div>`)
	})
}

func previewRow(h *htmlWriter, r services.ExportRow, vat string) {
	switch r.Kind {
	case services.RowPhaseHeader:
		h.raw(`<tr class="phase"><td colspan="6">`)
		h.text(r.Name)
		if r.Subtitle != "" {
			h.raw(` <span class="muted small">(`)
			h.text(r.Subtitle)
			h.raw(`)</span>`)
		}
		h.raw(`</td></tr>`)
	case services.RowItem:
		h.raw(`<tr class="item"><td class="mono">`)
		h.text(r.Ref)
		h.raw(`</td><td>`)
		h.text(r.Name)
		h.raw(`</td><td class="center">`)
		h.text(itemDays(r))
		h.raw(`</td><td class="right">`)
		h.text(services.FormatEUR(r.UnitPrice))
		h.raw(`</td><td class="center">`)
		h.text(vat)
		h.raw(`</td><td class="right">`)
		h.text(services.FormatEUR(r.Total))
		h.raw(`</td></tr>`)
	case services.RowPhaseTotal:
		h.raw(`<tr class="phase-total"><td colspan="2" class="right">`)
		h.text(r.Name)
		h.raw(`</td><td class="center">`)
		h.text(services.FormatDays(r.Days))
		h.raw(`</td><td colspan="3" class="right strong">`)
		h.text(services.FormatEUR(r.Total))
		h.raw(`</td></tr>`)
	}
}

// PreviewDocument wraps Preview in a standalone HTML page with inline styles,
// for headless capture.
func PreviewDocument(p PreviewData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="fr"><head><meta charset="utf-8"><style>`)
		h.raw(stylesheet)
		h.raw(`</style></head><body class="capture">`)
		h.render(Preview(p))
		h.raw(`</body></html>`)
	})
}
