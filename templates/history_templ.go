package templates

import "github.com/a-h/templ"

// HistoryEntryView is one finalized quote in the history list.
type HistoryEntryView struct {
	QuoteNumber string
	ClientName  string
	ProjectName string
	Date        string
	TotalTTC    string
}

// HistoryList renders the saved quotes, most recent first. It renders an
// empty container when there is no history so htmx can swap into it later.
func HistoryList(entries []HistoryEntryView) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div id="history" hx-get="/history" hx-trigger="historyChanged from:body" hx-swap="outerHTML">`)
		if len(entries) == 0 {
			h.raw(`</div>`)
			return
		}
		h.raw(`<div class="panel history"><div class="panel-title"><h2>Historique des devis</h2><div>`)
		h.raw(`<a class="link" href="/history/export" download>Exporter</a> `)
		h.raw(`<button class="link danger" hx-delete="/history" hx-target="#history" hx-swap="outerHTML" ` +
			`hx-confirm="Êtes-vous sûr de vouloir supprimer tout l'historique ?">Vider l'historique</button>`)
		h.raw(`</div></div><ul class="history-list">`)
		for _, e := range entries {
			h.raw(`<li><div><p class="strong">`)
			h.text(e.ClientName)
			h.raw(` - <span>`)
			h.text(e.ProjectName)
			h.raw(`</span></p><p class="muted small">`)
			h.text(e.Date)
			h.raw(` &bull; `)
			h.text(e.QuoteNumber)
			h.raw(` &bull; <span class="strong">`)
			h.text(e.TotalTTC)
			h.raw(`</span></p></div><button class="btn btn-secondary"`)
			h.attr("hx-post", "/history/"+pathEscape(e.QuoteNumber)+"/load")
			h.raw(` hx-target="#workspace" hx-swap="outerHTML">Charger</button></li>`)
		}
		h.raw(`</ul></div></div>`)
	})
}
