package templates

import "github.com/a-h/templ"

// PageData is the full quote builder page.
type PageData struct {
	Workspace WorkspaceData
	History   []HistoryEntryView
	Year      int
	Company   string
}

// Page renders the complete HTML document.
func Page(d PageData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<!DOCTYPE html><html lang="fr"><head><meta charset="utf-8">` +
			`<meta name="viewport" content="width=device-width, initial-scale=1">` +
			`<title>Générateur de Devis</title>` +
			`<script src="https://unpkg.com/htmx.org@2.0.4"></script>` +
			`<link rel="stylesheet" href="/static/app.css"><style>`)
		h.raw(stylesheet)
		h.raw(`</style></head><body><main>`)
		h.raw(`<h1 class="title">Générateur de Devis</h1><p class="subtitle">Créez et visualisez vos devis rapidement.</p>`)
		h.render(Workspace(d.Workspace))
		h.render(HistoryList(d.History))
		h.raw(`</main><footer class="page-footer">&copy; `)
		h.text(itoa(d.Year))
		h.raw(` `)
		h.text(d.Company)
		h.raw(`. Tous droits réservés.</footer>`)
		h.raw(`<div id="toast" class="toast" hidden></div><script>` + toastScript + `</script>`)
		h.raw(`</body></html>`)
	})
}
