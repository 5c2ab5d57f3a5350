package templates

import (
	"github.com/a-h/templ"
)

// ServiceView is one chip of the service type selector.
type ServiceView struct {
	ID       string
	Label    string
	Selected bool
}

// ItemView is a line item as shown in the editor.
type ItemView struct {
	PhaseID  string
	ID       string
	Ref      string
	Name     string
	Unit     string
	Quantity string
	// Price is the fixed unit price, empty when the unit default applies.
	Price        string
	DefaultPrice string
	Active       bool
	Custom       bool
}

// PhaseView is a phase of the editor.
type PhaseView struct {
	ID       string
	Title    string
	Subtitle string
	Items    []ItemView
}

// QuoteFormData holds the editable header fields and the phases visible in
// the editor.
type QuoteFormData struct {
	ClientName  string
	ProjectName string
	QuoteNumber string
	Date        string
	Phases      []PhaseView
	Units       []string
}

// WorkspaceData is everything swapped in after an edit: the selector, export
// buttons, editor and preview.
type WorkspaceData struct {
	Services  []ServiceView
	CanExport bool
	Form      QuoteFormData
	Preview   PreviewData
}

// Workspace renders the editable area. Every edit endpoint responds with it.
func Workspace(d WorkspaceData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div id="workspace">`)
		h.render(ServiceSelector(d.Services))
		h.render(ExportButtons(d.CanExport))
		h.raw(`<div class="columns">`)
		h.render(QuoteForm(d.Form))
		h.render(Preview(d.Preview))
		h.raw(`</div></div>`)
	})
}

// ServiceSelector renders the service type chips.
func ServiceSelector(services []ServiceView) templ.Component {
	return component(func(h *htmlWriter) {
		anySelected := false
		for _, s := range services {
			anySelected = anySelected || s.Selected
		}

		h.raw(`<div class="panel service-selector"><div class="panel-title"><h2>Types de prestation</h2>`)
		if anySelected {
			h.raw(`<button class="link" hx-post="/services/clear" hx-target="#workspace" hx-swap="outerHTML">Tout désélectionner</button>`)
		}
		h.raw(`</div><div class="chips">`)
		for _, s := range services {
			h.raw(`<button`)
			cls := "chip"
			if s.Selected {
				cls += " selected"
			}
			h.attr("class", cls)
			h.attr("hx-post", "/services/"+pathEscape(s.ID)+"/toggle")
			h.raw(` hx-target="#workspace" hx-swap="outerHTML"`)
			h.attr("aria-pressed", boolString(s.Selected))
			h.raw(`>`)
			h.text(s.Label)
			h.raw(`</button>`)
		}
		h.raw(`</div></div>`)
	})
}

// exportAction is a download button of the export bar.
type exportAction struct {
	label  string
	format string
	class  string
}

var exportActions = []exportAction{
	{"Télécharger JPG", "jpg", "btn-accent"},
	{"Exporter Excel", "excel", "btn-secondary"},
	{"Exporter PDF", "pdf", "btn-secondary"},
}

// ExportButtons renders the download links. They are disabled until the
// quote has at least one billable item.
func ExportButtons(enabled bool) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="panel export-buttons">`)
		for _, b := range exportActions {
			h.raw(`<button`)
			h.attr("class", "btn "+b.class)
			h.attr("hx-get", "/quote/export/"+b.format)
			h.raw(` hx-swap="none"`)
			h.flag("disabled", !enabled)
			h.raw(`>`)
			h.text(b.label)
			h.raw(`</button>`)
		}
		h.raw(`</div>`)
	})
}

// QuoteForm renders the quote editor.
func QuoteForm(d QuoteFormData) templ.Component {
	return component(func(h *htmlWriter) {
		h.raw(`<div class="panel quote-form"><h2>Détails du Devis</h2>`)
		h.raw(`<form class="fields" hx-post="/quote/fields" hx-trigger="change" hx-target="#workspace" hx-swap="outerHTML">`)
		textField(h, "Nom du client", "clientName", d.ClientName, "Ex: Entreprise SARL")
		textField(h, "Nom du projet", "projectName", d.ProjectName, "Ex: Refonte du site vitrine")
		textField(h, "Date", "date", d.Date, "jj/mm/aaaa")
		h.raw(`<p class="muted small">N° `)
		h.text(d.QuoteNumber)
		h.raw(`</p></form>`)

		if len(d.Phases) == 0 {
			h.raw(`<div class="empty-state"><p>Veuillez sélectionner au moins un type de prestation ci-dessus pour commencer à configurer votre devis.</p></div>`)
		}
		for _, p := range d.Phases {
			h.raw(`<div class="phase-editor"><h3>`)
			h.text(p.Title)
			if p.Subtitle != "" {
				h.raw(` <span class="muted small">(`)
				h.text(p.Subtitle)
				h.raw(`)</span>`)
			}
			h.raw(`</h3>`)
			for _, item := range p.Items {
				itemEditor(h, item, d.Units)
			}
			h.raw(`<button class="btn-add"`)
			h.attr("hx-post", PhaseItemsURL(p.ID))
			h.raw(` hx-target="#workspace" hx-swap="outerHTML">+ Ajouter une prestation</button></div>`)
		}

		h.raw(`<div class="actions"><button class="btn btn-secondary" hx-post="/quote/new" hx-target="#workspace" hx-swap="outerHTML" hx-confirm="Commencer un nouveau devis ?">Nouveau devis</button>`)
		h.raw(`<button class="btn btn-accent" hx-post="/quote/finalize" hx-swap="none">Enregistrer dans l'historique</button></div>`)
		h.raw(`</div>`)
	})
}

func textField(h *htmlWriter, label, name, value, placeholder string) {
	h.raw(`<label class="field"><span>`)
	h.text(label)
	h.raw(`</span><input type="text"`)
	h.attr("name", name)
	h.attr("value", value)
	h.attr("placeholder", placeholder)
	h.raw(`></label>`)
}

func itemEditor(h *htmlWriter, item ItemView, units []string) {
	cls := "item-editor"
	if item.Custom {
		cls += " custom"
	}
	h.raw(`<form`)
	h.attr("class", cls)
	h.attr("id", "item-"+item.ID)
	h.attr("hx-patch", ItemURL(item.PhaseID, item.ID))
	h.raw(` hx-trigger="change" hx-target="#workspace" hx-swap="outerHTML">`)

	if item.Custom {
		h.raw(`<div class="row"><input type="text" name="ref" class="ref" placeholder="Réf."`)
		h.attr("value", item.Ref)
		h.raw(`><input type="text" name="name" class="grow" placeholder="Nom de la prestation"`)
		h.attr("value", item.Name)
		h.raw(`><button type="button" class="btn-delete" title="Supprimer"`)
		h.attr("hx-delete", ItemURL(item.PhaseID, item.ID))
		h.raw(` hx-target="#workspace" hx-swap="outerHTML">&times;</button></div>`)
		h.raw(`<div class="row">`)
		quantityInput(h, item, false)
		h.raw(`<select name="unit" class="grow">`)
		for _, u := range units {
			h.raw(`<option`)
			h.attr("value", u)
			h.flag("selected", u == item.Unit)
			h.raw(`>`)
			h.text(u)
			h.raw(`</option>`)
		}
		h.raw(`</select>`)
		priceInput(h, item)
		h.raw(`</div>`)
	} else {
		h.raw(`<div class="row"><input type="hidden" name="active" value="false"><input type="checkbox" name="active" value="true"`)
		h.attr("id", "service-"+item.ID)
		h.flag("checked", item.Active)
		h.raw(`><label class="grow"`)
		h.attr("for", "service-"+item.ID)
		h.raw(`><span class="mono muted">`)
		h.text(item.Ref)
		h.raw(`</span> `)
		h.text(item.Name)
		h.raw(`</label>`)
		quantityInput(h, item, !item.Active)
		h.raw(`<span class="unit">`)
		h.text(item.Unit)
		h.raw(`</span>`)
		priceInput(h, item)
		h.raw(`</div>`)
	}
	h.raw(`</form>`)
}

func quantityInput(h *htmlWriter, item ItemView, disabled bool) {
	h.raw(`<input type="number" name="quantity" class="qty" min="0" step="0.5"`)
	h.attr("value", item.Quantity)
	h.flag("disabled", disabled)
	h.raw(`>`)
}

func priceInput(h *htmlWriter, item ItemView) {
	h.raw(`<input type="text" name="price" class="price" inputmode="decimal" title="Prix unitaire HT"`)
	h.attr("value", item.Price)
	h.attr("placeholder", item.DefaultPrice)
	h.raw(`>`)
}
