package handlers

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/pocketbase/pocketbase/core"

	"quotegen/services"
	"quotegen/templates"
)

// Settings carries what handlers need besides the session.
type Settings struct {
	// Brand ends every export file name.
	Brand    string
	Issuer   templates.Issuer
	Renderer services.PreviewRenderer
	Image    services.ImageOptions
}

func workspaceData(s *Session, cfg Settings) templates.WorkspaceData {
	doc := s.Document()
	selected := s.SelectedServices()

	serviceViews := make([]templates.ServiceView, 0, len(services.ServiceOptions))
	for _, o := range services.ServiceOptions {
		serviceViews = append(serviceViews, templates.ServiceView{
			ID:       o.ID,
			Label:    o.Label,
			Selected: slices.Contains(selected, o.ID),
		})
	}

	return templates.WorkspaceData{
		Services:  serviceViews,
		CanExport: services.HasActiveItems(doc),
		Form:      formData(doc, s.VisiblePhases()),
		Preview:   previewData(doc, cfg.Issuer),
	}
}

func formData(doc services.QuoteDocument, visible []services.Phase) templates.QuoteFormData {
	units := make([]string, 0, len(services.Units))
	for _, u := range services.Units {
		units = append(units, u.String())
	}

	phases := make([]templates.PhaseView, 0, len(visible))
	for _, p := range visible {
		pv := templates.PhaseView{ID: p.ID, Title: p.Title, Subtitle: p.Subtitle}
		for _, item := range p.Items {
			pv.Items = append(pv.Items, itemView(p.ID, item))
		}
		phases = append(phases, pv)
	}

	return templates.QuoteFormData{
		ClientName:  doc.ClientName,
		ProjectName: doc.ProjectName,
		QuoteNumber: doc.QuoteNumber,
		Date:        doc.Date,
		Phases:      phases,
		Units:       units,
	}
}

func itemView(phaseID string, item services.LineItem) templates.ItemView {
	unitDefault := item
	unitDefault.Price = nil

	v := templates.ItemView{
		PhaseID:      phaseID,
		ID:           item.ID,
		Ref:          item.Ref,
		Name:         item.Name,
		Unit:         item.UnitLabel(),
		Quantity:     strconv.FormatFloat(item.Quantity, 'f', -1, 64),
		DefaultPrice: services.FormatQuantity(services.UnitPrice(unitDefault)),
		Active:       item.Active,
		Custom:       services.IsCustomItem(item),
	}
	if item.Price != nil {
		v.Price = inputNumber(*item.Price)
	}
	return v
}

// inputNumber writes v into a form field without rounding, so resubmitting an
// unchanged field stores the same value.
func inputNumber(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', -1, 64), ".", ",", 1)
}

func previewData(doc services.QuoteDocument, issuer templates.Issuer) templates.PreviewData {
	return templates.PreviewData{
		Issuer: issuer,
		Data:   services.BuildExportTable(doc),
	}
}

func historyViews(docs []services.QuoteDocument) []templates.HistoryEntryView {
	views := make([]templates.HistoryEntryView, 0, len(docs))
	for _, d := range docs {
		views = append(views, templates.HistoryEntryView{
			QuoteNumber: d.QuoteNumber,
			ClientName:  d.ClientName,
			ProjectName: d.ProjectName,
			Date:        d.Date,
			TotalTTC:    services.FormatEUR(services.ComputeTotals(d).TotalTTC),
		})
	}
	return views
}

func pageData(s *Session, cfg Settings) templates.PageData {
	return templates.PageData{
		Workspace: workspaceData(s, cfg),
		History:   historyViews(s.History().List()),
		Year:      time.Now().Year(),
		Company:   cfg.Issuer.Name,
	}
}

func render(e *core.RequestEvent, c templ.Component) error {
	e.Response.Header().Set("Content-Type", "text/html; charset=utf-8")
	return c.Render(e.Request.Context(), e.Response)
}

func renderWorkspace(e *core.RequestEvent, s *Session, cfg Settings) error {
	return render(e, templates.Workspace(workspaceData(s, cfg)))
}
