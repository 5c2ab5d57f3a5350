package handlers

import (
	"errors"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"

	"quotegen/services"
	"quotegen/templates"
)

// msgIncompleteQuote is shown when finalizing a quote without client or
// project name.
const msgIncompleteQuote = "Veuillez renseigner le nom du client et du projet avant de continuer."

// HandleQuotePage renders the quote builder. HTMX requests get the workspace
// fragment only.
func HandleQuotePage(s *Session, cfg Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if e.Request.Header.Get("HX-Request") == "true" {
			return renderWorkspace(e, s, cfg)
		}
		return render(e, templates.Page(pageData(s, cfg)))
	}
}

// HandleQuotePreview renders the printable preview of the current quote.
func HandleQuotePreview(s *Session, cfg Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return render(e, templates.Preview(previewData(s.Document(), cfg.Issuer)))
	}
}

// HandleQuoteNew starts a new quote from the catalog.
func HandleQuoteNew(s *Session, cfg Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		doc := s.NewQuote()
		log.Printf("quote: started %s", doc.QuoteNumber)
		return renderWorkspace(e, s, cfg)
	}
}

// HandleQuoteFields updates the header fields present in the form.
func HandleQuoteFields(s *Session, cfg Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Formulaire invalide")
		}
		fields := []services.Field{services.FieldClientName, services.FieldProjectName, services.FieldDate}
		for _, f := range fields {
			if !e.Request.PostForm.Has(string(f)) {
				continue
			}
			if _, err := s.SetField(f, e.Request.PostForm.Get(string(f))); err != nil {
				log.Printf("quote: set %s: %v", f, err)
				return ErrorToast(e, http.StatusBadRequest, "Champ non modifiable")
			}
		}
		return renderWorkspace(e, s, cfg)
	}
}

// HandleQuoteFinalize saves the current quote to history.
func HandleQuoteFinalize(s *Session) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ok, err := s.Finalize()
		if err != nil {
			log.Printf("quote: finalize: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Impossible d'enregistrer le devis")
		}
		if !ok {
			return ErrorToast(e, http.StatusBadRequest, msgIncompleteQuote)
		}
		trigger(e, historyChangedEvent, nil)
		SetToast(e, "success", "Devis enregistré dans l'historique")
		return e.NoContent(http.StatusNoContent)
	}
}

// HandleItemAdd appends a custom item to the phase.
func HandleItemAdd(s *Session, cfg Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s.AddItem(e.Request.PathValue("phaseId"))
		return renderWorkspace(e, s, cfg)
	}
}

// HandleItemPatch applies the submitted item fields.
func HandleItemPatch(s *Session, cfg Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := e.Request.ParseForm(); err != nil {
			return ErrorToast(e, http.StatusBadRequest, "Formulaire invalide")
		}
		patch := parseItemPatch(e.Request.PostForm)
		s.SetItem(e.Request.PathValue("phaseId"), e.Request.PathValue("itemId"), patch)
		return renderWorkspace(e, s, cfg)
	}
}

// HandleItemDelete removes an item from its phase.
func HandleItemDelete(s *Session, cfg Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s.DeleteItem(e.Request.PathValue("phaseId"), e.Request.PathValue("itemId"))
		return renderWorkspace(e, s, cfg)
	}
}

// HandleServiceToggle selects or deselects a service type in the editor.
func HandleServiceToggle(s *Session, cfg Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s.ToggleService(e.Request.PathValue("serviceId"))
		return renderWorkspace(e, s, cfg)
	}
}

// HandleServicesClear deselects every service type.
func HandleServicesClear(s *Session, cfg Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		s.ClearServices()
		return renderWorkspace(e, s, cfg)
	}
}

// parseItemPatch reads the item editor form. Fields absent from the form are
// left unchanged; an empty price restores the unit default. When a checkbox
// is paired with a hidden fallback input, the last "active" value wins.
func parseItemPatch(form url.Values) services.ItemPatch {
	var p services.ItemPatch
	if vals := form["active"]; len(vals) > 0 {
		active := cast.ToBool(vals[len(vals)-1])
		p.Active = &active
	}
	if form.Has("quantity") {
		q := services.ParseQuantity(form.Get("quantity"))
		p.Quantity = &q
	}
	if form.Has("unit") {
		u := services.ParseUnit(form.Get("unit"))
		p.Unit = &u
	}
	if form.Has("ref") {
		ref := form.Get("ref")
		p.Ref = &ref
	}
	if form.Has("name") {
		name := form.Get("name")
		p.Name = &name
	}
	if form.Has("price") {
		raw := strings.TrimSpace(form.Get("price"))
		if raw == "" {
			p.ClearPrice = true
		} else {
			price := services.ParseQuantity(raw)
			p.Price = &price
		}
	}
	return p
}

func isNotFound(err error) bool {
	return errors.Is(err, services.ErrQuoteNotFound)
}
