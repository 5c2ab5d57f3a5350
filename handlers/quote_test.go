package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"quotegen/services"
	"quotegen/templates"
	"quotegen/testhelpers"
)

func TestHandleQuotePage_FullPage(t *testing.T) {
	s, app := newTestSession(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := serve(t, app, HandleQuotePage(s, testSettings()), req, nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body,
		"<!DOCTYPE html>",
		"Générateur de Devis",
		`<div id="workspace">`,
		`<div id="history"`,
		"DS-20250714-0930",
		"PHASE 1 - REFONTE",
	)
}

func TestHandleQuotePage_HTMXGetsWorkspace(t *testing.T) {
	s, app := newTestSession(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("HX-Request", "true")
	rec := serve(t, app, HandleQuotePage(s, testSettings()), req, nil)

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, `<div id="workspace">`)
	testhelpers.AssertHTMLNotContains(t, body, "<!DOCTYPE html>", `<div id="history"`)
}

func TestHandleQuotePreview(t *testing.T) {
	s, app := newTestSession(t)
	completeSession(t, s)

	req := httptest.NewRequest(http.MethodGet, "/quote/preview", nil)
	rec := serve(t, app, HandleQuotePreview(s, testSettings()), req, nil)

	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		`id="quote-preview-content"`,
		"Acme",
		"Site vitrine",
		"Gestion de projet, conseil, stratégie",
		"1\u202f800,00\u00a0€",
	)
}

func TestHandleQuoteFields(t *testing.T) {
	s, app := newTestSession(t)

	form := url.Values{"clientName": {"Acme"}, "projectName": {"Site vitrine"}}
	rec := serve(t, app, HandleQuoteFields(s, testSettings()), formRequest(http.MethodPost, "/quote/fields", form), nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	doc := s.Document()
	if doc.ClientName != "Acme" || doc.ProjectName != "Site vitrine" {
		t.Errorf("fields not saved: %+v", doc)
	}
	if doc.Date != "14/07/2025" {
		t.Errorf("date absent from the form must be kept, got %q", doc.Date)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), `name="clientName" value="Acme"`)
}

func TestHandleQuoteFields_Date(t *testing.T) {
	s, app := newTestSession(t)

	form := url.Values{"date": {"01/09/2025"}}
	serve(t, app, HandleQuoteFields(s, testSettings()), formRequest(http.MethodPost, "/quote/fields", form), nil)

	if got := s.Document().Date; got != "01/09/2025" {
		t.Errorf("date = %q, want 01/09/2025", got)
	}
}

func TestHandleQuoteNew(t *testing.T) {
	s, app := newTestSession(t)
	completeSession(t, s)

	rec := serve(t, app, HandleQuoteNew(s, testSettings()), formRequest(http.MethodPost, "/quote/new", nil), nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	doc := s.Document()
	if doc.ClientName != "" || services.HasActiveItems(doc) {
		t.Errorf("expected a fresh quote, got %+v", doc)
	}
}

func TestHandleQuoteFinalize_Incomplete(t *testing.T) {
	s, app := newTestSession(t)

	rec := serve(t, app, HandleQuoteFinalize(s), formRequest(http.MethodPost, "/quote/finalize", nil), nil)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if toast := parseToast(t, rec); toast["message"] != msgIncompleteQuote {
		t.Errorf("toast = %q", toast["message"])
	}
	if n := len(s.History().List()); n != 0 {
		t.Errorf("expected empty history, got %d entries", n)
	}
}

func TestHandleQuoteFinalize_Success(t *testing.T) {
	s, app := newTestSession(t)
	completeSession(t, s)

	rec := serve(t, app, HandleQuoteFinalize(s), formRequest(http.MethodPost, "/quote/finalize", nil), nil)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	parsed := parseTrigger(t, rec)
	if _, ok := parsed[historyChangedEvent]; !ok {
		t.Error("expected historyChanged event")
	}
	history := s.History().List()
	if len(history) != 1 || history[0].QuoteNumber != "DS-20250714-0930" {
		t.Errorf("unexpected history: %+v", history)
	}
}

func TestHandleItemPatch(t *testing.T) {
	tests := []struct {
		name   string
		itemID string
		form   url.Values
		check  func(t *testing.T, item services.LineItem)
	}{
		{
			name:   "activate",
			itemID: "1.3",
			form:   url.Values{"active": {"false", "true"}, "quantity": {"3"}, "price": {""}},
			check: func(t *testing.T, item services.LineItem) {
				if !item.Active {
					t.Error("expected item to be active")
				}
			},
		},
		{
			name:   "deactivate",
			itemID: "1.3",
			form:   url.Values{"active": {"false"}, "price": {""}},
			check: func(t *testing.T, item services.LineItem) {
				if item.Active {
					t.Error("expected item to be inactive")
				}
			},
		},
		{
			name:   "decimal comma quantity",
			itemID: "1.4",
			form:   url.Values{"quantity": {"2,5"}},
			check: func(t *testing.T, item services.LineItem) {
				if item.Quantity != 2.5 {
					t.Errorf("quantity = %v, want 2.5", item.Quantity)
				}
			},
		},
		{
			name:   "garbage quantity",
			itemID: "1.4",
			form:   url.Values{"quantity": {"abc"}},
			check: func(t *testing.T, item services.LineItem) {
				if item.Quantity != 0 {
					t.Errorf("quantity = %v, want 0", item.Quantity)
				}
			},
		},
		{
			name:   "fixed price",
			itemID: "1.2",
			form:   url.Values{"price": {"750"}},
			check: func(t *testing.T, item services.LineItem) {
				if item.Price == nil || *item.Price != 750 {
					t.Errorf("price = %v, want 750", item.Price)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, app := newTestSession(t)
			target := "/quote/phases/refonte/items/" + tt.itemID
			rec := serve(t, app, HandleItemPatch(s, testSettings()),
				formRequest(http.MethodPatch, target, tt.form),
				map[string]string{"phaseId": "refonte", "itemId": tt.itemID})

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			for _, item := range s.Document().Phases[0].Items {
				if item.ID == tt.itemID {
					tt.check(t, item)
					return
				}
			}
			t.Fatalf("item %s not found", tt.itemID)
		})
	}
}

func TestHandleItemPatch_ActivatesExport(t *testing.T) {
	s, app := newTestSession(t)

	form := url.Values{"active": {"false", "true"}}
	rec := serve(t, app, HandleItemPatch(s, testSettings()),
		formRequest(http.MethodPatch, "/quote/phases/refonte/items/1.3", form),
		map[string]string{"phaseId": "refonte", "itemId": "1.3"})

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, `id="service-1.3" checked`, "1\u202f800,00\u00a0€")
	testhelpers.AssertHTMLNotContains(t, body, `hx-get="/quote/export/pdf" hx-swap="none" disabled`)
}

func TestHandleItemAddAndDelete(t *testing.T) {
	s, app := newTestSession(t)
	before := len(s.Document().Phases[0].Items)

	rec := serve(t, app, HandleItemAdd(s, testSettings()),
		formRequest(http.MethodPost, "/quote/phases/refonte/items", nil),
		map[string]string{"phaseId": "refonte"})

	items := s.Document().Phases[0].Items
	if len(items) != before+1 {
		t.Fatalf("expected %d items, got %d", before+1, len(items))
	}
	custom := items[len(items)-1]
	if !services.IsCustomItem(custom) {
		t.Fatalf("expected a custom item, got %+v", custom)
	}
	testhelpers.AssertHTMLContains(t, rec.Body.String(), `hx-delete="`+templates.ItemURL("refonte", custom.ID)+`"`)

	serve(t, app, HandleItemDelete(s, testSettings()),
		formRequest(http.MethodDelete, "/quote/phases/refonte/items/"+custom.ID, nil),
		map[string]string{"phaseId": "refonte", "itemId": custom.ID})

	if n := len(s.Document().Phases[0].Items); n != before {
		t.Errorf("expected %d items after delete, got %d", before, n)
	}
}

func TestHandleServiceToggleAndClear(t *testing.T) {
	s, app := newTestSession(t)

	rec := serve(t, app, HandleServiceToggle(s, testSettings()),
		formRequest(http.MethodPost, "/services/maintenance/toggle", nil),
		map[string]string{"serviceId": "maintenance"})

	testhelpers.AssertHTMLContains(t, rec.Body.String(), "PHASE 4 - MAINTENANCE ANNUELLE", "Tout désélectionner")

	rec = serve(t, app, HandleServicesClear(s, testSettings()),
		formRequest(http.MethodPost, "/services/clear", nil), nil)

	body := rec.Body.String()
	testhelpers.AssertHTMLContains(t, body, "Veuillez sélectionner au moins un type de prestation")
	testhelpers.AssertHTMLNotContains(t, body, "Tout désélectionner", "+ Ajouter une prestation")
}

func TestParseItemPatch(t *testing.T) {
	p := parseItemPatch(url.Values{})
	if p.Active != nil || p.Quantity != nil || p.Unit != nil || p.Price != nil || p.ClearPrice {
		t.Errorf("empty form must produce an empty patch, got %+v", p)
	}

	p = parseItemPatch(url.Values{
		"unit":  {"Forfait"},
		"ref":   {"1.9"},
		"name":  {"Recette"},
		"price": {"  "},
	})
	if p.Unit == nil || *p.Unit != services.UnitFlatRate {
		t.Errorf("unit = %v, want Forfait", p.Unit)
	}
	if p.Ref == nil || *p.Ref != "1.9" || p.Name == nil || *p.Name != "Recette" {
		t.Errorf("ref/name not parsed: %+v", p)
	}
	if !p.ClearPrice || p.Price != nil {
		t.Errorf("blank price must clear the fixed price, got %+v", p)
	}
}

func TestItemEditor_FixedPriceSurvivesResubmit(t *testing.T) {
	prices := []float64{12.345, 0.125, 1234.5678, 200}
	for _, price := range prices {
		t.Run(strconv.FormatFloat(price, 'f', -1, 64), func(t *testing.T) {
			s, app := newTestSession(t)
			s.SetItem("refonte", "1.3", services.ItemPatch{Price: &price})

			var view templates.ItemView
			for _, item := range s.Document().Phases[0].Items {
				if item.ID == "1.3" {
					view = itemView("refonte", item)
				}
			}

			// The whole item form is posted again when only the quantity changes.
			form := url.Values{"active": {"false", "true"}, "quantity": {"5"}, "price": {view.Price}}
			serve(t, app, HandleItemPatch(s, testSettings()),
				formRequest(http.MethodPatch, "/quote/phases/refonte/items/1.3", form),
				map[string]string{"phaseId": "refonte", "itemId": "1.3"})

			item := s.Document().Phases[0].Items[2]
			if item.Price == nil || *item.Price != price {
				t.Fatalf("price after resubmit = %v, want %v (rendered %q)", item.Price, price, view.Price)
			}
			if got, want := services.CalcLineTotal(item), price*5; got != want {
				t.Errorf("line total = %v, want %v", got, want)
			}
		})
	}
}

func TestItemView_PriceFormatting(t *testing.T) {
	price := 12.345
	v := itemView("refonte", services.LineItem{ID: "1.3", Unit: services.UnitDay, Quantity: 1, Price: &price})
	if v.Price != "12,345" {
		t.Errorf("Price = %q, want 12,345", v.Price)
	}
	if v.DefaultPrice != "500" {
		t.Errorf("DefaultPrice = %q, want 500", v.DefaultPrice)
	}
}
