// Package services provides the quote catalog, pricing rules, totals and
// export generators.
package services

import (
	"encoding/json"
	"strings"
)

// Unit is the billing unit of a line item.
type Unit int

const (
	UnitUnknown Unit = iota
	UnitDay
	UnitHalfDay
	UnitMeeting
	UnitFlatRate
	UnitAnnualFlatRate
)

// Units lists every known unit in the order shown in unit pickers.
var Units = []Unit{UnitDay, UnitHalfDay, UnitMeeting, UnitFlatRate, UnitAnnualFlatRate}

var unitLabels = map[Unit]string{
	UnitDay:            "Journée",
	UnitHalfDay:        "1/2 journée",
	UnitMeeting:        "Réunion",
	UnitFlatRate:       "Forfait",
	UnitAnnualFlatRate: "Forfait annuel",
}

// String returns the display label, which is also the persisted value.
func (u Unit) String() string {
	if label, ok := unitLabels[u]; ok {
		return label
	}
	return ""
}

// ParseUnit maps a label back to its Unit. Unrecognized labels yield UnitUnknown.
func ParseUnit(label string) Unit {
	label = strings.TrimSpace(label)
	for u, l := range unitLabels {
		if l == label {
			return u
		}
	}
	return UnitUnknown
}

func (u Unit) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

func (u *Unit) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	*u = ParseUnit(label)
	return nil
}

// LineItem is a single billable service of a phase.
type LineItem struct {
	ID       string   `json:"id"`
	Ref      string   `json:"ref"`
	Name     string   `json:"name"`
	Unit     Unit     `json:"unit"`
	Quantity float64  `json:"quantity"`
	Active   bool     `json:"active"`
	Price    *float64 `json:"price,omitempty"`

	// unitLabel holds an unrecognized unit label so it is written back as read.
	unitLabel string
}

// UnitLabel returns the persisted unit label, including labels this version
// does not know.
func (i LineItem) UnitLabel() string {
	if i.Unit == UnitUnknown {
		return i.unitLabel
	}
	return i.Unit.String()
}

func (i LineItem) MarshalJSON() ([]byte, error) {
	type wire LineItem
	return json.Marshal(struct {
		wire
		Unit string `json:"unit"`
	}{wire(i), i.UnitLabel()})
}

func (i *LineItem) UnmarshalJSON(data []byte) error {
	type wire LineItem
	aux := struct {
		*wire
		Unit string `json:"unit"`
	}{wire: (*wire)(i)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	i.Unit = ParseUnit(aux.Unit)
	i.unitLabel = ""
	if i.Unit == UnitUnknown {
		i.unitLabel = aux.Unit
	}
	return nil
}

// Phase groups the line items of one stage of work.
type Phase struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle,omitempty"`
	Items    []LineItem `json:"items"`
}

// ServiceOption is an entry of the service type selector.
type ServiceOption struct {
	ID    string
	Label string
}

// ServiceOptions are the selectable service types, keyed by phase ID.
var ServiceOptions = []ServiceOption{
	{ID: "refonte", Label: "Refonte"},
	{ID: "développement", Label: "Développement"},
	{ID: "hébergement", Label: "Hébergement"},
	{ID: "maintenance", Label: "Maintenance"},
}

func fixedPrice(v float64) *float64 { return &v }

// catalog is the seed for every new quote. It is never handed out directly;
// use Catalog to get a copy.
var catalog = []Phase{
	{
		ID:    "refonte",
		Title: "PHASE 1 - REFONTE",
		Items: []LineItem{
			{ID: "1.1", Ref: "1.1", Name: "Réunion de lancement, réunion de projet", Unit: UnitMeeting, Quantity: 4},
			{ID: "1.2", Ref: "1.2", Name: "Audit de la page d'accueil du site internet et recommandations stratégiques, éditoriales et graphiques", Unit: UnitFlatRate, Quantity: 1},
			{ID: "1.3", Ref: "1.3", Name: "Gestion de projet, conseil, stratégie", Unit: UnitDay, Quantity: 3},
			{ID: "1.4", Ref: "1.4", Name: "Conception fonctionnelle", Unit: UnitDay, Quantity: 3},
			{ID: "1.5", Ref: "1.5", Name: "Conception et réalisation graphique", Unit: UnitDay, Quantity: 4},
		},
	},
	{
		ID:    "développement",
		Title: "PHASE 2 - DÉVELOPPEMENT",
		Items: []LineItem{
			{ID: "2.1", Ref: "2.1", Name: "Développements", Unit: UnitDay, Quantity: 4},
			{ID: "2.2", Ref: "2.2", Name: "Intégration, migration, tests, correction des bugs et mise en ligne", Unit: UnitDay, Quantity: 2},
		},
	},
	{
		ID:       "hébergement",
		Title:    "PHASE 3 - HÉBERGEMENT",
		Subtitle: "pendant 1 ans",
		Items: []LineItem{
			{ID: "3.1", Ref: "3.1", Name: "Hébergement web", Unit: UnitAnnualFlatRate, Quantity: 1, Price: fixedPrice(200)},
			{ID: "3.2", Ref: "3.2", Name: "Infogérance du site", Unit: UnitAnnualFlatRate, Quantity: 1},
			{ID: "3.3", Ref: "3.3", Name: "Prise en charge du nom de domaine", Unit: UnitAnnualFlatRate, Quantity: 1, Price: fixedPrice(50)},
		},
	},
	{
		ID:    "maintenance",
		Title: "PHASE 4 - MAINTENANCE ANNUELLE",
		Items: []LineItem{
			{ID: "4.1", Ref: "4.1", Name: "Reprise de l'administration du site internet", Unit: UnitFlatRate, Quantity: 1},
			{ID: "4.2", Ref: "4.2", Name: "Audit et mise à niveau technique du site (mise à jour de la version WordPress et des extensions, correctifs)", Unit: UnitAnnualFlatRate, Quantity: 1},
			{ID: "4.3", Ref: "4.3", Name: "Formation du personnel à l'intégration et à la modification des contenus", Unit: UnitHalfDay, Quantity: 2},
			{ID: "4.4", Ref: "4.4", Name: "Mise à jour éditoriale (publication de contenus à hauteur de 5 publications d'articles + 5 publications)", Unit: UnitAnnualFlatRate, Quantity: 1},
			{ID: "4.5", Ref: "4.5", Name: "Suivi statistique (rapport envoyé chaque début de mois)", Unit: UnitAnnualFlatRate, Quantity: 1},
			{ID: "4.6", Ref: "4.6", Name: "Maintenance corrective (modification du site)", Unit: UnitHalfDay, Quantity: 4},
			{ID: "4.7", Ref: "4.7", Name: "Audit environnemental du site et propositions de correctifs si nécessaire pour obtention d'un label \"site vert\"", Unit: UnitFlatRate, Quantity: 1},
			{ID: "4.8", Ref: "4.8", Name: "Audit SEO (référencement naturel) du site et propositions de correctifs si nécessaire", Unit: UnitFlatRate, Quantity: 1},
		},
	},
}

// Catalog returns a deep copy of the service catalog.
func Catalog() []Phase {
	return ClonePhases(catalog)
}

// ClonePhases deep-copies phases, including item slices and price overrides.
func ClonePhases(phases []Phase) []Phase {
	if phases == nil {
		return nil
	}
	out := make([]Phase, len(phases))
	for i, p := range phases {
		out[i] = p
		out[i].Items = cloneItems(p.Items)
	}
	return out
}

func cloneItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	for i, item := range items {
		out[i] = item
		if item.Price != nil {
			out[i].Price = fixedPrice(*item.Price)
		}
	}
	return out
}
