package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/spf13/cast"
)

var (
	ErrValidation       = errors.New("quote is incomplete")
	ErrFieldNotSettable = errors.New("field cannot be set")
)

// CustomItemPrefix marks line items added by the user rather than the catalog.
const CustomItemPrefix = "custom-"

// QuoteDocument is the quote being edited, and the snapshot stored in history.
type QuoteDocument struct {
	ClientName  string  `json:"clientName"`
	ProjectName string  `json:"projectName"`
	QuoteNumber string  `json:"quoteNumber"`
	Date        string  `json:"date"`
	Phases      []Phase `json:"phases"`
}

// Field names a document header field.
type Field string

const (
	FieldClientName  Field = "clientName"
	FieldProjectName Field = "projectName"
	FieldDate        Field = "date"
	FieldQuoteNumber Field = "quoteNumber"
)

// ItemPatch holds the line item fields to overwrite. Nil fields are left alone.
type ItemPatch struct {
	Active   *bool
	Quantity *float64
	Unit     *Unit
	Ref      *string
	Name     *string
	Price    *float64
	// ClearPrice drops the fixed price so the unit default applies again.
	ClearPrice bool
}

// NewQuote returns a fresh document seeded from the catalog.
func NewQuote(now time.Time) QuoteDocument {
	return QuoteDocument{
		QuoteNumber: GenerateQuoteNumber(now),
		Date:        FormatDate(now),
		Phases:      Catalog(),
	}
}

// Clone returns a copy of the document that shares no phase or item storage.
func (q QuoteDocument) Clone() QuoteDocument {
	q.Phases = ClonePhases(q.Phases)
	return q
}

// Validate checks the document can be finalized: client and project names
// are required. Names made only of whitespace count as missing.
func (q QuoteDocument) Validate() error {
	q.ClientName = strings.TrimSpace(q.ClientName)
	q.ProjectName = strings.TrimSpace(q.ProjectName)
	err := validation.ValidateStruct(&q,
		validation.Field(&q.ClientName, validation.Required.Error("le nom du client est requis")),
		validation.Field(&q.ProjectName, validation.Required.Error("le nom du projet est requis")),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

// SetField updates a header field. Only the client name, project name and
// date can be set; the quote number and phases are fixed.
func SetField(doc QuoteDocument, field Field, value string) (QuoteDocument, error) {
	out := doc.Clone()
	switch field {
	case FieldClientName:
		out.ClientName = value
	case FieldProjectName:
		out.ProjectName = value
	case FieldDate:
		out.Date = value
	default:
		return out, fmt.Errorf("%w: %q", ErrFieldNotSettable, field)
	}
	return out, nil
}

// SetItem merges patch into the matching item. Unknown phase or item IDs leave
// the document unchanged.
func SetItem(doc QuoteDocument, phaseID, itemID string, patch ItemPatch) QuoteDocument {
	out := doc.Clone()
	item := findItem(out.Phases, phaseID, itemID)
	if item == nil {
		return out
	}
	if patch.Active != nil {
		item.Active = *patch.Active
	}
	if patch.Quantity != nil {
		item.Quantity = sanitizeQuantity(*patch.Quantity)
	}
	if patch.Unit != nil {
		item.Unit = *patch.Unit
		item.unitLabel = ""
	}
	if patch.Ref != nil {
		item.Ref = *patch.Ref
	}
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.ClearPrice {
		item.Price = nil
	}
	if patch.Price != nil {
		item.Price = fixedPrice(*patch.Price)
	}
	return out
}

// AddCustomItem appends an editable one-day item to the phase.
func AddCustomItem(doc QuoteDocument, phaseID string) QuoteDocument {
	out := doc.Clone()
	for i := range out.Phases {
		if out.Phases[i].ID != phaseID {
			continue
		}
		out.Phases[i].Items = append(out.Phases[i].Items, LineItem{
			ID:       newCustomItemID(),
			Ref:      "C-X",
			Name:     "Nouvelle prestation personnalisée",
			Unit:     UnitDay,
			Quantity: 1,
			Active:   true,
		})
		break
	}
	return out
}

// DeleteItem removes the item from the phase. Unknown IDs are ignored.
func DeleteItem(doc QuoteDocument, phaseID, itemID string) QuoteDocument {
	out := doc.Clone()
	for i := range out.Phases {
		if out.Phases[i].ID != phaseID {
			continue
		}
		items := out.Phases[i].Items[:0]
		for _, item := range out.Phases[i].Items {
			if item.ID != itemID {
				items = append(items, item)
			}
		}
		out.Phases[i].Items = items
	}
	return out
}

// IsCustomItem reports whether the item was added by the user.
func IsCustomItem(item LineItem) bool {
	return strings.HasPrefix(item.ID, CustomItemPrefix)
}

// ParseQuantity converts form input to a quantity. Anything that is not a
// non-negative number becomes 0. A decimal comma is accepted.
func ParseQuantity(raw string) float64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	q, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0
	}
	return sanitizeQuantity(q)
}

func sanitizeQuantity(q float64) float64 {
	if math.IsNaN(q) || math.IsInf(q, 0) || q < 0 {
		return 0
	}
	return q
}

func findItem(phases []Phase, phaseID, itemID string) *LineItem {
	for i := range phases {
		if phases[i].ID != phaseID {
			continue
		}
		for j := range phases[i].Items {
			if phases[i].Items[j].ID == itemID {
				return &phases[i].Items[j]
			}
		}
	}
	return nil
}

func newCustomItemID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return CustomItemPrefix + id.String()
}
