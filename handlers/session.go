package handlers

import (
	"slices"
	"sync"
	"time"

	"quotegen/services"
)

// DefaultServices are selected when the app starts.
var DefaultServices = []string{"refonte"}

// Session is the editing state shared by all requests: the quote being edited
// and the service types shown in the editor. Every mutation goes through it.
type Session struct {
	mu       sync.Mutex
	doc      services.QuoteDocument
	selected []string
	history  *services.HistoryStore
	now      func() time.Time
}

// NewSession starts with a fresh quote and the default service selection.
func NewSession(history *services.HistoryStore) *Session {
	return newSessionAt(history, time.Now)
}

func newSessionAt(history *services.HistoryStore, now func() time.Time) *Session {
	return &Session{
		doc:      services.NewQuote(now()),
		selected: slices.Clone(DefaultServices),
		history:  history,
		now:      now,
	}
}

// Document returns a copy of the current quote.
func (s *Session) Document() services.QuoteDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// History returns the store finalized quotes go to.
func (s *Session) History() *services.HistoryStore {
	return s.history
}

// NewQuote discards the current quote and starts a new one.
func (s *Session) NewQuote() services.QuoteDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = services.NewQuote(s.now())
	return s.doc.Clone()
}

func (s *Session) SetField(field services.Field, value string) (services.QuoteDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := services.SetField(s.doc, field, value)
	if err != nil {
		return s.doc.Clone(), err
	}
	s.doc = doc
	return s.doc.Clone(), nil
}

func (s *Session) SetItem(phaseID, itemID string, patch services.ItemPatch) services.QuoteDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = services.SetItem(s.doc, phaseID, itemID, patch)
	return s.doc.Clone()
}

func (s *Session) AddItem(phaseID string) services.QuoteDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = services.AddCustomItem(s.doc, phaseID)
	return s.doc.Clone()
}

func (s *Session) DeleteItem(phaseID, itemID string) services.QuoteDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = services.DeleteItem(s.doc, phaseID, itemID)
	return s.doc.Clone()
}

// ToggleService selects or deselects a service type. Unknown IDs are ignored.
func (s *Session) ToggleService(id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !knownService(id) {
		return slices.Clone(s.selected)
	}
	if i := slices.Index(s.selected, id); i >= 0 {
		s.selected = slices.Delete(s.selected, i, i+1)
	} else {
		s.selected = append(s.selected, id)
	}
	return slices.Clone(s.selected)
}

// ClearServices deselects every service type.
func (s *Session) ClearServices() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = nil
}

func (s *Session) SelectedServices() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.selected)
}

// VisiblePhases returns the phases of the current quote whose service type is
// selected, in document order. The preview and exports always use the whole
// document.
func (s *Session) VisiblePhases() []services.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []services.Phase
	for _, p := range s.doc.Phases {
		if slices.Contains(s.selected, p.ID) {
			out = append(out, p)
		}
	}
	return services.ClonePhases(out)
}

// Finalize saves the current quote to history. It returns false when the
// quote is incomplete.
func (s *Session) Finalize() (bool, error) {
	doc := s.Document()
	return s.history.Finalize(doc)
}

// Load replaces the current quote with a finalized one from history.
func (s *Session) Load(quoteNumber string) (services.QuoteDocument, error) {
	doc, err := s.history.Get(quoteNumber)
	if err != nil {
		return services.QuoteDocument{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc.Clone()
	return s.doc.Clone(), nil
}

func knownService(id string) bool {
	for _, o := range services.ServiceOptions {
		if o.ID == id {
			return true
		}
	}
	return false
}
