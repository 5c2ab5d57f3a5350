package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotegen/services"
)

func phaseIDs(phases []services.Phase) []string {
	ids := make([]string, 0, len(phases))
	for _, p := range phases {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestSession_Defaults(t *testing.T) {
	s, _ := newTestSession(t)

	doc := s.Document()
	assert.Equal(t, "DS-20250714-0930", doc.QuoteNumber)
	assert.Equal(t, "14/07/2025", doc.Date)
	assert.Equal(t, []string{"refonte"}, s.SelectedServices())
	assert.Equal(t, []string{"refonte"}, phaseIDs(s.VisiblePhases()))
	assert.False(t, services.HasActiveItems(doc))
}

func TestSession_DocumentIsACopy(t *testing.T) {
	s, _ := newTestSession(t)

	doc := s.Document()
	doc.ClientName = "Changed"
	doc.Phases[0].Items[0].Active = true

	again := s.Document()
	assert.Empty(t, again.ClientName)
	assert.False(t, again.Phases[0].Items[0].Active)
}

func TestSession_SetField(t *testing.T) {
	s, _ := newTestSession(t)

	doc, err := s.SetField(services.FieldClientName, "Acme")
	require.NoError(t, err)
	assert.Equal(t, "Acme", doc.ClientName)

	_, err = s.SetField(services.FieldQuoteNumber, "DS-1")
	require.ErrorIs(t, err, services.ErrFieldNotSettable)
	assert.Equal(t, "DS-20250714-0930", s.Document().QuoteNumber)
	assert.Equal(t, "Acme", s.Document().ClientName)
}

func TestSession_ItemEdits(t *testing.T) {
	s, _ := newTestSession(t)

	active := true
	doc := s.SetItem("refonte", "1.3", services.ItemPatch{Active: &active})
	assert.InDelta(t, 1800, services.ComputeTotals(doc).TotalTTC, 1e-9)

	doc = s.AddItem("refonte")
	items := doc.Phases[0].Items
	custom := items[len(items)-1]
	assert.True(t, services.IsCustomItem(custom))

	doc = s.DeleteItem("refonte", custom.ID)
	assert.Len(t, doc.Phases[0].Items, len(items)-1)
}

func TestSession_ToggleService(t *testing.T) {
	s, _ := newTestSession(t)

	assert.Equal(t, []string{"refonte", "maintenance"}, s.ToggleService("maintenance"))
	assert.Equal(t, []string{"refonte", "maintenance"}, phaseIDs(s.VisiblePhases()))

	// Selection order does not change the phase order.
	s.ToggleService("développement")
	assert.Equal(t, []string{"refonte", "développement", "maintenance"}, phaseIDs(s.VisiblePhases()))

	assert.Equal(t, []string{"maintenance", "développement"}, s.ToggleService("refonte"))
	assert.Equal(t, []string{"maintenance", "développement"}, s.ToggleService("unknown"))

	s.ClearServices()
	assert.Empty(t, s.SelectedServices())
	assert.Empty(t, s.VisiblePhases())
	// Hidden phases still belong to the document.
	assert.Len(t, s.Document().Phases, 4)
}

func TestSession_NewQuoteKeepsSelection(t *testing.T) {
	s, _ := newTestSession(t)
	completeSession(t, s)
	s.ToggleService("maintenance")

	doc := s.NewQuote()
	assert.Empty(t, doc.ClientName)
	assert.False(t, services.HasActiveItems(doc))
	assert.Equal(t, []string{"refonte", "maintenance"}, s.SelectedServices())
}

func TestSession_FinalizeAndLoad(t *testing.T) {
	s, _ := newTestSession(t)

	ok, err := s.Finalize()
	require.NoError(t, err)
	assert.False(t, ok, "incomplete quote must be rejected")
	assert.Empty(t, s.History().List())

	completeSession(t, s)
	ok, err = s.Finalize()
	require.NoError(t, err)
	require.True(t, ok)

	s.NewQuote()
	assert.Empty(t, s.Document().ClientName)

	doc, err := s.Load("DS-20250714-0930")
	require.NoError(t, err)
	assert.Equal(t, "Acme", doc.ClientName)
	assert.Equal(t, "Acme", s.Document().ClientName)
	assert.InDelta(t, 1800, services.ComputeTotals(s.Document()).TotalTTC, 1e-9)
}

func TestSession_LoadNotFound(t *testing.T) {
	s, _ := newTestSession(t)
	completeSession(t, s)

	_, err := s.Load("DS-19990101-0000")
	require.Error(t, err)
	assert.True(t, isNotFound(err))
	assert.Equal(t, "Acme", s.Document().ClientName, "failed load must keep the current quote")
}
