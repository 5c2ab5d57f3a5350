// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"

	"quotegen/collections"
	"quotegen/services"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory,
// with the quote history collection in place. The directory is removed when
// the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: t.TempDir(),
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}
	if err := collections.Setup(app); err != nil {
		t.Fatalf("failed to set up collections: %v", err)
	}
	t.Cleanup(func() { _ = app.ResetBootstrapState() })

	return app
}

// CompleteQuote returns a quote that passes validation, numbered from at, with
// item 1.3 (3 days) active.
func CompleteQuote(client, project string, at time.Time) services.QuoteDocument {
	doc := services.NewQuote(at)
	doc.ClientName = client
	doc.ProjectName = project
	active := true
	qty := 3.0
	return services.SetItem(doc, "refonte", "1.3", services.ItemPatch{Active: &active, Quantity: &qty})
}

// FinalizeQuote saves a complete quote to history and fails the test if it
// is rejected.
func FinalizeQuote(t *testing.T, app *pocketbase.PocketBase, doc services.QuoteDocument) {
	t.Helper()

	ok, err := services.NewHistoryStore(app).Finalize(doc)
	if err != nil {
		t.Fatalf("failed to finalize %s: %v", doc.QuoteNumber, err)
	}
	if !ok {
		t.Fatalf("quote %s was rejected as incomplete", doc.QuoteNumber)
	}
}

// AssertHTMLContains checks that body contains all specified fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

// AssertHTMLNotContains checks that body contains none of the fragments.
func AssertHTMLNotContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if strings.Contains(body, frag) {
			t.Errorf("expected HTML not to contain %q", frag)
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
