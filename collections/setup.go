// Package collections creates the pocketbase collections the app stores data in.
package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase/core"

	"quotegen/services"
)

// Setup ensures the quote_history collection exists. It is safe to call on
// every start.
func Setup(app core.App) error {
	_, err := ensureCollection(app, services.HistoryCollection, func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "quote_number", Required: true})
		c.Fields.Add(&core.NumberField{Name: "seq", Required: true, OnlyInt: true})
		c.Fields.Add(&core.TextField{Name: "client_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "project_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "date"})
		c.Fields.Add(&core.NumberField{Name: "total_ttc"})
		c.Fields.Add(&core.JSONField{Name: "document", Required: true, MaxSize: 2 << 20})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		c.AddIndex("idx_quote_history_number", true, "quote_number", "")
		c.AddIndex("idx_quote_history_seq", false, "seq", "")
	})
	return err
}

// ensureCollection returns the named collection, creating it with the fields
// added by define when it does not exist yet.
func ensureCollection(app core.App, name string, define func(*core.Collection)) (*core.Collection, error) {
	if existing, err := app.FindCollectionByNameOrId(name); err == nil {
		return existing, nil
	}

	collection := core.NewBaseCollection(name)
	define(collection)
	if err := app.Save(collection); err != nil {
		return nil, fmt.Errorf("create collection %q: %w", name, err)
	}

	log.Printf("collections: created %q (id=%s)", name, collection.Id)
	return collection, nil
}
