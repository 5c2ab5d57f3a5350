package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pocketbase/pocketbase/core"
)

// HistoryCollection stores one record per finalized quote.
const HistoryCollection = "quote_history"

var ErrQuoteNotFound = errors.New("quote not found in history")

// HistoryStore keeps finalized quotes, most recently finalized first, unique
// by quote number.
type HistoryStore struct {
	app core.App
}

// NewHistoryStore returns a store backed by the quote_history collection.
func NewHistoryStore(app core.App) *HistoryStore {
	return &HistoryStore{app: app}
}

// Finalize validates doc and saves it to history. An incomplete document is
// rejected with false and nothing is written. Saving a quote number that is
// already in history replaces that entry and moves it to the front.
func (s *HistoryStore) Finalize(doc QuoteDocument) (bool, error) {
	if err := doc.Validate(); err != nil {
		return false, nil
	}
	if err := s.upsert(s.app, doc); err != nil {
		return false, err
	}
	return true, nil
}

func (s *HistoryStore) upsert(app core.App, doc QuoteDocument) error {
	col, err := app.FindCollectionByNameOrId(HistoryCollection)
	if err != nil {
		return fmt.Errorf("history collection not found: %w", err)
	}

	record, err := app.FindFirstRecordByData(col, "quote_number", doc.QuoteNumber)
	if err != nil {
		record = core.NewRecord(col)
		record.Set("quote_number", doc.QuoteNumber)
	}

	seq, err := s.nextSeq(app, col)
	if err != nil {
		return err
	}

	record.Set("seq", seq)
	record.Set("client_name", doc.ClientName)
	record.Set("project_name", doc.ProjectName)
	record.Set("date", doc.Date)
	record.Set("total_ttc", ComputeTotals(doc).TotalTTC)
	record.Set("document", doc.Clone())

	if err := app.Save(record); err != nil {
		return fmt.Errorf("save quote %s: %w", doc.QuoteNumber, err)
	}
	return nil
}

func (s *HistoryStore) nextSeq(app core.App, col *core.Collection) (int, error) {
	latest, err := app.FindRecordsByFilter(col, "seq >= 0", "-seq", 1, 0, nil)
	if err != nil {
		return 0, fmt.Errorf("read history sequence: %w", err)
	}
	if len(latest) == 0 {
		return 1, nil
	}
	return latest[0].GetInt("seq") + 1, nil
}

// List returns the history, most recent first. Storage errors are logged and
// yield an empty history; entries that cannot be decoded are skipped.
func (s *HistoryStore) List() []QuoteDocument {
	const op = "history.List"

	records, err := s.app.FindRecordsByFilter(HistoryCollection, "seq >= 0", "-seq", 0, 0, nil)
	if err != nil {
		s.logger().Error("failed to read quote history", "op", op, "err", err)
		return []QuoteDocument{}
	}

	docs := make([]QuoteDocument, 0, len(records))
	for _, r := range records {
		doc, err := decodeHistoryRecord(r)
		if err != nil {
			s.logger().Warn("skipping unreadable history entry", "op", op, "id", r.Id, "err", err)
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}

// Get loads one finalized quote by number.
func (s *HistoryStore) Get(quoteNumber string) (QuoteDocument, error) {
	record, err := s.app.FindFirstRecordByData(HistoryCollection, "quote_number", quoteNumber)
	if err != nil {
		return QuoteDocument{}, fmt.Errorf("%w: %s", ErrQuoteNotFound, quoteNumber)
	}
	return decodeHistoryRecord(record)
}

// Clear deletes every history entry.
func (s *HistoryStore) Clear() error {
	return s.app.RunInTransaction(func(txApp core.App) error {
		records, err := txApp.FindAllRecords(HistoryCollection)
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}
		for _, r := range records {
			if err := txApp.Delete(r); err != nil {
				return fmt.Errorf("delete quote %s: %w", r.GetString("quote_number"), err)
			}
		}
		return nil
	})
}

// ExportBlob serializes the whole history as a single JSON array, most recent
// first, in the same shape the browser version kept in local storage.
func (s *HistoryStore) ExportBlob() ([]byte, error) {
	return json.MarshalIndent(s.List(), "", "  ")
}

// ImportBlob loads a JSON array of quotes (most recent first) into history.
// Entries already present are replaced. Incomplete quotes are skipped. It
// returns the number of quotes imported.
func (s *HistoryStore) ImportBlob(data []byte) (int, error) {
	var docs []QuoteDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return 0, fmt.Errorf("decode history: %w", err)
	}

	imported := 0
	err := s.app.RunInTransaction(func(txApp core.App) error {
		// Oldest first so the most recent entry ends up with the highest seq.
		for i := len(docs) - 1; i >= 0; i-- {
			doc := docs[i]
			if doc.Validate() != nil || doc.QuoteNumber == "" {
				s.logger().Warn("skipping incomplete quote", "op", "history.ImportBlob", "quote", doc.QuoteNumber)
				continue
			}
			if err := s.upsert(txApp, doc); err != nil {
				return err
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}

func (s *HistoryStore) logger() *slog.Logger {
	return s.app.Logger()
}

func decodeHistoryRecord(r *core.Record) (QuoteDocument, error) {
	var doc QuoteDocument
	if err := r.UnmarshalJSONField("document", &doc); err != nil {
		return QuoteDocument{}, fmt.Errorf("decode quote %s: %w", r.GetString("quote_number"), err)
	}
	if doc.QuoteNumber == "" {
		return QuoteDocument{}, fmt.Errorf("record %s has no quote number", r.Id)
	}
	return doc, nil
}
