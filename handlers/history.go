package handlers

import (
	"log"
	"mime"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"quotegen/templates"
)

// HistoryExportFilename is the download name of the history backup.
const HistoryExportFilename = "historique-devis.json"

// HandleHistoryList renders the finalized quotes, most recent first.
func HandleHistoryList(s *Session) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return render(e, templates.HistoryList(historyViews(s.History().List())))
	}
}

// HandleHistoryLoad makes a finalized quote the current one.
func HandleHistoryLoad(s *Session, cfg Settings) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		quoteNumber := e.Request.PathValue("quoteNumber")
		doc, err := s.Load(quoteNumber)
		if err != nil {
			if isNotFound(err) {
				return ErrorToast(e, http.StatusNotFound, "Devis introuvable")
			}
			log.Printf("history: load %s: %v", quoteNumber, err)
			return ErrorToast(e, http.StatusInternalServerError, "Impossible de charger le devis")
		}
		SetToast(e, "info", "Devis "+doc.QuoteNumber+" chargé")
		return renderWorkspace(e, s, cfg)
	}
}

// HandleHistoryClear deletes every finalized quote.
func HandleHistoryClear(s *Session) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := s.History().Clear(); err != nil {
			log.Printf("history: clear: %v", err)
			return ErrorToast(e, http.StatusInternalServerError, "Impossible de vider l'historique")
		}
		SetToast(e, "success", "Historique vidé")
		return render(e, templates.HistoryList(nil))
	}
}

// HandleHistoryExport downloads the whole history as one JSON array.
func HandleHistoryExport(s *Session) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := s.History().ExportBlob()
		if err != nil {
			log.Printf("history: export: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to export history")
		}
		e.Response.Header().Set("Content-Type", "application/json")
		e.Response.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": HistoryExportFilename}))
		_, err = e.Response.Write(data)
		return err
	}
}
