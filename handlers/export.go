package handlers

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"mime"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"quotegen/services"
	"quotegen/templates"
)

// ExportFormat is a downloadable rendering of a quote.
type ExportFormat string

const (
	ExportExcel ExportFormat = "excel"
	ExportPDF   ExportFormat = "pdf"
	ExportJPEG  ExportFormat = "jpg"
)

var exportTypes = map[ExportFormat]struct {
	ext         string
	contentType string
}{
	ExportExcel: {"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	ExportPDF:   {"pdf", "application/pdf"},
	ExportJPEG:  {"jpg", "image/jpeg"},
}

// ParseExportFormat accepts a format name or file extension.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "excel", "xlsx":
		return ExportExcel, nil
	case "pdf":
		return ExportPDF, nil
	case "jpg", "jpeg":
		return ExportJPEG, nil
	}
	return "", fmt.Errorf("unknown export format %q (want xlsx, pdf or jpg)", s)
}

// Ext is the file extension of the format.
func (f ExportFormat) Ext() string {
	return exportTypes[f].ext
}

// ExportFilename names a downloaded quote: "DEVIS ACME X DEVSOURCE.xlsx".
func ExportFilename(clientName, brand, ext string) string {
	client := strings.ToUpper(strings.TrimSpace(clientName))
	name := fmt.Sprintf("DEVIS %s X %s.%s", client, strings.ToUpper(brand), ext)
	return sanitizeFilename(name)
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	return strings.NewReplacer("/", "-", "\\", "-", ":", "-", `"`, "").Replace(s)
}

// HandleQuoteExport saves the current quote to history, then sends it in the
// requested format. An incomplete quote is refused and nothing is exported.
//
// An HTMX request only finalizes and answers with HX-Redirect back to the same
// URL, so the browser downloads the file with a plain request.
func HandleQuoteExport(s *Session, cfg Settings, format ExportFormat) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ft, ok := exportTypes[format]
		if !ok {
			return e.String(http.StatusNotFound, "Unknown export format")
		}

		doc := s.Document()
		if !services.HasActiveItems(doc) {
			return ErrorToast(e, http.StatusBadRequest, "Aucune prestation sélectionnée.")
		}
		saved, err := s.History().Finalize(doc)
		if err != nil {
			log.Printf("export_%s: finalize %s: %v", format, doc.QuoteNumber, err)
			return ErrorToast(e, http.StatusInternalServerError, "Impossible d'enregistrer le devis")
		}
		if !saved {
			return ErrorToast(e, http.StatusBadRequest, msgIncompleteQuote)
		}

		if e.Request.Header.Get("HX-Request") == "true" {
			trigger(e, historyChangedEvent, nil)
			e.Response.Header().Set("HX-Redirect", e.Request.URL.Path)
			return e.NoContent(http.StatusNoContent)
		}

		body, err := RenderExport(e.Request.Context(), doc, cfg, format)
		if err != nil {
			log.Printf("export_%s: failed to generate %s: %v", format, doc.QuoteNumber, err)
			return e.String(http.StatusInternalServerError, "Failed to generate export")
		}

		filename := ExportFilename(doc.ClientName, cfg.Brand, ft.ext)
		e.Response.Header().Set("Content-Type", ft.contentType)
		e.Response.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
		_, err = e.Response.Write(body)
		return err
	}
}

// RenderExport produces the file contents of doc in the given format.
func RenderExport(ctx context.Context, doc services.QuoteDocument, cfg Settings, format ExportFormat) ([]byte, error) {
	data := services.BuildExportTable(doc)
	switch format {
	case ExportExcel:
		return services.GenerateExcel(data)
	case ExportPDF:
		return services.GeneratePDF(data, services.Company{
			Name:    cfg.Issuer.Name,
			Address: cfg.Issuer.Address,
			City:    cfg.Issuer.City,
			Email:   cfg.Issuer.Email,
		})
	case ExportJPEG:
		if cfg.Renderer == nil {
			return nil, fmt.Errorf("no preview renderer configured")
		}
		var html bytes.Buffer
		if err := templates.PreviewDocument(previewData(doc, cfg.Issuer)).Render(ctx, &html); err != nil {
			return nil, fmt.Errorf("render preview: %w", err)
		}
		return services.GenerateJPEG(ctx, cfg.Renderer, html.String(), cfg.Image)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}
