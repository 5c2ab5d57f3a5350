package handlers

import (
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"
)

// RegisterRoutes binds the quote builder endpoints.
func RegisterRoutes(r *router.Router[*core.RequestEvent], s *Session, cfg Settings) {
	r.GET("/", HandleQuotePage(s, cfg))

	// ── Current quote ────────────────────────────────────────
	r.GET("/quote/preview", HandleQuotePreview(s, cfg))
	r.POST("/quote/new", HandleQuoteNew(s, cfg))
	r.POST("/quote/fields", HandleQuoteFields(s, cfg))
	r.POST("/quote/finalize", HandleQuoteFinalize(s))

	// ── Line items ───────────────────────────────────────────
	r.POST("/quote/phases/{phaseId}/items", HandleItemAdd(s, cfg))
	r.PATCH("/quote/phases/{phaseId}/items/{itemId}", HandleItemPatch(s, cfg))
	r.DELETE("/quote/phases/{phaseId}/items/{itemId}", HandleItemDelete(s, cfg))

	// ── Service filter ───────────────────────────────────────
	r.POST("/services/clear", HandleServicesClear(s, cfg))
	r.POST("/services/{serviceId}/toggle", HandleServiceToggle(s, cfg))

	// ── Exports ──────────────────────────────────────────────
	r.GET("/quote/export/excel", HandleQuoteExport(s, cfg, ExportExcel))
	r.GET("/quote/export/pdf", HandleQuoteExport(s, cfg, ExportPDF))
	r.GET("/quote/export/jpg", HandleQuoteExport(s, cfg, ExportJPEG))

	// ── History ──────────────────────────────────────────────
	r.GET("/history", HandleHistoryList(s))
	r.GET("/history/export", HandleHistoryExport(s))
	r.POST("/history/{quoteNumber}/load", HandleHistoryLoad(s, cfg))
	r.DELETE("/history", HandleHistoryClear(s))
}
