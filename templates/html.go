// Package templates renders the quote builder pages and fragments as templ
// components.
package templates

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/a-h/templ"

	"quotegen/services"
)

// htmlWriter writes markup and keeps the first write error so components can
// render without checking every call.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newHTMLWriter(ctx context.Context, w io.Writer) *htmlWriter {
	return &htmlWriter{ctx: ctx, w: w}
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// text writes s escaped for use as element content.
func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// flag writes a boolean attribute when on is true.
func (h *htmlWriter) flag(name string, on bool) {
	if on {
		h.raw(" " + name)
	}
}

func (h *htmlWriter) render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// component wraps a render func in a templ.Component.
func component(fn func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := newHTMLWriter(ctx, w)
		fn(h)
		return h.err
	})
}

// ItemURL is the endpoint for a line item of a phase.
func ItemURL(phaseID, itemID string) string {
	return PhaseItemsURL(phaseID) + "/" + url.PathEscape(itemID)
}

// PhaseItemsURL is the endpoint adding items to a phase.
func PhaseItemsURL(phaseID string) string {
	return "/quote/phases/" + url.PathEscape(phaseID) + "/items"
}

func pathEscape(s string) string {
	return url.PathEscape(s)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// itemDays is the day count of an item row, or a dash when the unit is not
// counted in days.
func itemDays(r services.ExportRow) string {
	if !r.HasDays {
		return services.NotApplicable
	}
	return services.FormatQuantity(r.Days)
}
