package handlers

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"quotegen/services"
	"quotegen/templates"
	"quotegen/testhelpers"
)

// testNow numbers every test quote DS-20250714-0930.
var testNow = time.Date(2025, 7, 14, 9, 30, 0, 0, time.UTC)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// newTestSession returns a session over a fresh history, with the clock fixed
// at testNow.
func newTestSession(t *testing.T) (*Session, *pocketbase.PocketBase) {
	t.Helper()
	app := testhelpers.NewTestApp(t)
	s := newSessionAt(services.NewHistoryStore(app), func() time.Time { return testNow })
	return s, app
}

func testSettings() Settings {
	return Settings{
		Brand: "Devsource",
		Issuer: templates.Issuer{
			Name:    "Devsource",
			Address: "12 rue des Lilas",
			City:    "75011 Paris",
			Email:   "contact@devsource.fr",
		},
		Renderer: pngRenderer{},
		Image:    services.ImageOptions{Quality: 80},
	}
}

// pngRenderer stands in for Chrome and returns a small opaque PNG.
type pngRenderer struct{}

func (pngRenderer) Capture(context.Context, string) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	for y := range 20 {
		for x := range 40 {
			img.Set(x, y, color.NRGBA{R: 26, G: 54, B: 56, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// serve runs handler for a request with the given path values and returns the
// recorder.
func serve(t *testing.T, app *pocketbase.PocketBase, handler func(*core.RequestEvent) error, req *http.Request, pathValues map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	rec := httptest.NewRecorder()
	if err := handler(newTestRequestEvent(app, req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

// formRequest builds a urlencoded request, as htmx sends it.
func formRequest(method, target string, form url.Values) *http.Request {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return req
}

// completeSession fills the session's quote so it can be finalized: client and
// project set, item 1.3 active.
func completeSession(t *testing.T, s *Session) {
	t.Helper()
	if _, err := s.SetField(services.FieldClientName, "Acme"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SetField(services.FieldProjectName, "Site vitrine"); err != nil {
		t.Fatal(err)
	}
	active := true
	s.SetItem("refonte", "1.3", services.ItemPatch{Active: &active})
}
