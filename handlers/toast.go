package handlers

import (
	"encoding/json"
	"log"

	"github.com/pocketbase/pocketbase/core"
)

// historyChangedEvent makes the history list reload itself.
const historyChangedEvent = "historyChanged"

// trigger adds an htmx client event to the HX-Trigger response header,
// keeping any events already set.
func trigger(e *core.RequestEvent, name string, detail any) {
	events := map[string]any{}
	if existing := e.Response.Header().Get("HX-Trigger"); existing != "" {
		if err := json.Unmarshal([]byte(existing), &events); err != nil {
			log.Printf("toast: existing HX-Trigger is not valid JSON, overwriting: %v", err)
			events = map[string]any{}
		}
	}
	if detail == nil {
		detail = true
	}
	events[name] = detail

	data, err := json.Marshal(events)
	if err != nil {
		log.Printf("toast: failed to marshal HX-Trigger JSON: %v", err)
		return
	}
	e.Response.Header().Set("HX-Trigger", string(data))
}

// SetToast shows a toast notification on the client via the showToast event.
func SetToast(e *core.RequestEvent, toastType string, message string) {
	trigger(e, "showToast", map[string]string{
		"message": message,
		"type":    toastType,
	})
}

// ErrorToast sets an error toast and stops HTMX from swapping the error text
// into the page.
func ErrorToast(e *core.RequestEvent, statusCode int, message string) error {
	SetToast(e, "error", message)
	e.Response.Header().Set("HX-Reswap", "none")
	return e.String(statusCode, message)
}
