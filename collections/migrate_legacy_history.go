package collections

import (
	"fmt"
	"log"
	"os"

	"github.com/pocketbase/pocketbase/core"

	"quotegen/services"
)

// MigrateLegacyHistory imports a quote history exported from the browser
// version of the tool (the JSON array it kept under the "quoteHistory"
// local storage key). It only runs while the history is empty, so it is safe
// to call on every startup. An empty path disables it.
func MigrateLegacyHistory(app core.App, path string) error {
	if path == "" {
		return nil
	}

	store := services.NewHistoryStore(app)
	if len(store.List()) > 0 {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("migrate: legacy history %s not found, skipping", path)
			return nil
		}
		return fmt.Errorf("migrate: read legacy history: %w", err)
	}

	n, err := store.ImportBlob(data)
	if err != nil {
		return fmt.Errorf("migrate: import legacy history: %w", err)
	}
	log.Printf("migrate: imported %d quote(s) from %s", n, path)
	return nil
}
