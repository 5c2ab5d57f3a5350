package services

import (
	"fmt"
	"time"
)

// GenerateQuoteNumber builds the quote number for a document created at t.
// Format: DS-YYYYMMDD-HHMM
func GenerateQuoteNumber(t time.Time) string {
	return fmt.Sprintf("DS-%s", t.Format("20060102-1504"))
}

// FormatDate renders a creation date the way it is printed on quotes (02/01/2006).
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
