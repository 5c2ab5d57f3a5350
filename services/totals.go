package services

// Totals are the document-level amounts of a quote.
type Totals struct {
	SubTotalHT float64
	VATAmount  float64
	TotalTTC   float64
}

// PhaseSummary is the billable part of one phase.
type PhaseSummary struct {
	ActiveItems []LineItem
	TotalHT     float64
	TotalDays   float64
}

// IsBillable reports whether the item counts toward totals: it must be active
// with a positive quantity.
func IsBillable(item LineItem) bool {
	return item.Active && sanitizeQuantity(item.Quantity) > 0
}

// ComputeTotals sums every billable item of the document and applies VAT.
func ComputeTotals(doc QuoteDocument) Totals {
	var subTotal float64
	for _, phase := range doc.Phases {
		for _, item := range phase.Items {
			if IsBillable(item) {
				subTotal += CalcLineTotal(item)
			}
		}
	}
	return calcTotals(subTotal)
}

func calcTotals(subTotal float64) Totals {
	vat := subTotal * VATRate
	return Totals{
		SubTotalHT: subTotal,
		VATAmount:  vat,
		TotalTTC:   subTotal + vat,
	}
}

// ComputePhaseSummary returns the billable items of a phase in order, with
// their total price and day count. Items without a day count (annual flat
// rates) add nothing to the day total.
func ComputePhaseSummary(phase Phase) PhaseSummary {
	var s PhaseSummary
	for _, item := range phase.Items {
		if !IsBillable(item) {
			continue
		}
		s.ActiveItems = append(s.ActiveItems, item)
		s.TotalHT += CalcLineTotal(item)
		if days, ok := DurationInDays(item); ok {
			s.TotalDays += days
		}
	}
	return s
}

// HasActiveItems reports whether any item of the document is billable.
// Exports are only offered when this is true.
func HasActiveItems(doc QuoteDocument) bool {
	for _, phase := range doc.Phases {
		for _, item := range phase.Items {
			if IsBillable(item) {
				return true
			}
		}
	}
	return false
}
