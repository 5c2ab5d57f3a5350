package services

const (
	// DailyRate is the reference price of one day of work, in euros.
	DailyRate = 500.0
	// VATRate is the flat VAT applied to the pre-tax subtotal.
	VATRate = 0.20
)

// UnitPrice returns the price of one unit of the item. A fixed price on the
// item always wins over the unit default.
func UnitPrice(item LineItem) float64 {
	if item.Price != nil {
		return *item.Price
	}
	switch item.Unit {
	case UnitDay:
		return DailyRate
	case UnitHalfDay:
		return DailyRate / 2
	case UnitMeeting:
		return DailyRate / 4
	case UnitFlatRate, UnitAnnualFlatRate:
		return DailyRate
	default:
		return 0
	}
}

// DurationInDays converts the item quantity into days of work. ok is false for
// units that are not measured in days (annual flat rates). Unknown units count
// as zero days.
func DurationInDays(item LineItem) (days float64, ok bool) {
	switch item.Unit {
	case UnitDay, UnitFlatRate:
		return item.Quantity, true
	case UnitHalfDay:
		return item.Quantity * 0.5, true
	case UnitMeeting:
		return item.Quantity * 0.25, true
	case UnitAnnualFlatRate:
		return 0, false
	default:
		return 0, true
	}
}

// CalcLineTotal returns quantity * unit price for an item.
func CalcLineTotal(item LineItem) float64 {
	return sanitizeQuantity(item.Quantity) * UnitPrice(item)
}
