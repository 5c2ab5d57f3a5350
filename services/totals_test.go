package services

import (
	"math"
	"testing"
	"time"
)

var testNow = time.Date(2025, 7, 14, 9, 30, 0, 0, time.UTC)

// quoteWithActive returns a fresh quote where only the given item IDs are active.
func quoteWithActive(ids ...string) QuoteDocument {
	doc := NewQuote(testNow)
	on := true
	for _, id := range ids {
		for _, p := range doc.Phases {
			doc = SetItem(doc, p.ID, id, ItemPatch{Active: &on})
		}
	}
	return doc
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func TestComputeTotals_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		active   []string
		subTotal float64
		vat      float64
		total    float64
	}{
		{"nothing active", nil, 0, 0, 0},
		{"project management only", []string{"1.3"}, 1500, 300, 1800},
		{"hosting only", []string{"3.1"}, 200, 40, 240},
		{"management and hosting", []string{"1.3", "3.1"}, 1700, 340, 2040},
		{"meetings", []string{"1.1"}, 500, 100, 600},
		{"domain name", []string{"3.3"}, 50, 10, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(quoteWithActive(tt.active...))
			if !approxEqual(got.SubTotalHT, tt.subTotal) || !approxEqual(got.VATAmount, tt.vat) || !approxEqual(got.TotalTTC, tt.total) {
				t.Errorf("ComputeTotals() = %+v, want {%v %v %v}", got, tt.subTotal, tt.vat, tt.total)
			}
		})
	}
}

func TestComputeTotals_VATRelation(t *testing.T) {
	doc := quoteWithActive("1.1", "1.2", "2.1", "3.2", "4.3", "4.6")
	got := ComputeTotals(doc)
	if !approxEqual(got.VATAmount, got.SubTotalHT*0.20) {
		t.Errorf("VAT = %v, want %v", got.VATAmount, got.SubTotalHT*0.20)
	}
	if !approxEqual(got.TotalTTC, got.SubTotalHT+got.VATAmount) {
		t.Errorf("TTC = %v, want %v", got.TotalTTC, got.SubTotalHT+got.VATAmount)
	}
}

func TestComputeTotals_Idempotent(t *testing.T) {
	doc := quoteWithActive("1.3", "3.1", "4.3")
	first := ComputeTotals(doc)
	second := ComputeTotals(doc)
	if first != second {
		t.Errorf("ComputeTotals not idempotent: %+v then %+v", first, second)
	}
}

func TestComputeTotals_Monotonic(t *testing.T) {
	base := quoteWithActive("1.3")
	before := ComputeTotals(base)

	on := true
	activated := SetItem(base, "développement", "2.1", ItemPatch{Active: &on})
	if after := ComputeTotals(activated); after.SubTotalHT <= before.SubTotalHT {
		t.Errorf("activating 2.1: subtotal %v -> %v, want increase", before.SubTotalHT, after.SubTotalHT)
	}

	more := 10.0
	increased := SetItem(base, "refonte", "1.3", ItemPatch{Quantity: &more})
	if after := ComputeTotals(increased); after.TotalTTC < before.TotalTTC {
		t.Errorf("raising quantity: TTC %v -> %v, want no decrease", before.TotalTTC, after.TotalTTC)
	}

	off := false
	deactivated := SetItem(base, "refonte", "1.3", ItemPatch{Active: &off})
	if after := ComputeTotals(deactivated); after.SubTotalHT >= before.SubTotalHT {
		t.Errorf("deactivating 1.3: subtotal %v -> %v, want decrease", before.SubTotalHT, after.SubTotalHT)
	}

	zero := 0.0
	zeroQty := SetItem(base, "refonte", "1.3", ItemPatch{Quantity: &zero})
	zeroQtyOff := SetItem(zeroQty, "refonte", "1.3", ItemPatch{Active: &off})
	if ComputeTotals(zeroQty) != ComputeTotals(zeroQtyOff) {
		t.Error("deactivating a zero-quantity item changed the totals")
	}
}

func TestComputeTotals_MalformedQuantity(t *testing.T) {
	doc := quoteWithActive("1.3", "1.4")
	doc.Phases[0].Items[3].Quantity = math.NaN()
	doc.Phases[0].Items[2].Quantity = -4

	got := ComputeTotals(doc)
	if got.SubTotalHT != 0 || math.IsNaN(got.TotalTTC) {
		t.Errorf("malformed quantities should count as zero, got %+v", got)
	}
}

func TestComputePhaseSummary(t *testing.T) {
	doc := quoteWithActive("1.3", "1.1", "3.1", "3.3")

	refonte := ComputePhaseSummary(doc.Phases[0])
	if len(refonte.ActiveItems) != 2 {
		t.Fatalf("refonte active items = %d, want 2", len(refonte.ActiveItems))
	}
	if refonte.ActiveItems[0].ID != "1.1" || refonte.ActiveItems[1].ID != "1.3" {
		t.Errorf("active items out of order: %s, %s", refonte.ActiveItems[0].ID, refonte.ActiveItems[1].ID)
	}
	if !approxEqual(refonte.TotalHT, 2000) {
		t.Errorf("refonte total = %v, want 2000", refonte.TotalHT)
	}
	// 4 meetings = 1 day, plus 3 days
	if !approxEqual(refonte.TotalDays, 4) {
		t.Errorf("refonte days = %v, want 4", refonte.TotalDays)
	}

	hosting := ComputePhaseSummary(doc.Phases[2])
	if !approxEqual(hosting.TotalHT, 250) {
		t.Errorf("hosting total = %v, want 250", hosting.TotalHT)
	}
	if hosting.TotalDays != 0 {
		t.Errorf("hosting days = %v, want 0 (annual flat rates have no duration)", hosting.TotalDays)
	}

	empty := ComputePhaseSummary(doc.Phases[1])
	if len(empty.ActiveItems) != 0 || empty.TotalHT != 0 {
		t.Errorf("inactive phase summary = %+v, want empty", empty)
	}
}

func TestComputePhaseSummary_CustomItem(t *testing.T) {
	doc := AddCustomItem(NewQuote(testNow), "refonte")
	items := doc.Phases[0].Items
	custom := items[len(items)-1]

	qty := 2.0
	unit := UnitDay
	doc = SetItem(doc, "refonte", custom.ID, ItemPatch{Quantity: &qty, Unit: &unit})

	s := ComputePhaseSummary(doc.Phases[0])
	if !approxEqual(s.TotalHT, 1000) {
		t.Errorf("phase total = %v, want 1000", s.TotalHT)
	}
	if !approxEqual(s.TotalDays, 2) {
		t.Errorf("phase days = %v, want 2", s.TotalDays)
	}
}

func TestHasActiveItems(t *testing.T) {
	if HasActiveItems(NewQuote(testNow)) {
		t.Error("fresh quote should have no active items")
	}
	if !HasActiveItems(quoteWithActive("4.8")) {
		t.Error("quote with 4.8 active should have active items")
	}

	zero := 0.0
	doc := SetItem(quoteWithActive("1.3"), "refonte", "1.3", ItemPatch{Quantity: &zero})
	if HasActiveItems(doc) {
		t.Error("active item with zero quantity is not billable")
	}
}
