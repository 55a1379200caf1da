package receipt

import (
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
}

func newTestParser() *Parser {
	return NewParser(Options{Clock: fixedClock})
}

func TestParser_Parse_EmptyInput_ReturnsDefaults(t *testing.T) {
	// Given
	p := newTestParser()

	// When
	result := p.Parse("")

	// Then
	if result.Vendor != "Unknown Vendor" {
		t.Errorf("expected default vendor, got %q", result.Vendor)
	}
	if result.Date != "2024-01-15" {
		t.Errorf("expected clock default date, got %q", result.Date)
	}
	if result.Currency != "USD" {
		t.Errorf("expected USD, got %q", result.Currency)
	}
	if result.DeclaredTotal != 0.0 {
		t.Errorf("expected zero total, got %v", result.DeclaredTotal)
	}
	if len(result.Items) != 0 {
		t.Errorf("expected no items, got %v", result.Items)
	}
}

func TestParser_Parse_NoDateShapedSubstring_UsesClockDefault(t *testing.T) {
	// Given
	p := newTestParser()

	// When
	result := p.Parse("Corner Shop\nMilk 2.50\nTotal 2.50")

	// Then
	if result.Date != "2024-01-15" {
		t.Errorf("expected clock default date, got %q", result.Date)
	}
}

func TestParser_Parse_SlashDate_NormalizedToISO(t *testing.T) {
	// Given
	p := newTestParser()

	// When
	result := p.Parse("Corner Shop\n12/25/2023\nMilk 2.50")

	// Then
	if result.Date != "2023-12-25" {
		t.Errorf("expected 2023-12-25, got %q", result.Date)
	}
}

func TestParser_Parse_TwoDigitYear_ExpandedInto2000s(t *testing.T) {
	// Given
	p := newTestParser()

	// When
	result := p.Parse("Corner Shop\n1/9/24\nMilk 2.50")

	// Then
	if result.Date != "2024-01-09" {
		t.Errorf("expected 2024-01-09, got %q", result.Date)
	}
}

func TestParser_Parse_ISODate_TakenVerbatim(t *testing.T) {
	// Given
	p := newTestParser()

	// When
	result := p.Parse("Corner Shop\n2023-12-25\nMilk 2.50")

	// Then
	if result.Date != "2023-12-25" {
		t.Errorf("expected 2023-12-25, got %q", result.Date)
	}
}

func TestParser_Parse_InvalidCalendarDate_StopsScanAndKeepsDefault(t *testing.T) {
	// Given: the first date-shaped line is not a valid calendar date, a
	// valid one follows later
	p := newTestParser()

	// When
	result := p.Parse("Corner Shop\n13/45/2023\n2023-12-25\nMilk 2.50")

	// Then: scanning stopped at the first date-shaped substring
	if result.Date != "2024-01-15" {
		t.Errorf("expected clock default date, got %q", result.Date)
	}
}

func TestParser_Parse_Vendor_SkipsTotalAndDateLines(t *testing.T) {
	// Given
	p := newTestParser()

	// When
	result := p.Parse("Total 9.99\n2023-12-25\nCorner Shop\nMilk 2.50")

	// Then
	if result.Vendor != "Corner Shop" {
		t.Errorf("expected vendor Corner Shop, got %q", result.Vendor)
	}
}

func TestParser_Parse_NoVendorCandidate_KeepsDefault(t *testing.T) {
	// Given: every line is either a total line or a date line
	p := newTestParser()

	// When
	result := p.Parse("Subtotal 9.99\n2023-12-25\nTotal 9.99")

	// Then
	if result.Vendor != "Unknown Vendor" {
		t.Errorf("expected default vendor, got %q", result.Vendor)
	}
}

func TestParser_Parse_QuantityTimesName(t *testing.T) {
	// Given
	p := newTestParser()

	// When
	result := p.Parse("Corner Shop\n2 x Burger 5.99")

	// Then
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	item := result.Items[0]
	if item.Name != "Burger" || item.Quantity != 2.0 || item.Price != 5.99 {
		t.Errorf("unexpected item: %+v", item)
	}
}

func TestParser_Parse_LeadingSmallNumber_TreatedAsQuantity(t *testing.T) {
	// Given
	p := newTestParser()

	// When
	result := p.Parse("Corner Shop\n3 Apples 2.10")

	// Then
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	item := result.Items[0]
	if item.Name != "Apples" || item.Quantity != 3.0 || item.Price != 2.10 {
		t.Errorf("unexpected item: %+v", item)
	}
}

func TestParser_Parse_LeadingLargeNumber_KeptInName(t *testing.T) {
	// Given: a leading number of 100 or more reads like a product code
	p := newTestParser()

	// When
	result := p.Parse("Corner Shop\n150 Widget 3.00")

	// Then
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	item := result.Items[0]
	if item.Name != "150 Widget" || item.Quantity != 1.0 || item.Price != 3.00 {
		t.Errorf("unexpected item: %+v", item)
	}
}

func TestParser_Parse_LastPriceOnLineWins(t *testing.T) {
	// Given: a unit price precedes the line price
	p := newTestParser()

	// When
	result := p.Parse("Corner Shop\n$4.99 Special Combo 7.50")

	// Then
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	item := result.Items[0]
	if item.Price != 7.50 {
		t.Errorf("expected price 7.50, got %v", item.Price)
	}
	if item.Name != "$4.99 Special Combo" {
		t.Errorf("unexpected name: %q", item.Name)
	}
	if item.Quantity != 1.0 {
		t.Errorf("expected quantity 1.0, got %v", item.Quantity)
	}
}

func TestParser_Parse_PricelessLine_NotAnItem(t *testing.T) {
	// Given
	p := newTestParser()

	// When
	result := p.Parse("Corner Shop\n123 Main Street\nMilk 2.50")

	// Then
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %v", result.Items)
	}
	if result.Items[0].Name != "Milk" {
		t.Errorf("unexpected item: %+v", result.Items[0])
	}
}

func TestParser_Parse_NamelessPriceLine_Discarded(t *testing.T) {
	// Given: the line holds only a price
	p := newTestParser()

	// When
	result := p.Parse("Corner Shop\n5.99\nMilk 2.50")

	// Then: no item emitted for the bare price, and it does not count
	// toward the calculated total
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %v", result.Items)
	}
	if result.DeclaredTotal != 2.50 {
		t.Errorf("expected total 2.50, got %v", result.DeclaredTotal)
	}
}

func TestParser_Parse_NoTotalLine_SumsItemPrices(t *testing.T) {
	// Given
	p := newTestParser()

	// When
	result := p.Parse("Corner Shop\nMilk 2.50\nBread 1.30\nEggs 3.20")

	// Then
	if result.DeclaredTotal != 7.00 {
		t.Errorf("expected calculated total 7.00, got %v", result.DeclaredTotal)
	}
}

func TestParser_Parse_TotalLine_OverridesCalculatedSum(t *testing.T) {
	// Given: the declared total disagrees with the item sum
	p := newTestParser()

	// When
	result := p.Parse("Corner Shop\nMilk 2.50\nBread 1.30\nTotal 4.10")

	// Then
	if result.DeclaredTotal != 4.10 {
		t.Errorf("expected declared total 4.10, got %v", result.DeclaredTotal)
	}
}

func TestParser_Parse_SubtotalBeforeTotal_FirstMatchWins(t *testing.T) {
	// Given: "subtotal" contains "total", so the subtotal line claims the
	// declared total when it comes first
	p := newTestParser()

	// When
	result := p.Parse("Corner Shop\nMilk 2.50\nSubtotal: $40.00\nTotal: $45.00")

	// Then
	if result.DeclaredTotal != 40.00 {
		t.Errorf("expected declared total 40.00, got %v", result.DeclaredTotal)
	}
}

func TestParser_Parse_TaxAndTotalLines_NeverItems(t *testing.T) {
	// Given
	p := newTestParser()

	// When
	result := p.Parse("Corner Shop\nMilk 2.50\nTax 0.20\nTotal 2.70")

	// Then
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %v", result.Items)
	}
	if result.Items[0].Name != "Milk" {
		t.Errorf("unexpected item: %+v", result.Items[0])
	}
}

func TestParser_Parse_ItemOrderPreserved_DuplicatesKept(t *testing.T) {
	// Given
	p := newTestParser()

	// When
	result := p.Parse("Corner Shop\nMilk 2.50\nBread 1.30\nMilk 2.50")

	// Then
	if len(result.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(result.Items))
	}
	names := []string{result.Items[0].Name, result.Items[1].Name, result.Items[2].Name}
	if names[0] != "Milk" || names[1] != "Bread" || names[2] != "Milk" {
		t.Errorf("unexpected item order: %v", names)
	}
}
