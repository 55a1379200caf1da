package domain

// LineItem is one purchased product reconstructed from a single receipt line.
// Price is the total line price, not the unit price.
type LineItem struct {
	Name     string
	Quantity float64
	Price    float64
}

// ParsedReceipt is the best-effort structured view of a raw receipt text.
// Fields that could not be extracted keep their documented defaults, so a
// ParsedReceipt is always fully populated.
type ParsedReceipt struct {
	Vendor        string
	Date          string // YYYY-MM-DD
	Currency      string
	DeclaredTotal float64
	Items         []LineItem
}
