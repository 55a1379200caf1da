package domain

// Alternative is a suggested lower-carbon substitute for a line item.
type Alternative struct {
	Name     string
	SavingKg float64 // kg CO2e saved relative to the original item
	Reason   string
}

// ItemAnalysis is the carbon estimate for a single line item.
type ItemAnalysis struct {
	Name         string
	Quantity     float64
	Price        float64
	Category     string
	FootprintKg  float64 // kg CO2e, rounded to 2 decimals
	Assumptions  []string
	Alternatives []Alternative
}

// Report aggregates the per-item analyses for one receipt.
type Report struct {
	Receipt          ParsedReceipt
	Items            []ItemAnalysis
	TotalFootprintKg float64
	Summary          string
	RawText          string
}
