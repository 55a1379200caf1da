package api

import "github.com/de-tools/carbon-atlas/pkg/models/domain"

type ReceiptDetails struct {
	Vendor     string  `json:"vendor"`
	Date       string  `json:"date"`
	TotalPrice float64 `json:"total_price"`
	Currency   string  `json:"currency"`
}

type Alternative struct {
	Name               string  `json:"name"`
	CarbonSavingKgCO2e float64 `json:"carbon_saving_kg_co2e"`
	Reason             string  `json:"reason"`
}

type Item struct {
	Name                  string        `json:"name"`
	Quantity              float64       `json:"quantity"`
	Price                 float64       `json:"price"`
	Category              string        `json:"category"`
	CarbonFootprintKgCO2e float64       `json:"carbon_footprint_kg_co2e"`
	Assumptions           []string      `json:"assumptions"`
	Alternatives          []Alternative `json:"alternatives"`
}

type AnalysisReport struct {
	ReceiptDetails             ReceiptDetails `json:"receipt_details"`
	Items                      []Item         `json:"items"`
	TotalCarbonFootprintKgCO2e float64        `json:"total_carbon_footprint_kg_co2e"`
	AnalysisSummary            string         `json:"analysis_summary"`
	RawText                    string         `json:"raw_text,omitempty"`
}

type EstimateItemRequest struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity"`
	Price    float64  `json:"price"`
	Category string   `json:"category"`
}

type CategoryList struct {
	Categories []string `json:"categories"`
}

// NewItem converts a domain analysis into its wire representation.
func NewItem(a domain.ItemAnalysis) Item {
	alternatives := make([]Alternative, 0, len(a.Alternatives))
	for _, alt := range a.Alternatives {
		alternatives = append(alternatives, Alternative{
			Name:               alt.Name,
			CarbonSavingKgCO2e: alt.SavingKg,
			Reason:             alt.Reason,
		})
	}
	return Item{
		Name:                  a.Name,
		Quantity:              a.Quantity,
		Price:                 a.Price,
		Category:              a.Category,
		CarbonFootprintKgCO2e: a.FootprintKg,
		Assumptions:           a.Assumptions,
		Alternatives:          alternatives,
	}
}

// NewAnalysisReport converts a domain report into its wire representation.
// The raw receipt text is only included when includeRaw is set; the CLI omits
// it while the upload endpoint returns it.
func NewAnalysisReport(r domain.Report, includeRaw bool) AnalysisReport {
	items := make([]Item, 0, len(r.Items))
	for _, a := range r.Items {
		items = append(items, NewItem(a))
	}
	report := AnalysisReport{
		ReceiptDetails: ReceiptDetails{
			Vendor:     r.Receipt.Vendor,
			Date:       r.Receipt.Date,
			TotalPrice: r.Receipt.DeclaredTotal,
			Currency:   r.Receipt.Currency,
		},
		Items:                      items,
		TotalCarbonFootprintKgCO2e: r.TotalFootprintKg,
		AnalysisSummary:            r.Summary,
	}
	if includeRaw {
		report.RawText = r.RawText
	}
	return report
}
