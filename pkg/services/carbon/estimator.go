package carbon

import (
	"fmt"
	"math"
	"strings"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
)

// ItemRequest describes one line item to estimate. Quantity is a pointer so
// callers can leave it unset; an absent quantity is assumed to be 1 unit and
// noted in the output. Category is inferred from the name when empty.
type ItemRequest struct {
	Name     string
	Quantity *float64
	Price    float64
	Category string
}

// Estimator computes carbon footprints against an immutable factor table.
// It is stateless after construction and safe for concurrent use.
type Estimator struct {
	table *FactorTable
}

func NewEstimator(table *FactorTable) *Estimator {
	if table == nil {
		table = NewFactorTable()
	}
	return &Estimator{table: table}
}

// Categories lists the domain categories of the loaded table, in table order.
func (e *Estimator) Categories() []string {
	names := make([]string, 0, len(e.table.Categories))
	for _, cat := range e.table.Categories {
		names = append(names, cat.Name)
	}
	return names
}

// EstimateItem analyzes a single item. It never fails: unmatched items fall
// back to the category default factor, and unknown categories to 1.0.
func (e *Estimator) EstimateItem(req ItemRequest) domain.ItemAnalysis {
	nameLower := strings.ToLower(req.Name)

	category := req.Category
	if category == "" {
		category = e.inferCategory(nameLower)
	}

	factor, matched := e.resolveFactor(nameLower, category)

	qty := 1.0
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	footprint := factor * qty

	assumptions := make([]string, 0, 2)
	if matched != "" {
		assumptions = append(assumptions,
			fmt.Sprintf("Matched '%s' to emission factor for '%s' (%g kg CO2e/unit).", req.Name, matched, factor))
	} else {
		assumptions = append(assumptions,
			fmt.Sprintf("No specific match for '%s'. Used default factor for category '%s' (%g kg CO2e/unit).", req.Name, category, factor))
	}
	if req.Quantity == nil {
		assumptions = append(assumptions, "Quantity not specified, assumed 1 unit.")
	}

	return domain.ItemAnalysis{
		Name:         req.Name,
		Quantity:     qty,
		Price:        req.Price,
		Category:     category,
		FootprintKg:  roundKg(footprint),
		Assumptions:  assumptions,
		Alternatives: e.suggestAlternatives(nameLower, footprint, qty),
	}
}

// inferCategory returns the first category whose keywords match the name, in
// table order, or "other".
func (e *Estimator) inferCategory(name string) string {
	for _, cat := range e.table.Categories {
		for _, kf := range cat.Keywords {
			if strings.Contains(name, kf.Keyword) {
				return cat.Name
			}
		}
	}
	return "other"
}

// resolveFactor finds the emission factor for a name, tiered: keywords of the
// item's own category first, then every category, then the category default.
// The matched keyword is empty on the default tier.
func (e *Estimator) resolveFactor(name, category string) (float64, string) {
	if cat, ok := e.table.Category(category); ok {
		for _, kf := range cat.Keywords {
			if strings.Contains(name, kf.Keyword) {
				return kf.Factor, kf.Keyword
			}
		}
	}

	for _, cat := range e.table.Categories {
		for _, kf := range cat.Keywords {
			if strings.Contains(name, kf.Keyword) {
				return kf.Factor, kf.Keyword
			}
		}
	}

	return e.table.DefaultFor(category), ""
}

func roundKg(v float64) float64 {
	return math.Round(v*100) / 100
}
