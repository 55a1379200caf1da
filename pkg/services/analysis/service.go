package analysis

import (
	"fmt"
	"math"
	"strconv"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
	"github.com/de-tools/carbon-atlas/pkg/services/carbon"
	"github.com/de-tools/carbon-atlas/pkg/services/receipt"
)

// Service is the single entry point both front ends call: parse a receipt,
// estimate every item, aggregate the totals.
type Service interface {
	AnalyzeText(text string) domain.Report
	EstimateItem(req carbon.ItemRequest) domain.ItemAnalysis
	Categories() []string
}

type service struct {
	parser    *receipt.Parser
	estimator *carbon.Estimator
}

func NewService(parser *receipt.Parser, estimator *carbon.Estimator) Service {
	return &service{parser: parser, estimator: estimator}
}

func (s *service) AnalyzeText(text string) domain.Report {
	parsed := s.parser.Parse(text)

	items := make([]domain.ItemAnalysis, 0, len(parsed.Items))
	var total float64
	for _, item := range parsed.Items {
		qty := item.Quantity
		analysis := s.estimator.EstimateItem(carbon.ItemRequest{
			Name:     item.Name,
			Quantity: &qty,
			Price:    item.Price,
		})
		items = append(items, analysis)
		total += analysis.FootprintKg
	}

	report := domain.Report{
		Receipt:          parsed,
		Items:            items,
		TotalFootprintKg: math.Round(total*100) / 100,
		RawText:          text,
	}
	report.Summary = buildSummary(report)
	return report
}

func (s *service) EstimateItem(req carbon.ItemRequest) domain.ItemAnalysis {
	return s.estimator.EstimateItem(req)
}

func (s *service) Categories() []string {
	return s.estimator.Categories()
}

// buildSummary always states the total; the top contributor clause is only
// appended when the receipt has items. Ties go to the earliest item.
func buildSummary(r domain.Report) string {
	summary := fmt.Sprintf("Total estimated carbon footprint is %s kg CO2e.", formatKg(r.TotalFootprintKg))
	if len(r.Items) == 0 {
		return summary
	}

	top := r.Items[0]
	for _, item := range r.Items[1:] {
		if item.FootprintKg > top.FootprintKg {
			top = item
		}
	}
	return summary + fmt.Sprintf(" The largest contributor is '%s' with %s kg CO2e.", top.Name, formatKg(top.FootprintKg))
}

func formatKg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
