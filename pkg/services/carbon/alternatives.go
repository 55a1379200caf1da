package carbon

import (
	"strings"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
)

// substitute is one lower-carbon replacement proposal. Its factor comes from
// the table when factorCategory/factorKeyword are set, with factorDefault as
// the fallback; a bare factorDefault is used as-is.
//
// The saving is measured against the item's own footprint unless
// baselineKeyword is set, in which case the baseline is the looked-up
// baseline factor times the quantity.
type substitute struct {
	name   string
	reason string

	factorCategory string
	factorKeyword  string
	factorDefault  float64

	baselineCategory string
	baselineKeyword  string
	baselineDefault  float64
}

// altRule fires when any trigger keyword appears in the lowercased item name
// and no exclusion does. The first matching rule wins.
type altRule struct {
	triggers    []string
	excludes    []string
	substitutes []substitute
}

func (r altRule) matches(name string) bool {
	for _, ex := range r.excludes {
		if strings.Contains(name, ex) {
			return false
		}
	}
	for _, trig := range r.triggers {
		if strings.Contains(name, trig) {
			return true
		}
	}
	return false
}

var altRules = []altRule{
	{
		triggers: []string{"beef", "steak"},
		substitutes: []substitute{
			{
				name:           "Chicken",
				reason:         "Lower emission meat alternative.",
				factorCategory: "food",
				factorKeyword:  "chicken",
				factorDefault:  6.0,
			},
			{
				name:           "Plant-based alternative",
				reason:         "Significantly lower carbon footprint.",
				factorCategory: "food",
				factorKeyword:  "vegetables",
				factorDefault:  0.5,
			},
		},
	},
	{
		triggers: []string{"milk"},
		excludes: []string{"almond", "oat", "soy"},
		substitutes: []substitute{
			{
				name:             "Oat Milk",
				reason:           "Plant-based milks have lower emissions than dairy.",
				factorDefault:    0.9,
				baselineCategory: "food",
				baselineKeyword:  "milk",
				baselineDefault:  3.0,
			},
		},
	},
}

// suggestAlternatives applies the substitution rules to an item. The
// footprint is the unrounded factor * quantity product; rounding happens only
// on the reported savings.
func (e *Estimator) suggestAlternatives(name string, footprint, qty float64) []domain.Alternative {
	alternatives := make([]domain.Alternative, 0)

	for _, rule := range altRules {
		if !rule.matches(name) {
			continue
		}
		for _, sub := range rule.substitutes {
			subFactor := sub.factorDefault
			if sub.factorKeyword != "" {
				subFactor = e.factorOrDefault(sub.factorCategory, sub.factorKeyword, sub.factorDefault)
			}

			var saving float64
			if sub.baselineKeyword != "" {
				baseline := e.factorOrDefault(sub.baselineCategory, sub.baselineKeyword, sub.baselineDefault)
				if baseline <= subFactor {
					continue
				}
				saving = (baseline - subFactor) * qty
			} else {
				saving = footprint - subFactor*qty
				if saving <= 0 {
					continue
				}
			}

			alternatives = append(alternatives, domain.Alternative{
				Name:     sub.name,
				SavingKg: roundKg(saving),
				Reason:   sub.reason,
			})
		}
		break
	}

	return alternatives
}

func (e *Estimator) factorOrDefault(category, keyword string, fallback float64) float64 {
	if f, ok := e.table.Factor(category, keyword); ok {
		return f
	}
	return fallback
}
