package receipt

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/models/domain"
)

const (
	defaultVendor   = "Unknown Vendor"
	defaultCurrency = "USD"

	// Leading numbers at or above this are assumed to be product codes
	// rather than quantities.
	maxPlausibleQuantity = 100
)

var (
	datePattern       = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})|(\d{1,2}/\d{1,2}/\d{2,4})`)
	pricePattern      = regexp.MustCompile(`\$?\s?(\d+\.\d{2})`)
	qtyTimesPattern   = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*[xX]\s+(.*)`)
	qtyLeadingPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s+(.*)`)
)

// Parser extracts a structured receipt from raw, OCR-grade text. Parse never
// fails: every field that cannot be recovered falls back to its default, so
// callers always get a fully populated receipt.
type Parser struct {
	currency string
	now      func() time.Time
}

// Options configure a Parser.
type Options struct {
	// Currency reported on every parsed receipt. Defaults to USD; no
	// currency detection is attempted.
	Currency string
	// Clock supplies the fallback date when the text carries none.
	// Defaults to time.Now.
	Clock func() time.Time
}

func NewParser(opts Options) *Parser {
	if opts.Currency == "" {
		opts.Currency = defaultCurrency
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Parser{currency: opts.Currency, now: opts.Clock}
}

// Parse runs the extraction heuristics over the given text.
func (p *Parser) Parse(text string) domain.ParsedReceipt {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	result := domain.ParsedReceipt{
		Vendor:   defaultVendor,
		Date:     p.now().Format("2006-01-02"),
		Currency: p.currency,
		Items:    []domain.LineItem{},
	}

	p.extractDate(lines, &result)
	p.extractVendor(lines, &result)
	p.extractItems(lines, &result)

	return result
}

// extractDate takes the first line containing a date-shaped substring. The
// scan stops there even when normalization fails, in which case the default
// date stands.
func (p *Parser) extractDate(lines []string, r *domain.ParsedReceipt) {
	for _, line := range lines {
		raw := datePattern.FindString(line)
		if raw == "" {
			continue
		}
		if normalized, ok := normalizeDate(raw); ok {
			r.Date = normalized
		}
		return
	}
}

// normalizeDate turns a matched date substring into YYYY-MM-DD. Slash dates
// are read as month/day/year, with 2-digit years expanded into the 2000s.
func normalizeDate(raw string) (string, bool) {
	if strings.Contains(raw, "-") {
		return raw, true
	}
	parts := strings.Split(raw, "/")
	if len(parts) != 3 {
		return "", false
	}
	if len(parts[2]) == 2 {
		parts[2] = "20" + parts[2]
	}
	dt, err := time.Parse("1/2/2006", strings.Join(parts, "/"))
	if err != nil {
		return "", false
	}
	return dt.Format("2006-01-02"), true
}

// extractVendor picks the first line that is neither a total line nor a date
// line.
func (p *Parser) extractVendor(lines []string, r *domain.ParsedReceipt) {
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), "total") {
			continue
		}
		if datePattern.MatchString(line) {
			continue
		}
		r.Vendor = line
		return
	}
}

// extractItems walks every line once, emitting items and picking up the
// declared total along the way.
func (p *Parser) extractItems(lines []string, r *domain.ParsedReceipt) {
	var calculated float64
	totalFound := false

	for _, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "total") || strings.Contains(lower, "tax") {
			// "subtotal" also matches the "total" check, so a subtotal
			// line appearing first claims the declared total.
			if !totalFound && strings.Contains(lower, "total") {
				if m := pricePattern.FindStringSubmatch(line); m != nil {
					if price, err := strconv.ParseFloat(m[1], 64); err == nil {
						r.DeclaredTotal = price
						totalFound = true
					}
				}
			}
			continue
		}

		matches := pricePattern.FindAllStringSubmatchIndex(line, -1)
		if matches == nil {
			continue
		}

		// The last price on the line is the item price; earlier matches
		// are usually quantities or unit prices.
		last := matches[len(matches)-1]
		price, err := strconv.ParseFloat(line[last[2]:last[3]], 64)
		if err != nil {
			continue
		}

		remaining := strings.TrimSpace(line[:last[0]])
		qty, name := splitQuantity(remaining)
		if name == "" {
			continue
		}

		r.Items = append(r.Items, domain.LineItem{
			Name:     name,
			Quantity: qty,
			Price:    price,
		})
		calculated += price
	}

	if !totalFound {
		r.DeclaredTotal = round2(calculated)
	}
}

// splitQuantity separates a leading quantity from the item name. "2 x Burger"
// style always wins; a bare leading number only counts as a quantity when it
// is below the plausibility threshold.
func splitQuantity(remaining string) (float64, string) {
	if m := qtyTimesPattern.FindStringSubmatch(remaining); m != nil {
		if qty, err := strconv.ParseFloat(m[1], 64); err == nil {
			return qty, strings.TrimSpace(m[2])
		}
	}
	if m := qtyLeadingPattern.FindStringSubmatch(remaining); m != nil {
		if qty, err := strconv.ParseFloat(m[1], 64); err == nil && qty < maxPlausibleQuantity {
			return qty, strings.TrimSpace(m[2])
		}
	}
	return 1.0, remaining
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
