package carbon

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// The factors document is an object of category -> (keyword -> factor), with
// the reserved "defaults" category mapping category names to fallback factors.
const factorsSchema = `{
	"type": "object",
	"additionalProperties": {
		"type": "object",
		"additionalProperties": {"type": "number"}
	}
}`

var compiledFactorsSchema = jsonschema.MustCompileString("factors.schema.json", factorsSchema)

// KeywordFactor is one emission factor keyed by a substring keyword.
type KeywordFactor struct {
	Keyword string
	Factor  float64 // kg CO2e per unit
}

// Category is an ordered keyword list for one domain category.
type Category struct {
	Name     string
	Keywords []KeywordFactor
}

// FactorTable holds emission factors in document order. Matching is
// first-match-wins, so the order categories and keywords appear in the source
// file is load-bearing and preserved here.
type FactorTable struct {
	Categories []Category
	Defaults   map[string]float64
}

// NewFactorTable returns an empty table. Every lookup on it falls back to the
// documented defaults.
func NewFactorTable() *FactorTable {
	return &FactorTable{Defaults: map[string]float64{}}
}

// Category returns the named category, scanning in document order.
func (t *FactorTable) Category(name string) (Category, bool) {
	for _, cat := range t.Categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return Category{}, false
}

// Factor returns the factor registered for an exact category/keyword pair.
func (t *FactorTable) Factor(category, keyword string) (float64, bool) {
	cat, ok := t.Category(category)
	if !ok {
		return 0, false
	}
	for _, kf := range cat.Keywords {
		if kf.Keyword == keyword {
			return kf.Factor, true
		}
	}
	return 0, false
}

// DefaultFor returns the category-level fallback factor, or 1.0 when the
// category has no default registered.
func (t *FactorTable) DefaultFor(category string) float64 {
	if f, ok := t.Defaults[category]; ok {
		return f
	}
	return 1.0
}

// LoadFactorTable reads and parses the factors file. An absent file surfaces
// as an error satisfying errors.Is(err, os.ErrNotExist) so callers can treat
// it as the documented non-fatal case; any other failure should propagate.
func LoadFactorTable(path string) (*FactorTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read factors file %q: %w", path, err)
	}
	table, err := ParseFactorTable(data)
	if err != nil {
		return nil, fmt.Errorf("invalid factors file %q: %w", path, err)
	}
	return table, nil
}

// ParseFactorTable builds an ordered table from a YAML or JSON factors
// document. The document is validated against the factors schema before the
// table is built.
func ParseFactorTable(data []byte) (*FactorTable, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return NewFactorTable(), nil
	}

	var generic map[string]interface{}
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("failed to parse factors document: %w", err)
	}
	if err := compiledFactorsSchema.Validate(normalizeForSchema(generic)); err != nil {
		return nil, fmt.Errorf("factors document does not match schema: %w", err)
	}

	// Decode a second time through the node API, which keeps the mapping
	// order the matching rules depend on.
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse factors document: %w", err)
	}

	table := NewFactorTable()
	if len(doc.Content) == 0 {
		return table, nil
	}

	root := doc.Content[0]
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Value == "defaults" {
			for j := 0; j+1 < len(value.Content); j += 2 {
				factor, err := strconv.ParseFloat(value.Content[j+1].Value, 64)
				if err != nil {
					return nil, fmt.Errorf("invalid default factor for %q: %w", value.Content[j].Value, err)
				}
				table.Defaults[value.Content[j].Value] = factor
			}
			continue
		}

		cat := Category{Name: key.Value}
		for j := 0; j+1 < len(value.Content); j += 2 {
			factor, err := strconv.ParseFloat(value.Content[j+1].Value, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid factor for %s/%s: %w", key.Value, value.Content[j].Value, err)
			}
			cat.Keywords = append(cat.Keywords, KeywordFactor{
				Keyword: value.Content[j].Value,
				Factor:  factor,
			})
		}
		table.Categories = append(table.Categories, cat)
	}

	return table, nil
}

// normalizeForSchema rewrites YAML-decoded values into the shapes the JSON
// schema validator expects (string-keyed maps, float64 numbers).
func normalizeForSchema(v interface{}) interface{} {
	switch value := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(value))
		for k, item := range value {
			out[k] = normalizeForSchema(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(value))
		for i, item := range value {
			out[i] = normalizeForSchema(item)
		}
		return out
	case int:
		return float64(value)
	case int64:
		return float64(value)
	default:
		return value
	}
}
