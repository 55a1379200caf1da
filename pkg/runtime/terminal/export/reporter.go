package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/carbon-atlas/pkg/models/api"
)

type Format string

const (
	FormatJSON  Format = "json"
	FormatTable Format = "table"
	FormatXLSX  Format = "xlsx"
)

const defaultXLSXPath = "carbon_report.xlsx"

type TableConfig struct {
	NameWidth     int
	QuantityWidth int
	CategoryWidth int
	CarbonWidth   int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		NameWidth:     36,
		QuantityWidth: 8,
		CategoryWidth: 12,
		CarbonWidth:   10,
	}
}

type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

// Handle renders the report in the requested format. The xlsx format writes
// to outPath and prints the destination; the others write to the reporter's
// output.
func (c *Reporter) Handle(report api.AnalysisReport, format Format, outPath string) error {
	switch format {
	case FormatJSON, "":
		return c.handleJSON(report)
	case FormatTable:
		return c.handleTable(report)
	case FormatXLSX:
		if outPath == "" {
			outPath = defaultXLSXPath
		}
		if err := writeXLSX(report, outPath); err != nil {
			return err
		}
		_, err := fmt.Fprintf(c.writer, "Report written to %s\n", outPath)
		return err
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
}

func (c *Reporter) handleJSON(report api.AnalysisReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	_, err = fmt.Fprintln(c.writer, string(data))
	return err
}

func (c *Reporter) handleTable(report api.AnalysisReport) error {
	funcMap := template.FuncMap{
		"formatRow": func(name string, qty interface{}, category string, carbon interface{}) string {
			return fmt.Sprintf("| %-*s | %-*v | %-*s | %-*v |",
				c.config.NameWidth, name,
				c.config.QuantityWidth, qty,
				c.config.CategoryWidth, category,
				c.config.CarbonWidth, carbon)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.NameWidth+2),
				strings.Repeat("-", c.config.QuantityWidth+2),
				strings.Repeat("-", c.config.CategoryWidth+2),
				strings.Repeat("-", c.config.CarbonWidth+2))
		},
	}

	tmpl := `
{{.ReceiptDetails.Vendor}} ({{.ReceiptDetails.Date}})
Declared Total: {{.ReceiptDetails.Currency}} {{printf "%.2f" .ReceiptDetails.TotalPrice}}

{{separator}}
{{formatRow "Item" "Qty" "Category" "kg CO2e"}}
{{separator}}
{{range .Items}}{{formatRow .Name .Quantity .Category .CarbonFootprintKgCO2e}}
{{end}}{{separator}}

{{.AnalysisSummary}}
`

	t, err := template.New("report").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, report)
}
