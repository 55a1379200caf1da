package export

import (
	"fmt"
	"strings"

	"github.com/de-tools/carbon-atlas/pkg/models/api"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Analysis"

// writeXLSX exports the report as a spreadsheet: one row per item, followed
// by the total and summary.
func writeXLSX(report api.AnalysisReport, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []string{"Item", "Quantity", "Price", "Category", "Carbon (kg CO2e)", "Assumptions", "Alternatives"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return err
		}
	}

	for row, item := range report.Items {
		values := []interface{}{
			item.Name,
			item.Quantity,
			item.Price,
			item.Category,
			item.CarbonFootprintKgCO2e,
			strings.Join(item.Assumptions, " "),
			formatAlternatives(item.Alternatives),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}

	totalRow := len(report.Items) + 3
	if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", totalRow), "Total"); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, fmt.Sprintf("E%d", totalRow), report.TotalCarbonFootprintKgCO2e); err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, fmt.Sprintf("A%d", totalRow+1), report.AnalysisSummary); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}

func formatAlternatives(alternatives []api.Alternative) string {
	parts := make([]string, 0, len(alternatives))
	for _, alt := range alternatives {
		parts = append(parts, fmt.Sprintf("%s (saves %.2f kg CO2e)", alt.Name, alt.CarbonSavingKgCO2e))
	}
	return strings.Join(parts, "; ")
}
