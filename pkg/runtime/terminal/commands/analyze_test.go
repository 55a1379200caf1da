package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-tools/carbon-atlas/pkg/runtime/terminal/export"
)

const testFactors = `{"food": {"beef": 27.0, "milk": 3.2}, "defaults": {"food": 2.0, "other": 1.0}}`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestAnalyzeCmd_ReceiptFile_PrintsJSONReport(t *testing.T) {
	// Given
	factorsPath := writeTempFile(t, "factors.json", testFactors)
	receiptPath := writeTempFile(t, "receipt.txt", "Corner Shop\n2 x Ground Beef 15.98\nTotal 15.98\n")

	var out, errOut bytes.Buffer
	cmd := NewAnalyzeCmd(export.NewReporter(&out))
	cmd.SetArgs([]string{receiptPath, "--factors", factorsPath})
	cmd.SetErr(&errOut)

	// When
	err := cmd.Execute()

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	output := out.String()
	if !strings.Contains(output, `"vendor": "Corner Shop"`) {
		t.Errorf("expected vendor in output, got:\n%s", output)
	}
	if strings.Contains(output, "raw_text") {
		t.Errorf("CLI output must not carry the raw text, got:\n%s", output)
	}
}

func TestAnalyzeCmd_MissingReceiptFile_Errors(t *testing.T) {
	// Given
	factorsPath := writeTempFile(t, "factors.json", testFactors)

	var out bytes.Buffer
	cmd := NewAnalyzeCmd(export.NewReporter(&out))
	cmd.SetArgs([]string{"/nonexistent/receipt.txt", "--factors", factorsPath})
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	// When
	err := cmd.Execute()

	// Then
	if err == nil {
		t.Error("expected error for missing receipt file")
	}
}

func TestAnalyzeCmd_NoArgument_FallsBackToSample(t *testing.T) {
	// Given: a config pointing at a sample receipt
	factorsPath := writeTempFile(t, "factors.json", testFactors)
	samplePath := writeTempFile(t, "sample.txt", "Corner Shop\nWhole Milk 3.49\n")
	configPath := writeTempFile(t, "config.yaml", fmt.Sprintf(
		"factors_path: %q\nsample_path: %q\n", factorsPath, samplePath))

	var out, errOut bytes.Buffer
	cmd := NewAnalyzeCmd(export.NewReporter(&out))
	cmd.SetArgs([]string{"--config", configPath})
	cmd.SetErr(&errOut)

	// When
	err := cmd.Execute()

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(errOut.String(), "No input file provided") {
		t.Errorf("expected sample notice on stderr, got %q", errOut.String())
	}
	if !strings.Contains(out.String(), `"Whole Milk"`) {
		t.Errorf("expected milk item in output, got:\n%s", out.String())
	}
}

func TestAnalyzeCmd_MissingFactorsFile_WarnsAndProceeds(t *testing.T) {
	// Given
	receiptPath := writeTempFile(t, "receipt.txt", "Corner Shop\nMystery Snack 2.50\n")

	var out, errOut bytes.Buffer
	cmd := NewAnalyzeCmd(export.NewReporter(&out))
	cmd.SetArgs([]string{receiptPath, "--factors", "/nonexistent/factors.json"})
	cmd.SetErr(&errOut)

	// When
	err := cmd.Execute()

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.Contains(errOut.String(), "empty table") {
		t.Errorf("expected empty-table warning, got %q", errOut.String())
	}
	if !strings.Contains(out.String(), `"category": "other"`) {
		t.Errorf("expected default category in output, got:\n%s", out.String())
	}
}
