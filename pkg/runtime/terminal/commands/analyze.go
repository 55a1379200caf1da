package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/de-tools/carbon-atlas/pkg/models/api"
	"github.com/de-tools/carbon-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/carbon-atlas/pkg/services/analysis"
	"github.com/de-tools/carbon-atlas/pkg/services/carbon"
	"github.com/de-tools/carbon-atlas/pkg/services/config"
	"github.com/de-tools/carbon-atlas/pkg/services/receipt"

	"github.com/spf13/cobra"
)

type AnalyzeCmd struct {
	configPath  string
	factorsPath string
	format      string
	out         string
	reporter    *export.Reporter
}

func NewAnalyzeCmd(reporter *export.Reporter) *cobra.Command {
	ac := &AnalyzeCmd{reporter: reporter}
	cmd := &cobra.Command{
		Use:   "analyze [receipt.txt]",
		Short: "Analyze the carbon footprint of a receipt text file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  ac.run,
	}

	cmd.Flags().StringVar(&ac.configPath, "config", "", "Path to the application config file")
	cmd.Flags().StringVar(&ac.factorsPath, "factors", "", "Path to the emission factors file")
	cmd.Flags().StringVar(&ac.format, "format", string(export.FormatJSON), "Output format (json, table, xlsx)")
	cmd.Flags().StringVar(&ac.out, "out", "", "Output path for xlsx reports")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(ac.configPath)
	if err != nil {
		return err
	}

	factorsPath := ac.factorsPath
	if factorsPath == "" {
		factorsPath = cfg.FactorsPath
	}

	table, err := carbon.LoadFactorTable(factorsPath)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: factors file %q not found, proceeding with an empty table.\n", factorsPath)
		table = carbon.NewFactorTable()
	} else if err != nil {
		return err
	}

	text, err := ac.readInput(cmd, args, cfg)
	if err != nil {
		return err
	}

	svc := analysis.NewService(
		receipt.NewParser(receipt.Options{Currency: cfg.Currency}),
		carbon.NewEstimator(table),
	)
	report := svc.AnalyzeText(text)

	return ac.reporter.Handle(api.NewAnalysisReport(report, false), export.Format(ac.format), ac.out)
}

// readInput loads the receipt text from the positional argument, falling back
// to the bundled sample when no argument is given.
func (ac *AnalyzeCmd) readInput(cmd *cobra.Command, args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read receipt file %q: %w", args[0], err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(cfg.SamplePath)
	if err != nil {
		return "", fmt.Errorf("no receipt file given and sample %q is unavailable, usage: carbon analyze <receipt.txt>: %w",
			cfg.SamplePath, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "No input file provided. Using %q...\n", cfg.SamplePath)
	return string(data), nil
}
