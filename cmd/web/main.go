package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/de-tools/carbon-atlas/pkg/server"
	"github.com/de-tools/carbon-atlas/pkg/services/analysis"
	"github.com/de-tools/carbon-atlas/pkg/services/carbon"
	"github.com/de-tools/carbon-atlas/pkg/services/config"
	"github.com/de-tools/carbon-atlas/pkg/services/receipt"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Carbon Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the application config file (defaults apply when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	table, err := carbon.LoadFactorTable(cfg.FactorsPath)
	if errors.Is(err, os.ErrNotExist) {
		logger.Warn().Str("path", cfg.FactorsPath).
			Msg("factors file not found, proceeding with an empty table")
		table = carbon.NewFactorTable()
	} else if err != nil {
		return fmt.Errorf("failed to load factor table: %w", err)
	} else {
		logger.Info().Str("path", cfg.FactorsPath).
			Int("categories", len(table.Categories)).
			Msg("emission factors loaded")
	}

	svc := analysis.NewService(
		receipt.NewParser(receipt.Options{Currency: cfg.Currency}),
		carbon.NewEstimator(table),
	)

	addr := cfg.Addr
	if env := os.Getenv("SERVER_ADDR"); env != "" {
		addr = env
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr:            addr,
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Analysis: svc,
			Logger:   logger,
		},
	})

	return api.Start()
}
