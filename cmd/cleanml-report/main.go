package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"cleanml/adapters/store"
	"cleanml/app"
	"cleanml/domain/schema"
	"cleanml/internal/config"
	"cleanml/ports"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[main] No .env file loaded: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "cleanml-report",
		Short: "Render data-cleaning experiment comparisons as charts and workbooks",
	}
	rootCmd.AddCommand(newPlotCmd(), newTTestCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newPlotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plot",
		Short: "Render relative-difference bar charts for every error type",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, true, false)
		},
	}
}

func newTTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ttest",
		Short: "Write paired t-test and four-metrics workbooks for every error type",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, false, true)
		},
	}
}

func run(cmd *cobra.Command, plots, ttests bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	datasets, err := schema.LoadDatasetRegistry(cfg.DatasetFile)
	if err != nil {
		return err
	}
	errorTypes := schema.DefaultErrorTypes()

	var source ports.ResultSource
	if cfg.PostgresDSN != "" {
		pg, err := store.OpenPostgresSource(cfg.PostgresDSN)
		if err != nil {
			return err
		}
		defer pg.Close()
		source = pg
	} else {
		source = store.NewJSONSource(cfg.ResultFile)
	}

	reporter := app.NewReporter(datasets, errorTypes, cfg.OutputDir)
	return reporter.Run(cmd.Context(), source, plots, ttests)
}
