package cmd

import (
	"fmt"

	"github.com/ougirez/carbon4c/internal/pkg/logger"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra commands are typically global
var etlCmd = &cobra.Command{
	Use:   "etl",
	Short: "Consolidate the configured plant databases into the warehouse",
	RunE:  runETL,
}

func init() {
	rootCmd.AddCommand(etlCmd)
}

func runETL(cmd *cobra.Command, _ []string) error {
	app, err := newApplication(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	report, err := app.etl.Run(cmd.Context(), cfg.ETL.Sources)
	if err != nil {
		return err
	}

	for plant, n := range report.Loaded {
		logger.Infof(cmd.Context(), "plant %s: %d records", plant, n)
	}
	for plant, reason := range report.Failed {
		logger.Warnf(cmd.Context(), "plant %s rejected: %s", plant, reason)
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("run %s: %d of %d sources rejected", report.RunID, len(report.Failed), len(cfg.ETL.Sources))
	}

	return nil
}
