package cmd

import (
	"fmt"
	"strconv"

	"github.com/ougirez/carbon4c/internal/pkg/logger"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra commands are typically global
var aggregateCmd = &cobra.Command{
	Use:   "aggregate <year>",
	Short: "Roll plant records up to company and national level",
	Args:  cobra.ExactArgs(1),
	RunE:  runAggregate,
}

func init() {
	rootCmd.AddCommand(aggregateCmd)
}

func runAggregate(cmd *cobra.Command, args []string) error {
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid year %q: %w", args[0], err)
	}

	app, err := newApplication(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	report, err := app.footprint.Aggregate(cmd.Context(), year)
	if err != nil {
		return err
	}

	logger.Infof(cmd.Context(), "batch %s: %d company and %d national records for %d",
		report.BatchID, report.Companies, report.National, report.Year)
	return nil
}
