package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra flags are typically global
var (
	exportYear      int
	exportXLSX      string
	exportChart     string
	exportIndicator string
)

//nolint:gochecknoglobals // Cobra commands are typically global
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the yearly workbook and national chart",
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().IntVar(&exportYear, "year", 0, "reporting year")
	exportCmd.Flags().StringVar(&exportXLSX, "xlsx", "", "workbook output path")
	exportCmd.Flags().StringVar(&exportChart, "png", "", "chart output path")
	exportCmd.Flags().StringVar(&exportIndicator, "indicator", "", "charted indicator (default from gcca.footprint_indicator)")
	_ = exportCmd.MarkFlagRequired("year")
}

func runExport(cmd *cobra.Command, _ []string) error {
	if exportXLSX == "" && exportChart == "" {
		return fmt.Errorf("nothing to export: set --xlsx and/or --png")
	}

	app, err := newApplication(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	if exportXLSX != "" {
		if err := writeFile(exportXLSX, func(f *os.File) error {
			return app.export.WriteWorkbook(cmd.Context(), f, exportYear)
		}); err != nil {
			return err
		}
	}

	if exportChart != "" {
		if err := writeFile(exportChart, func(f *os.File) error {
			return app.export.WriteChart(cmd.Context(), f, exportYear, exportIndicator)
		}); err != nil {
			return err
		}
	}

	return nil
}

func writeFile(path string, write func(f *os.File) error) (err error) {
	f, err := os.Create(path) //nolint:gosec // operator-provided path
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return write(f)
}
