package cmd

import (
	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/ougirez/carbon4c/internal/gcca"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra flags are typically global
var (
	schemaClinkerRatio float64
	schemaResistance   float64
	schemaClassCount   int
	schemaProduct      string
)

//nolint:gochecknoglobals // Cobra commands are typically global
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print GCCA band thresholds",
	RunE:  runSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.Flags().StringVar(&schemaProduct, "product", string(domain.ProductCement), "cement or concrete")
	schemaCmd.Flags().Float64Var(&schemaClinkerRatio, "clinker-ratio", 0, "clinker-to-cement ratio (default from gcca.clinker_ratio)")
	schemaCmd.Flags().Float64Var(&schemaResistance, "resistance", 0, "concrete compressive strength in MPa")
	schemaCmd.Flags().IntVar(&schemaClassCount, "class-count", 0, "number of classes above AA (default from gcca.class_count)")
}

func runSchema(cmd *cobra.Command, _ []string) error {
	classCount := cfg.GCCA.ClassCount
	if cmd.Flags().Changed("class-count") {
		classCount = schemaClassCount
	}

	var (
		schema gcca.BandSchema
		err    error
	)
	if domain.ProductType(schemaProduct) == domain.ProductConcrete {
		schema, err = gcca.BuildConcreteSchema(schemaResistance, cfg.GCCA.ResistanceTable, classCount)
	} else {
		ratio := cfg.GCCA.ClinkerRatio
		if cmd.Flags().Changed("clinker-ratio") {
			ratio = schemaClinkerRatio
		}
		schema, err = gcca.BuildSchema(ratio, classCount)
	}
	if err != nil {
		return err
	}

	cmd.Printf("base %.4f\n", schema.Base)
	for _, b := range schema.Bands {
		cmd.Printf("%-3s %d\n", b.Label, b.Upper)
	}
	for _, w := range schema.Warnings {
		cmd.Printf("warning: %s\n", w)
	}

	return nil
}
