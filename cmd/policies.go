package cmd

import (
	"github.com/ougirez/carbon4c/internal/service/policy"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra commands are typically global
var (
	policiesFile string

	policiesCmd = &cobra.Command{
		Use:   "policies",
		Short: "Manage indicator aggregation policies",
	}

	policiesSyncCmd = &cobra.Command{
		Use:   "sync",
		Short: "Load the indicator policy file into the warehouse",
		RunE:  runPoliciesSync,
	}

	policiesCheckCmd = &cobra.Command{
		Use:   "check",
		Short: "Validate the indicator policy file without a database",
		RunE:  runPoliciesCheck,
	}
)

func init() {
	rootCmd.AddCommand(policiesCmd)
	policiesCmd.AddCommand(policiesSyncCmd, policiesCheckCmd)
	policiesCmd.PersistentFlags().StringVar(&policiesFile, "file", "", "indicator policy file (default from indicators.file)")
}

func policyFile() string {
	if policiesFile != "" {
		return policiesFile
	}
	return cfg.Indicators.File
}

func runPoliciesSync(cmd *cobra.Command, _ []string) error {
	app, err := newApplication(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	indicators, err := app.policies.LoadFile(policyFile())
	if err != nil {
		return err
	}

	return app.policies.Sync(cmd.Context(), indicators)
}

func runPoliciesCheck(cmd *cobra.Command, _ []string) error {
	indicators, err := policy.NewPolicyService(nil).LoadFile(policyFile())
	if err != nil {
		return err
	}

	cmd.Printf("%d indicators OK\n", len(indicators))
	return nil
}
