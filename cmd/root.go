// Package cmd contains the carbon4c CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/ougirez/carbon4c/internal/config"
	"github.com/ougirez/carbon4c/internal/pkg/constants"
	"github.com/ougirez/carbon4c/internal/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

//nolint:gochecknoglobals // Global vars needed for cobra CLI
var (
	cfgFile  string
	logLevel string
	cfg      *config.Config
)

//nolint:gochecknoglobals // Cobra commands are typically global
var rootCmd = &cobra.Command{
	Use:   "carbon4c",
	Short: "Carbon footprint warehouse for the cement industry",
	Long: `carbon4c consolidates plant indicator databases into a warehouse,
rolls them up to company and national level, and classifies carbon
footprints against GCCA bands.`,
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml when present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
}

func loadConfig(_ *cobra.Command, _ []string) error {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}

	if logLevel != "" {
		viper.Set(constants.ViperLogLevel, logLevel)
	}

	loaded, err := config.Load(viper.GetViper(), path)
	if err != nil {
		return err
	}

	if err := logger.Init(loaded.Log.Level, loaded.Log.Encoding); err != nil {
		return fmt.Errorf("logger.Init: %w", err)
	}

	cfg = loaded
	return nil
}
