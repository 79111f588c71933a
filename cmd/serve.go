package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/ougirez/carbon4c/internal/api"
	"github.com/ougirez/carbon4c/internal/pkg/logger"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra commands are typically global
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	svc, err := api.NewAPIService(cfg.HTTP, cfg.Log.Level, app.deps())
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(cfg.HTTP.Addr) }()
	logger.Infof(ctx, "listening on %s", cfg.HTTP.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Infof(shutdownCtx, "shutting down")
	return svc.Shutdown(shutdownCtx)
}
