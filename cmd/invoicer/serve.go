package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"Invoice-Processing-System/cmd/config"
	"Invoice-Processing-System/internal/utils"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadRuntime()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := config.NewApp(ctx, cfg, logger)
	if err != nil {
		utils.LogError(logger, "main", "runServe", nil, err)
		return err
	}
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		logger.WithField("address", cfg.Address()).Info("server starting")
		errCh <- app.Listen(cfg.Address())
	}()

	select {
	case err := <-errCh:
		if err != nil {
			utils.LogError(logger, "main", "runServe", nil, err)
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		utils.LogError(logger, "main", "runServe", nil, err)
		return err
	}
	return nil
}
