package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"placard/internal/api"
	"placard/internal/logging"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the upload processor and status API",
		Long: "Starts the background queue processor, serves the read-only status " +
			"API, and periodically refreshes the backend asset snapshot. Only one " +
			"instance may run per state directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.New(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
				OutputPaths: []string{
					"stdout",
					filepath.Join(cfg.Paths.LogDir, "placard.log"),
				},
			})
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			lock := flock.New(cfg.LockPath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !locked {
				return errors.New("another placard instance is already running")
			}
			defer lock.Unlock() //nolint:errcheck

			pipe, err := ctx.newPipeline(runCtx, logger)
			if err != nil {
				return err
			}
			defer pipe.Close()

			if err := pipe.processor.Start(runCtx); err != nil {
				return err
			}
			defer pipe.processor.Stop()

			handler := api.NewHandler(cfg, pipe.session, pipe.store, pipe.processor, logger)
			server := &http.Server{
				Addr:    cfg.Paths.APIBind,
				Handler: handler.Router(),
			}
			serveErr := make(chan error, 1)
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
			}()
			logger.Info("status api listening", logging.String("bind", cfg.Paths.APIBind))

			snapshotTicker := time.NewTicker(time.Duration(cfg.Workflow.SnapshotInterval) * time.Second)
			defer snapshotTicker.Stop()

			for {
				select {
				case <-runCtx.Done():
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = server.Shutdown(shutdownCtx)
					logger.Info("placard shutting down")
					return nil
				case err := <-serveErr:
					return fmt.Errorf("status api: %w", err)
				case <-snapshotTicker.C:
					if err := pipe.session.RefreshAssets(runCtx); err != nil {
						logger.Warn("asset snapshot refresh failed", logging.Error(err))
					}
				}
			}
		},
	}
}
