package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/safevoice-lab/safevoice/pkg/cli/config"
	controller "github.com/safevoice-lab/safevoice/pkg/controller/http"
	"github.com/safevoice-lab/safevoice/pkg/usecase"
	"github.com/safevoice-lab/safevoice/pkg/utils/apperr"
	"github.com/safevoice-lab/safevoice/pkg/utils/async"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg   config.Server
		upstreamCfg config.Upstream
		cacheCfg    config.Cache
		viewsCfg    config.Views
	)

	flags := joinFlags(
		serverCfg.Flags(),
		upstreamCfg.Flags(),
		cacheCfg.Flags(),
		viewsCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start the dashboard HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if err := upstreamCfg.Validate(); err != nil {
				return err
			}

			logger.Info("Starting safevoice server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("upstream", upstreamCfg),
				slog.Any("cache", cacheCfg),
			)

			source, err := upstreamCfg.Configure()
			if err != nil {
				return err
			}

			kv, err := cacheCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			viewConfig, err := viewsCfg.Configure()
			if err != nil {
				return err
			}

			store := usecase.NewStore(source)
			defer store.Close()

			board := usecase.NewBoard(ctx, kv, viewConfig)
			views := usecase.NewViews(store, board, viewConfig)

			// Kick off the initial incident fetch without blocking startup;
			// the dashboard reports loading state until it completes
			async.Dispatch(ctx, func(ctx context.Context) error {
				if err := store.Load(ctx); err != nil {
					apperr.Handle(ctx, err)
				}
				return nil
			})

			server := controller.NewServer(ctx, serverCfg.Addr, store, board, views)

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
