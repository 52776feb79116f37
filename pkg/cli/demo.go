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
	"github.com/safevoice-lab/safevoice/pkg/service/upstream"
	"github.com/urfave/cli/v3"
)

func cmdDemo() *cli.Command {
	var (
		addr  string
		count int64
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Address to bind the demo upstream to",
			Category:    "Demo",
			Sources:     cli.EnvVars("SAFEVOICE_DEMO_ADDR"),
			Value:       "localhost:9090",
			Destination: &addr,
		},
		&cli.Int64Flag{
			Name:        "count",
			Usage:       "Number of sample incidents to generate",
			Category:    "Demo",
			Value:       120,
			Destination: &count,
		},
	}

	return &cli.Command{
		Name:  "demo",
		Usage: "Serve generated sample incidents as an upstream for local development",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			if count <= 0 {
				return goerr.New("count must be positive", goerr.V("count", count))
			}

			incidents := upstream.SampleIncidents(time.Now(), int(count))
			server := &http.Server{
				Addr:              addr,
				Handler:           upstream.SampleHandler(incidents),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go func() {
				logger.Info("Demo upstream starting",
					slog.String("addr", addr),
					slog.Int("incidents", len(incidents)),
				)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("Demo upstream error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown demo upstream gracefully")
			}

			return nil
		},
	}
}
