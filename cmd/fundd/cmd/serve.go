package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/openalpha/yieldfund/api"
	"github.com/openalpha/yieldfund/metrics"
)

// ServeCmd runs the HTTP API and the Prometheus endpoint until interrupted
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return withNode(cmd, func(n *node) error {
				return serve(ctx, n)
			})
		},
	}
}

func serve(ctx context.Context, n *node) error {
	collector := metrics.NewCollector()
	if err := collector.Register(metrics.NewFundCollector(n.app, n.logger)); err != nil {
		return fmt.Errorf("failed to register fund metrics: %w", err)
	}
	collector.UpdateBlockHeight(n.app.Height())

	server := api.NewServer(api.ConfigFromApp(n.cfg.API), n.app, collector, n.logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx)
	})
	if n.cfg.Metrics.Listen != "" {
		g.Go(func() error {
			return runMetrics(ctx, n.cfg.Metrics.Listen, collector, n)
		})
	}
	return g.Wait()
}

func runMetrics(ctx context.Context, listen string, collector *metrics.Collector, n *node) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	srv := &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		n.logger.Info("Metrics server starting", "listen", listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
