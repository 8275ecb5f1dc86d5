package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/newsagg/internal/adapters/driven/config/file"
	"github.com/custodia-labs/newsagg/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API and run scheduled ingestion",
	Long: `Starts the JSON API and, unless schedule.interval is 0, the ingestion
scheduler. Prometheus metrics are exposed at /metrics.

Routes:
  GET  /api/articles?keyword&category&source&date&page
  GET  /api/articles/:id
  GET  /api/preferences            (X-User-ID header)
  POST /api/preferences            (X-User-ID header)
  GET  /api/personalized-feed?page (X-User-ID header)
  POST /api/ingest
  GET  /api/ingest/latest`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, "+file.DefaultHTTPAddr+")")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if articleService == nil {
		return errors.New("article service not configured")
	}

	addr := serveAddr
	if addr == "" && appConfig != nil {
		addr = appConfig.Server.Addr
	}
	if addr == "" {
		addr = file.DefaultHTTPAddr
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Articles:    articleService,
		Preferences: preferenceService,
		Ingestion:   ingestionService,
		Metrics:     metricsHandler,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	if scheduler != nil {
		g.Go(func() error {
			if err := scheduler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		err := server.Run(ctx, addr)
		if scheduler != nil {
			if stopErr := scheduler.Stop(); stopErr != nil && err == nil {
				err = stopErr
			}
		}
		return err
	})

	fmt.Fprintf(cmd.OutOrStdout(), "API listening on http://%s\n", addr)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("serve failed: %w", err)
	}
	return nil
}
