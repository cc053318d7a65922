package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/api"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/chunker"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/logging"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config, RECIPES_ADDR and PORT)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search form and JSON API over HTTP",
	Long: `Serve the recipe search page and API.

Routes:
  GET  /                 search form
  POST /                 form submission (field "ingredients")
  POST /search           {"ingredients": "..."} -> [{"recipe_name","ingredients","similarity"}]
  GET  /api/v1/health    liveness and dataset status
  GET  /api/v1/stats     index size and common ingredients
  GET  /metrics          Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	finder, err := openFinder(ctx, appCfg)
	if err != nil {
		return err
	}
	handler, err := api.NewHandler(finder, chunker.NewIngredientChunker())
	if err != nil {
		return err
	}
	addr := appCfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           api.NewRouter(handler, api.RouterConfig{RateLimitPerMinute: appCfg.Server.RateLimitPerMinute}),
		ReadTimeout:       time.Duration(appCfg.Server.ReadTimeoutSecs) * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      time.Duration(appCfg.Server.WriteTimeoutSecs) * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logging.Info().Str("addr", addr).Bool("dataset_loaded", finder.Available()).Msg("HTTP server listening")
	err = serveHTTP(ctx, server, shutdownTimeout)
	if errors.Is(err, context.Canceled) {
		logging.Info().Msg("HTTP server stopped")
		return nil
	}
	return err
}

// serveHTTP runs server until ctx is cancelled, then shuts it down gracefully.
// It returns ctx.Err() after a clean shutdown.
func serveHTTP(ctx context.Context, server *http.Server, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-errCh
		return ctx.Err()
	}
}
