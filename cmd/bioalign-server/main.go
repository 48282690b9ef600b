// Command bioalign-server serves the alignment API over HTTP.
//
// Usage:
//
//	bioalign-server [--config FILE] [--host HOST] [--port PORT] [-v]
//
// Flags override the server section of the config file. Prometheus metrics
// are exposed on /metrics.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/aria-lang/bioalign/api"
	"github.com/aria-lang/bioalign/internal/cli"
	"github.com/aria-lang/bioalign/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := command().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func command() *cobra.Command {
	var (
		configPath string
		host       string
		port       int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:           "bioalign-server",
		Short:         "Serve the alignment API over HTTP",
		Version:       cli.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			level, err := log.ParseLevel(cfg.Log.Level)
			if err != nil {
				return err
			}
			if verbose {
				level = log.DebugLevel
			}
			return serve(cmd.Context(), cfg, cli.NewLogger(os.Stderr, level))
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	cmd.Flags().StringVar(&host, "host", "", "host to bind to (overrides config)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	return cmd
}

// serve runs the server until ctx is canceled, then drains in-flight
// requests for up to the configured shutdown timeout.
func serve(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	s := cfg.Server
	server := &http.Server{
		Addr:         s.Addr(),
		Handler:      api.NewRouter(cfg, logger, cli.Version),
		ReadTimeout:  s.ReadTimeoutDuration(),
		WriteTimeout: s.WriteTimeoutDuration(),
		IdleTimeout:  s.IdleTimeoutDuration(),
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("bioalign server starting", "addr", "http://"+s.Addr(), "version", cli.Version)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", s.Addr(), err)
	case <-ctx.Done():
	}

	logger.Info("server is shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.ShutdownTimeoutDuration())
	defer cancel()

	server.SetKeepAlivesEnabled(false)
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
