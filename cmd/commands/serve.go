package commands

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

	"github.com/31Joojo/portfolio/internal/config"
	"github.com/31Joojo/portfolio/internal/launcher"
	"github.com/31Joojo/portfolio/internal/logging"
	"github.com/31Joojo/portfolio/internal/page"
	"github.com/31Joojo/portfolio/internal/server"
	"github.com/31Joojo/portfolio/internal/stats"
	"github.com/31Joojo/portfolio/internal/tracer"
)

// DefaultConfigPath is where serve, render and config look for the TOML
// configuration when --config is not given.
const DefaultConfigPath = ".portfolio/config.toml"

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard server",
		Long: `Start the dashboard HTTP server on the configured port.

With server.headless = false a browser window is opened on the dashboard
once it is reachable; otherwise readiness is probed and logged. The server
runs until interrupted.

Examples:
  # Serve with defaults (port 8501, headless)
  portfolio serve

  # Serve with a custom configuration
  portfolio serve --config ./config.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", DefaultConfigPath, "Path to the TOML configuration file")
	return cmd
}

func runServe(parent context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := newLogger(cfg, "Serve")

	var pages server.PageSource = page.Default()
	if cfg.Runner.InstallTracer {
		pages = tracer.New(pages, newLogger(cfg, "Tracer"))
	}

	var recorder stats.Recorder = stats.Nop{}
	if cfg.Browser.GatherUsageStats {
		rec, err := stats.Open(cfg.Server.DataPath, newLogger(cfg, "Stats"))
		if err != nil {
			// Stats are best effort; the dashboard still serves without them.
			logger.Warn("opening usage stats store", logging.Field{Key: "error", Value: err.Error()})
		} else {
			recorder = rec
		}
	}

	srv, err := server.NewServer(server.Config{
		App:    cfg,
		Pages:  pages,
		Nav:    page.Default().Entries(),
		Logger: newLogger(cfg, "Server"),
		Stats:  recorder,
	})
	if err != nil {
		return err
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpSrv := srv.HTTPServer()
	errChan := make(chan error, 1)
	go func() {
		logger.Info("dashboard listening", logging.Field{Key: "addr", Value: httpSrv.Addr})
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	go openDashboard(ctx, cfg, logger)

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func openDashboard(ctx context.Context, cfg *config.Config, logger logging.Logger) {
	backend := launcher.ForHeadless(cfg.Server.Headless)
	l, err := launcher.New(backend, newLogger(cfg, "Launcher"))
	if err != nil {
		logger.Warn("creating launcher", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer l.Close()

	url := fmt.Sprintf("http://localhost:%d/", cfg.Server.Port)
	if err := l.Launch(ctx, url); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("opening dashboard",
			logging.Field{Key: "url", Value: url},
			logging.Field{Key: "error", Value: err.Error()})
		return
	}

	// Keep the window open until shutdown.
	<-ctx.Done()
}

// newLogger builds a component logger from the [logger] config section.
func newLogger(cfg *config.Config, component string) logging.Logger {
	return logging.New(component, logging.Options{
		Level:         logging.ParseLevel(cfg.Logger.Level),
		Format:        cfg.Logger.Format,
		MessageFormat: cfg.Logger.MessageFormat,
	})
}
