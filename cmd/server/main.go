package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/catchboard/internal/config"
	"github.com/mmynk/catchboard/internal/metrics"
	"github.com/mmynk/catchboard/internal/middleware"
	"github.com/mmynk/catchboard/internal/service"
	"github.com/mmynk/catchboard/internal/tournament"
	"github.com/mmynk/catchboard/internal/web"
	"github.com/mmynk/catchboard/pkg/logging"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:          "catchboard",
		Short:        "Fishing tournament leaderboard server",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(configFile)
			if err != nil {
				return err
			}
			logging.Setup(settings.Log.Level, settings.Log.JSON)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := run(ctx, settings); err != nil {
				slog.Error("Server failed", "error", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "path to the YAML config file")
	return cmd
}

func run(ctx context.Context, settings *config.Settings) error {
	if settings.Auth.Secret == config.DefaultSecret {
		slog.Warn("Using the default auth secret; set auth.secret for any shared deployment")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	tournamentMetrics, err := metrics.NewTournamentMetrics(registry)
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	loc, err := settings.Location()
	if err != nil {
		return err
	}

	conn, err := openBackend(ctx, settings)
	if err != nil {
		return err
	}
	defer conn.Close()

	backend := &tournament.Backend{
		Store:         conn.store,
		Objects:       conn.objects,
		Authenticator: conn.authenticator,
		JWT:           conn.jwtManager,
		Recorder:      tournamentMetrics,
		Location:      loc,
	}

	if err := tournament.SeedRoster(ctx, backend.Store, settings.Tournament.Participants); err != nil {
		return err
	}

	webHandler, err := web.NewHandler(backend, web.Options{
		Title:        settings.Tournament.Name,
		Species:      settings.Tournament.Species,
		CookieName:   settings.Auth.CookieName,
		SecureCookie: settings.Server.SecureCookie,
		Objects:      conn.objectsHandler,
	})
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	mux := http.NewServeMux()

	servicePath, serviceHandler := service.NewTournamentService(backend).Handler()
	mux.Handle(servicePath, middleware.CORS(serviceHandler))
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.Handle("/", webHandler.Engine())

	// Wrap with h2c for HTTP/2 without TLS
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", settings.Server.Port),
		Handler:           h2c.NewHandler(middleware.Logging(mux), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting",
			"address", server.Addr,
			"backend", settings.Backend.Kind,
			"url", fmt.Sprintf("http://localhost%s", server.Addr),
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
