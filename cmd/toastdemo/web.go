package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/toastkit/pkg/live"
	"github.com/vango-dev/toastkit/pkg/middleware"
	"github.com/vango-dev/toastkit/pkg/surface"
	"github.com/vango-dev/toastkit/pkg/toast"
)

func webCmd() *cobra.Command {
	var (
		addr    string
		every   time.Duration
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the toast surface to browsers",
		Long: `Serve a page that mirrors the toast surface over websocket.

Routes:
  GET  /          surface page
  POST /toast     show a toast (severity, title, message, position, duration)
  GET  /metrics   Prometheus metrics

Examples:
  toastdemo web
  toastdemo web --addr=:9000 --every=0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWeb(addr, every, verbose)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "127.0.0.1:8080", "Address to listen on")
	cmd.Flags().DurationVarP(&every, "every", "e", 2*time.Second, "Sample feed interval (0 disables)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log lifecycle details")

	return cmd
}

func runWeb(addr string, every time.Duration, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	metrics := prometheus.NewRegistry()
	surf := surface.New(surface.WithLogger(logger))
	reg := toast.NewRegistry(surf,
		toast.WithLogger(logger),
		toast.WithObserver(middleware.Prometheus(middleware.WithRegistry(metrics))),
		toast.WithObserver(middleware.OpenTelemetry()))
	defer reg.Close()

	hub := live.NewHub(surf, live.WithLogger(logger))
	router := live.NewRouter(hub, "toastdemo")
	router.Post("/toast", showHandler(reg))
	router.Handle("/metrics", promhttp.HandlerFor(metrics, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if every > 0 {
		go feed(ctx, reg, every)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	success("Serving toasts on http://%s", addr)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hub.Close(); err != nil {
		logger.Warn("closing live clients", "error", err)
	}
	return server.Shutdown(shutdownCtx)
}
