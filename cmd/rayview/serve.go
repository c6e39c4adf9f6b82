package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gogpu/rayview"
	"github.com/gogpu/rayview/metrics"
	"github.com/gogpu/rayview/view"
)

func runServe(ctx context.Context, stderr io.Writer, args []string) error {
	fs := flag.NewFlagSet("rayview serve", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var common commonFlags
	common.register(fs)
	listen := fs.String("listen", "", "listen address (default \":8080\")")

	if done, err := parseFlags(fs, args); done {
		return err
	}
	cfg, err := common.resolve()
	if err != nil {
		return err
	}
	if *listen != "" {
		cfg.Server.Listen = *listen
	}

	logger, stop, err := startLogging(cfg, stderr)
	if err != nil {
		return err
	}
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	a, err := newApp(ctx, cfg, logger, metrics.New(reg))
	if err != nil {
		return err
	}
	defer func() { _ = a.close(context.WithoutCancel(ctx)) }()

	srv := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           newServer(a, reg, logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("serving", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// server exposes one element over HTTP. Renders are serialized: the
// element and its module do not support overlapping frames.
type server struct {
	app    *app
	reg    *prometheus.Registry
	logger *slog.Logger

	mu sync.Mutex
}

func newServer(a *app, reg *prometheus.Registry, logger *slog.Logger) *server {
	return &server{app: a, reg: reg, logger: logger}
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /frame.png", s.handleFrame("png", "image/png"))
	mux.HandleFunc("GET /frame.bmp", s.handleFrame("bmp", "image/bmp"))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{}))
	return mux
}

func (s *server) handleFrame(format, contentType string) http.HandlerFunc {
	enc := encoders[format]
	return func(w http.ResponseWriter, r *http.Request) {
		frame, err := s.renderFrame(r.Context())
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, rayview.ErrNotReady) {
				status = http.StatusServiceUnavailable
			}
			s.logger.Warn("frame request failed", "error", err, "status", status)
			http.Error(w, err.Error(), status)
			return
		}

		var buf bytes.Buffer
		if err := enc(&buf, straightAlpha(frame)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
		_, _ = buf.WriteTo(w)
	}
}

func (s *server) renderFrame(ctx context.Context) (*image.RGBA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.app.render(ctx)
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	state := s.app.element.State()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if state != view.StateReady {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	fmt.Fprintln(w, state)
}
