// Package ioweb serves a lexicon over HTTP.
package ioweb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gnames/biolexica/pkg/errcode"
	"github.com/gnames/biolexica/pkg/grounder"
	"github.com/gnames/gn"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server answers grounding requests.
type Server struct {
	grounder *grounder.Grounder
	timeout  time.Duration
	metrics  *metrics
}

// Option configures Server.
type Option func(*Server)

// OptTimeout sets the time limit of a request.
func OptTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New creates a Server for the grounder.
func New(g *grounder.Grounder, opts ...Option) *Server {
	res := &Server{
		grounder: g,
		timeout:  10 * time.Second,
		metrics:  newMetrics(),
	}
	for _, opt := range opts {
		opt(res)
	}
	res.metrics.terms.Set(float64(g.Size()))
	return res
}

// Router returns the HTTP handler of the service.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Handle("/metrics", promhttp.HandlerFor(
		s.metrics.registry,
		promhttp.HandlerOpts{},
	))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(s.timeout))
		r.Use(s.instrument)
		r.Get("/ping", s.ping)
		r.Get("/ground/{text}", s.ground)
		r.Get("/annotate", s.annotate)
		r.Get("/summarize", s.summarize)
		r.Get("/summary", s.summary)
	})
	return r
}

// Run listens on port until ctx is cancelled, then shuts down.
func (s *Server) Run(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting web service", "port", port)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return ServerError(port, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	slog.Info("Stopping web service")
	if err := srv.Shutdown(shutCtx); err != nil {
		return ServerError(port, err)
	}
	return nil
}

// instrument counts requests and measures their duration.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unknown"
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.metrics.requests.
			WithLabelValues(route, strconv.Itoa(status)).Inc()
		s.metrics.duration.
			WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// ServerError is returned when the web service cannot run.
func ServerError(port int, err error) error {
	msg := "Web service on port <em>%d</em> failed"
	vars := []any{port}
	return &gn.Error{
		Code: errcode.ServerError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("web service on port %d: %w", port, err),
	}
}
