// Package server streams playback to browsers: an HTML page with the static
// chart and a websocket carrying one plan per frame.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/san-kum/gapsim/internal/playback"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	hub    *Hub
	page   string
	logger *zap.Logger
}

// New serves page at "/" and the hub at "/ws".
func New(hub *Hub, page string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{hub: hub, page: page, logger: logger}
}

// Handler routes the page, the websocket and a health check.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/", s.handlePage)
	r.Get("/ws", s.hub.ServeWS)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(s.page))
}

// requestLogger logs each request once it completes. Websocket requests are
// logged when the connection ends.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", time.Since(start)))
		})
	}
}

// Serve runs the HTTP server on ln and the scheduler on ticks until ctx is
// done or either fails. The hub must already observe the scheduler.
// Cancellation is a clean stop and returns nil.
func (s *Server) Serve(ctx context.Context, ln net.Listener, sched *playback.Scheduler, ticks <-chan time.Time) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("serving", zap.String("addr", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		err := sched.Run(ctx, ticks)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err == nil {
			// ticks closed; keep serving until ctx is done
			<-ctx.Done()
		}
		return err
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.hub.Close()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// ListenAndServe listens on addr and plays at period.
func (s *Server) ListenAndServe(ctx context.Context, addr string, sched *playback.Scheduler, period time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	t := playback.NewTicker(period)
	defer t.Stop()
	return s.Serve(ctx, ln, sched, t.C)
}
