// Package server exposes the station, price and reaction store over the JSON
// HTTP API consumed by pkg/api.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/httprate"
	"github.com/rubiojr/postos/internal/store"
)

const shutdownTimeout = 10 * time.Second

type Options struct {
	// RequestsPerMinute limits requests per client IP. Zero disables it.
	RequestsPerMinute int
}

// NewLogger returns the request logger used by the server.
func NewLogger(debug bool) *httplog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return httplog.NewLogger("postos", httplog.Options{
		JSON:            false,
		LogLevel:        level,
		Concise:         true,
		QuietDownPeriod: 10 * time.Second,
	})
}

// NewRouter wires the API routes to storage.
func NewRouter(storage *store.Storage, logger *httplog.Logger, opts Options) http.Handler {
	h := &handlers{storage: storage, log: logger.Logger}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	if opts.RequestsPerMinute > 0 {
		r.Use(httprate.LimitByIP(opts.RequestsPerMinute, time.Minute))
	}

	r.Route("/stations", func(r chi.Router) {
		r.Get("/", h.listStations)
		r.Post("/", h.createStation)
		r.Get("/{id}", h.getStation)
	})

	r.Route("/prices", func(r chi.Router) {
		r.Patch("/update_bulk", h.updatePrices)
		r.Post("/create_bulk", h.createPrices)
		r.Post("/delete_bulk", h.deletePrices)
	})

	r.Route("/user_reactions", func(r chi.Router) {
		r.Post("/", h.createReaction)
		r.Get("/my_reactions/{userID}", h.myReactions)
		r.Delete("/{id}", h.deleteReaction)
	})

	return r
}

// ListenAndServe serves handler on addr until ctx is canceled.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
