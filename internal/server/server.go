// Package server exposes the turnout maps over HTTP: a JSON API over
// the index, static SVG renders, and a WebSocket endpoint driving one
// interactive session per connection.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/electomaps/turnoutmap/internal/config"
	"github.com/electomaps/turnoutmap/internal/etl"
	"github.com/electomaps/turnoutmap/internal/geo"
	"github.com/electomaps/turnoutmap/internal/store"
	"github.com/electomaps/turnoutmap/internal/turnout"
)

// Server owns the loaded inputs and the router. The geography and the
// per-source record sets load once at startup; per-connection sessions
// read them but never mutate them.
type Server struct {
	cfg        *config.Config
	geography  geo.Geography
	records    map[string][]turnout.Record
	router     chi.Router
	httpServer *http.Server
}

// New loads the geography and every imported data source, then builds
// the router. Both loads must succeed before any route is served; a
// failure in either aborts startup with no partial server.
func New(cfg *config.Config) (*Server, error) {
	geography, err := geo.LoadGeography(cfg.Data.GeographyPath)
	if err != nil {
		return nil, fmt.Errorf("loading geography: %w", err)
	}

	records, err := loadRecords(cfg)
	if err != nil {
		return nil, fmt.Errorf("loading turnout data: %w", err)
	}
	if _, ok := records[cfg.Data.DefaultSource]; !ok {
		return nil, fmt.Errorf("default source %q has no imported records; run `turnoutmap import` first", cfg.Data.DefaultSource)
	}

	return NewWithData(cfg, geography, records), nil
}

// NewWithData builds a server over already-loaded inputs. Split out for
// tests.
func NewWithData(cfg *config.Config, geography geo.Geography, records map[string][]turnout.Record) *Server {
	s := &Server{
		cfg:       cfg,
		geography: geography,
		records:   records,
	}
	s.router = s.buildRouter()
	return s
}

// loadRecords reads every source from the SQLite store, falling back to
// the normalized JSON file for sources the store does not have.
func loadRecords(cfg *config.Config) (map[string][]turnout.Record, error) {
	records := make(map[string][]turnout.Record)

	dbPath := filepath.Join(cfg.Data.Dir, "turnoutmap.db")
	st, err := store.Open(dbPath)
	if err == nil {
		defer st.Close()
		ctx := context.Background()
		sources, err := st.Sources(ctx)
		if err != nil {
			return nil, err
		}
		for _, src := range sources {
			recs, err := st.RecordsBySource(ctx, src)
			if err != nil {
				return nil, err
			}
			if len(recs) > 0 {
				records[src] = recs
			}
		}
	}

	// JSON fallback keeps the server usable from a checked-in dataset
	// without a prior import.
	jsonFiles := map[string]string{
		config.SourceElectionProject: "election_turnout_normalized.json",
		config.SourceCensus:          "election_turnout_census.json",
	}
	for src, name := range jsonFiles {
		if _, ok := records[src]; ok {
			continue
		}
		recs, err := etl.ReadJSON(filepath.Join(cfg.Data.Dir, name))
		if err != nil {
			continue // source simply unavailable
		}
		records[src] = recs
	}

	return records, nil
}

// recordSource adapts the preloaded sets to the session constructor.
func (s *Server) recordSource(source string) ([]turnout.Record, error) {
	recs, ok := s.records[source]
	if !ok {
		return nil, fmt.Errorf("unknown data source %q", source)
	}
	return recs, nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.Server.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	s.registerRoutes(r)
	r.Get("/about", s.handleAbout)
	r.Get("/ws", s.handleWebSocket)

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port and blocks.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Printf("turnoutmap server listening on %s", addr)
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
