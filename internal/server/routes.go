package server

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/electomaps/turnoutmap/internal/app"
	"github.com/electomaps/turnoutmap/internal/colorscale"
	"github.com/electomaps/turnoutmap/internal/svg"
	"github.com/electomaps/turnoutmap/internal/timeline"
	"github.com/electomaps/turnoutmap/internal/turnout"
)

const (
	mapWidth  = 960
	mapHeight = 600
)

// registerRoutes mounts the JSON API and the SVG renderer.
func (s *Server) registerRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/sources", s.handleSources)
		r.Get("/years", s.handleYears)
		r.Get("/turnout/{year}", s.handleTurnoutYear)
		r.Get("/extrema", s.handleExtrema)
	})
	r.Get("/map.svg", s.handleMapSVG)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// sourceIndex builds the index for the requested source (?source=, or
// the configured default).
func (s *Server) sourceIndex(r *http.Request) (*turnout.Index, string, bool) {
	source := r.URL.Query().Get("source")
	if source == "" {
		source = s.cfg.Data.DefaultSource
	}
	records, ok := s.records[source]
	if !ok {
		return nil, source, false
	}
	return turnout.BuildIndex(records, s.cfg.Years), source, true
}

func (s *Server) handleSources(w http.ResponseWriter, _ *http.Request) {
	sources := make([]string, 0, len(s.records))
	for src := range s.records {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	writeJSON(w, map[string]any{
		"sources": sources,
		"default": s.cfg.Data.DefaultSource,
	})
}

type yearInfo struct {
	Year       int                  `json:"year"`
	Candidates *timeline.Candidates `json:"candidates,omitempty"`
}

func (s *Server) handleYears(w http.ResponseWriter, _ *http.Request) {
	years := make([]yearInfo, 0, len(s.cfg.Years))
	for _, y := range s.cfg.Years {
		info := yearInfo{Year: y}
		if c, ok := timeline.CandidatesFor(y); ok {
			info.Candidates = &c
		}
		years = append(years, info)
	}
	writeJSON(w, years)
}

func (s *Server) handleTurnoutYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid year")
		return
	}

	idx, source, ok := s.sourceIndex(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown data source "+source)
		return
	}

	// A year with no records is a normal response, not an error.
	writeJSON(w, map[string]any{
		"source":  source,
		"year":    year,
		"turnout": idx.DatasetForYear(year),
	})
}

func (s *Server) handleExtrema(w http.ResponseWriter, r *http.Request) {
	idx, source, ok := s.sourceIndex(r)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown data source "+source)
		return
	}
	writeJSON(w, map[string]any{
		"source":  source,
		"extrema": idx.ComputeExtrema(),
	})
}

// handleMapSVG renders one map as a static SVG. Query parameters:
// year (primary map only), map (primary|highest|lowest), source,
// labels=all.
func (s *Server) handleMapSVG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	source := q.Get("source")
	if source == "" {
		source = s.cfg.Data.DefaultSource
	}

	cfg := *s.cfg
	cfg.Data.DefaultSource = source
	session, err := app.NewSession(&cfg, s.geography, s.recordSource)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	mapName := q.Get("map")
	if mapName == "" {
		mapName = app.MapPrimary
	}
	view := session.View(mapName)
	if view == nil {
		writeError(w, http.StatusBadRequest, "unknown map "+mapName)
		return
	}

	title := "Voter turnout"
	if mapName == app.MapPrimary {
		if yearStr := q.Get("year"); yearStr != "" {
			year, err := strconv.Atoi(yearStr)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid year")
				return
			}
			session.Timeline().SetYear(year)
		}
		title = "Voter turnout " + strconv.Itoa(session.Timeline().Active())
		if q.Get("labels") == "all" {
			view.SetShowAllLabels(true)
		}
	}

	opts := svg.Options{Width: mapWidth, Height: mapHeight, Title: title}
	if mapName == app.MapPrimary {
		opts.Legend = colorscale.New(cfg.Bands).Bands()
	}

	// Static render: sample past the transition so values are settled.
	at := time.Now().Add(2 * time.Duration(cfg.TransitionMS) * time.Millisecond)
	out := svg.Render(view.Frame(at), opts)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(out)
}
