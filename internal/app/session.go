// Package app wires the primary year-scrubbing map, the two extrema
// summary maps and the timeline into one session.
package app

import (
	"fmt"
	"strconv"
	"time"

	"github.com/electomaps/turnoutmap/internal/colorscale"
	"github.com/electomaps/turnoutmap/internal/config"
	"github.com/electomaps/turnoutmap/internal/geo"
	"github.com/electomaps/turnoutmap/internal/mapview"
	"github.com/electomaps/turnoutmap/internal/timeline"
	"github.com/electomaps/turnoutmap/internal/turnout"
)

// Names of the maps a session owns.
const (
	MapPrimary = "primary"
	MapHighest = "highest"
	MapLowest  = "lowest"
)

// RecordSource supplies the normalized records for a named data source.
// The store-backed and JSON-file-backed loaders both satisfy it.
type RecordSource func(source string) ([]turnout.Record, error)

// Session is one independent interactive session: its own views, its
// own index, its own timeline position. Sessions share nothing mutable,
// so any number can coexist in a process.
type Session struct {
	cfg     *config.Config
	records RecordSource

	source string
	index  *turnout.Index

	timeline *timeline.Controller
	primary  *mapview.View
	highest  *mapview.View
	lowest   *mapview.View
}

// NewSession loads the default data source, builds the index and
// constructs the three views over the shared geography. A failure to
// load the records is fatal to session construction; no partial session
// is returned.
func NewSession(cfg *config.Config, geography geo.Geography, records RecordSource) (*Session, error) {
	s := &Session{
		cfg:     cfg,
		records: records,
	}

	viewCfg := mapview.Config{
		Geography:  geography,
		Projection: geo.Planar{},
		Scale:      colorscale.New(cfg.Bands),
		Offsets:    cfg.Offsets,
		Anchors:    cfg.Anchors,
		Transition: time.Duration(cfg.TransitionMS) * time.Millisecond,
	}
	s.primary = mapview.New(viewCfg)
	s.highest = mapview.New(viewCfg)
	s.lowest = mapview.New(viewCfg)
	// The summary maps always show their labels; that is their point.
	s.highest.SetShowAllLabels(true)
	s.lowest.SetShowAllLabels(true)

	s.timeline = timeline.New(cfg.Years, func(year int) {
		s.updatePrimary(year)
	})

	if err := s.SetSource(cfg.Data.DefaultSource); err != nil {
		return nil, err
	}
	return s, nil
}

// SetSource switches the active data source: the index is rebuilt
// wholesale and every view retargets at its new dataset.
func (s *Session) SetSource(source string) error {
	records, err := s.records(source)
	if err != nil {
		return fmt.Errorf("loading source %s: %w", source, err)
	}
	s.source = source
	s.index = turnout.BuildIndex(records, s.cfg.Years)

	s.updatePrimary(s.timeline.Active())
	s.updateSummaries()
	return nil
}

// Source returns the active data source name.
func (s *Session) Source() string { return s.source }

// Index exposes the active index for the read-only API.
func (s *Session) Index() *turnout.Index { return s.index }

// Timeline returns the session's year controller.
func (s *Session) Timeline() *timeline.Controller { return s.timeline }

// Primary returns the year-scrubbing map view.
func (s *Session) Primary() *mapview.View { return s.primary }

// View returns a map view by name, or nil.
func (s *Session) View(name string) *mapview.View {
	switch name {
	case MapPrimary:
		return s.primary
	case MapHighest:
		return s.highest
	case MapLowest:
		return s.lowest
	}
	return nil
}

func (s *Session) updatePrimary(year int) {
	s.primary.ApplyUpdate(mapview.Update{
		Dataset: s.index.EntriesForYear(year),
	})
}

// updateSummaries retargets the extrema maps. They encode the year, not
// the value: fill is the year tint and the label shows the year the
// extreme occurred.
func (s *Session) updateSummaries() {
	ex := s.index.ComputeExtrema()
	first, last := s.yearDomain()

	yearFill := func(_ string, e turnout.Entry, ok bool) string {
		if !ok {
			return colorscale.NeutralGray
		}
		return colorscale.YearTint(e.Year, first, last)
	}
	yearLabel := func(_ string, _ float64, e turnout.Entry) string {
		return strconv.Itoa(e.Year)
	}

	s.highest.ApplyUpdate(mapview.Update{Dataset: ex.Highest, Fill: yearFill, Format: yearLabel})
	s.lowest.ApplyUpdate(mapview.Update{Dataset: ex.Lowest, Fill: yearFill, Format: yearLabel})
}

func (s *Session) yearDomain() (first, last int) {
	years := s.cfg.Years
	if len(years) == 0 {
		return 0, 0
	}
	return years[0], years[len(years)-1]
}

// Frames samples all three views at one instant, keyed by map name.
func (s *Session) Frames(at time.Time) map[string]mapview.Scene {
	return map[string]mapview.Scene{
		MapPrimary: s.primary.Frame(at),
		MapHighest: s.highest.Frame(at),
		MapLowest:  s.lowest.Frame(at),
	}
}
