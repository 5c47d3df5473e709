// Package config loads and validates turnoutmap configuration.
package config

import (
	"github.com/electomaps/turnoutmap/internal/colorscale"
	"github.com/electomaps/turnoutmap/internal/label"
	"github.com/electomaps/turnoutmap/internal/timeline"
)

// DefaultConfigFile is the conventional config file name.
const DefaultConfigFile = "turnoutmap.yml"

// Known data sources. Each produces its own record set and index.
const (
	SourceElectionProject = "election-project"
	SourceCensus          = "census"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port     int  `koanf:"port" yaml:"port"`
	AllowAll bool `koanf:"allow_all" yaml:"allow_all"` // permissive CORS (dev mode)
}

// DataConfig points at the static inputs and the imported store.
type DataConfig struct {
	Dir           string `koanf:"dir" yaml:"dir"`                       // directory for the SQLite store and normalized JSON
	GeographyPath string `koanf:"geography_path" yaml:"geography_path"` // projected geometry JSON
	DefaultSource string `koanf:"default_source" yaml:"default_source"`
}

// Config is the full configuration surface. All of it is static data:
// loaded at startup, never mutated at runtime.
type Config struct {
	Years        []int                   `koanf:"years" yaml:"years"`
	TransitionMS int                     `koanf:"transition_ms" yaml:"transition_ms"`
	Server       ServerConfig            `koanf:"server" yaml:"server"`
	Data         DataConfig              `koanf:"data" yaml:"data"`
	Bands        []colorscale.Band       `koanf:"bands" yaml:"bands"`
	Offsets      map[string]label.Offset `koanf:"label_offsets" yaml:"label_offsets"`
	Anchors      map[string]label.Anchor `koanf:"label_anchors" yaml:"label_anchors"`
}

// DefaultConfig returns the production defaults: the presidential year
// sequence, the [40,80] turnout scale and the hand-tuned label tables.
func DefaultConfig() *Config {
	return &Config{
		Years:        timeline.DefaultYears(),
		TransitionMS: 600,
		Server: ServerConfig{
			Port: 8080,
		},
		Data: DataConfig{
			Dir:           "data",
			GeographyPath: "data/states-albers.json",
			DefaultSource: SourceElectionProject,
		},
		Bands:   colorscale.Turnout().Bands(),
		Offsets: label.DefaultOffsets,
		Anchors: label.DefaultAnchors,
	}
}
