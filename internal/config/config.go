package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (TURNOUTMAP_*). A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// TURNOUTMAP_SERVER.PORT -> server.port, etc.
	if err := k.Load(env.Provider("TURNOUTMAP_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "TURNOUTMAP_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validSources is the set of recognized data-source values.
var validSources = map[string]bool{
	SourceElectionProject: true,
	SourceCensus:          true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if len(c.Years) == 0 {
		return fmt.Errorf("years sequence is required")
	}
	for i := 1; i < len(c.Years); i++ {
		if c.Years[i] <= c.Years[i-1] {
			return fmt.Errorf("years must be strictly ascending, got %d after %d", c.Years[i], c.Years[i-1])
		}
	}

	if c.TransitionMS < 0 {
		return fmt.Errorf("transition_ms must be non-negative")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}

	if c.Data.GeographyPath == "" {
		return fmt.Errorf("data.geography_path is required")
	}

	if c.Data.DefaultSource != "" && !validSources[c.Data.DefaultSource] {
		return fmt.Errorf("invalid default_source %q: must be one of election-project, census", c.Data.DefaultSource)
	}

	for i, b := range c.Bands {
		if b.To <= b.From {
			return fmt.Errorf("band %d has empty range [%v, %v)", i, b.From, b.To)
		}
		if i > 0 && b.From != c.Bands[i-1].To {
			return fmt.Errorf("band %d is not contiguous with band %d", i, i-1)
		}
	}

	return nil
}
