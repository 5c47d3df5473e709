package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to turnoutmap.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to turnoutmap! Let's configure your project.")
	fmt.Println()

	cfg := DefaultConfig()

	sourcePrompt := promptui.Select{
		Label: "Select default data source",
		Items: []string{
			"election-project - U.S. Elections Project VEP turnout (1980-2024)",
			"census           - Census CPS voting supplement",
		},
	}
	sourceIdx, _, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("source selection: %w", err)
	}
	sources := []string{SourceElectionProject, SourceCensus}
	cfg.Data.DefaultSource = sources[sourceIdx]

	portPrompt := promptui.Prompt{
		Label:   "Server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port prompt: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	dataPrompt := promptui.Prompt{
		Label:   "Data directory",
		Default: cfg.Data.Dir,
	}
	dataDir, err := dataPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data directory prompt: %w", err)
	}
	cfg.Data.Dir = dataDir
	cfg.Data.GeographyPath = dataDir + "/states-albers.json"

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(DefaultConfigFile); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration written to %s\n", DefaultConfigFile)
	return cfg, nil
}
