package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/electomaps/turnoutmap/internal/app"
	"github.com/electomaps/turnoutmap/internal/colorscale"
	"github.com/electomaps/turnoutmap/internal/config"
	"github.com/electomaps/turnoutmap/internal/etl"
	"github.com/electomaps/turnoutmap/internal/geo"
	"github.com/electomaps/turnoutmap/internal/svg"
	"github.com/electomaps/turnoutmap/internal/turnout"
)

var (
	renderYear   int
	renderMap    string
	renderOut    string
	renderLabels bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one map to a static SVG file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		geography, err := geo.LoadGeography(cfg.Data.GeographyPath)
		if err != nil {
			return fmt.Errorf("loading geography: %w", err)
		}

		session, err := app.NewSession(cfg, geography, func(source string) ([]turnout.Record, error) {
			name := "election_turnout_normalized.json"
			if source == config.SourceCensus {
				name = "election_turnout_census.json"
			}
			return etl.ReadJSON(filepath.Join(cfg.Data.Dir, name))
		})
		if err != nil {
			return err
		}

		view := session.View(renderMap)
		if view == nil {
			return fmt.Errorf("unknown map %q", renderMap)
		}

		title := "Voter turnout"
		opts := svg.Options{Width: 960, Height: 600}
		if renderMap == app.MapPrimary {
			if renderYear != 0 {
				session.Timeline().SetYear(renderYear)
			}
			view.SetShowAllLabels(renderLabels)
			title = fmt.Sprintf("Voter turnout %d", session.Timeline().Active())
			opts.Legend = colorscale.New(cfg.Bands).Bands()
		}
		opts.Title = title

		at := time.Now().Add(2 * time.Duration(cfg.TransitionMS) * time.Millisecond)
		out := svg.Render(view.Frame(at), opts)

		if err := os.WriteFile(renderOut, out, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", renderOut, err)
		}
		fmt.Printf("Wrote %s\n", renderOut)
		return nil
	},
}

func init() {
	renderCmd.Flags().IntVar(&renderYear, "year", 0, "election year (primary map; defaults to the latest)")
	renderCmd.Flags().StringVar(&renderMap, "map", app.MapPrimary, "map to render: primary, highest, lowest")
	renderCmd.Flags().StringVar(&renderOut, "out", "turnout.svg", "output file")
	renderCmd.Flags().BoolVar(&renderLabels, "labels", true, "show all labels")
	rootCmd.AddCommand(renderCmd)
}
