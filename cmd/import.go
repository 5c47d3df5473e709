package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/electomaps/turnoutmap/internal/config"
	"github.com/electomaps/turnoutmap/internal/etl"
	"github.com/electomaps/turnoutmap/internal/progress"
	"github.com/electomaps/turnoutmap/internal/store"
	"github.com/electomaps/turnoutmap/internal/turnout"
)

var (
	importSource string
	importFormat string
	importJSON   bool
)

var importCmd = &cobra.Command{
	Use:   "import [glob...]",
	Short: "Normalize raw turnout CSV exports into the local store",
	Long: `Parses U.S. Elections Project or Census CSV exports, normalizes them
into flat (state, year, turnout) records, and replaces the named data
source in the SQLite store. File layouts are guessed from file names;
use --format to override for a single file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		files, err := etl.Discover(args)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no files match %v", args)
		}

		reporter := progress.NewReporter()
		reporter.Start(len(files))

		var records []turnout.Record
		for i, path := range files {
			reporter.Update(i+1, filepath.Base(path))

			format := etl.Format(importFormat)
			if format == "" {
				format = etl.GuessFormat(path)
			}
			if format == "" {
				reporter.Finish()
				return fmt.Errorf("cannot guess layout of %s; pass --format", path)
			}

			f, err := os.Open(path)
			if err != nil {
				reporter.Finish()
				return fmt.Errorf("opening %s: %w", path, err)
			}
			recs, err := etl.Normalize(format, f, etl.YearFromName(path))
			f.Close()
			if err != nil {
				reporter.Finish()
				return fmt.Errorf("normalizing %s: %w", path, err)
			}
			records = append(records, recs...)
		}
		reporter.Finish()

		st, err := store.Open(filepath.Join(cfg.Data.Dir, "turnoutmap.db"))
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ReplaceSource(context.Background(), importSource, records); err != nil {
			return err
		}

		if importJSON {
			name := "election_turnout_normalized.json"
			if importSource == config.SourceCensus {
				name = "election_turnout_census.json"
			}
			if err := etl.WriteJSON(records, filepath.Join(cfg.Data.Dir, name)); err != nil {
				return err
			}
		}

		fmt.Printf("Imported %d records into source %q from %d files\n", len(records), importSource, len(files))
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importSource, "source", config.SourceElectionProject, "data source to replace (election-project or census)")
	importCmd.Flags().StringVar(&importFormat, "format", "", "force a file layout: multi-year, single-year, 2024, census")
	importCmd.Flags().BoolVar(&importJSON, "json", true, "also write the normalized JSON file")
	rootCmd.AddCommand(importCmd)
}
