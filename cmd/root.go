package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "turnoutmap",
	Short: "Interactive choropleth maps of U.S. presidential voter turnout",
	Long: `Turnoutmap renders state-level voter turnout for presidential
elections on an interactive choropleth map: scrub through election
years, compare data sources, and see each state's highest and lowest
turnout year at a glance.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "turnoutmap.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
