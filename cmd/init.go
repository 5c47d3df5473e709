package cmd

import (
	"github.com/spf13/cobra"

	"github.com/electomaps/turnoutmap/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize turnoutmap configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to pick a data source and server settings, and generates a turnoutmap.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
