// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var (
	configPath string // Path to the configuration file

	rootCmd = &cobra.Command{
		Use:   "crmlite",
		Short: "crmlite is a local customer relationship management tool",
		Long: `crmlite is a local, single-user customer relationship management tool
that records customers, tracks product and capital counters and renders
summary statistics and reports. All data lives in a local SQLite file.`,
		Args: cobra.OnlyValidArgs,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the configuration directory")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
