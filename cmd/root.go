// Package cmd implements the command-line interface for pagegen.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	// cfgFile holds the path to the configuration file
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "pagegen",
		Short: "Programmatic SEO page-generation engine",
		Long: `pagegen generates one indexable landing page per active (city, service)
pair from the catalog, serves the generated pages, and exposes the
operator API.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"path to the configuration file",
	)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pagegen version %s\n", Version)
		},
	})

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(clearCmd())
}
