package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/pagegen/internal/app"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Long: `Starts the page server: public page resolution, the operator API,
health and metrics endpoints, and the scheduled generation worker when a
schedule is configured.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(app.Options{
				ConfigPath: cfgFile,
				Version:    Version,
			})
			if err != nil {
				return fmt.Errorf("initialize: %w", err)
			}
			defer a.Close()

			return a.RunServer(cmd.Context())
		},
	}
}
