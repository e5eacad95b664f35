package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/pagegen/internal/app"
)

func generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Run one full generation pass",
		Long: `Enumerates every active city and service, generates pages for pairs
that do not have one yet, and reports the aggregate counts. Re-running
over an unchanged catalog generates nothing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(app.Options{
				ConfigPath: cfgFile,
				Version:    Version,
			})
			if err != nil {
				return fmt.Errorf("initialize: %w", err)
			}
			defer a.Close()

			report, err := a.RunGeneration(cmd.Context())
			if err != nil {
				return fmt.Errorf("generation pass: %w", err)
			}

			fmt.Printf("generated %d, skipped %d, failed %d (%d cities x %d services)\n",
				report.Generated, report.Skipped, report.Failed,
				report.Cities, report.Services,
			)

			if report.Failed > 0 {
				return fmt.Errorf("%d pairs failed", report.Failed)
			}
			return nil
		},
	}
}
