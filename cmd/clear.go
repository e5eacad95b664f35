package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/pagegen/internal/app"
)

func clearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all generated pages",
		Long:  `Removes every generated page unconditionally and flushes the page cache.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(app.Options{
				ConfigPath: cfgFile,
				Version:    Version,
			})
			if err != nil {
				return fmt.Errorf("initialize: %w", err)
			}
			defer a.Close()

			deleted, err := a.ClearPages(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear pages: %w", err)
			}

			fmt.Printf("deleted %d pages\n", deleted)
			return nil
		},
	}
}
