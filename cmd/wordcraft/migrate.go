package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordcraft/internal/bootstrap"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the combination cache schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			app := bootstrap.New()
			defer func() { _ = app.Close(context.Background()) }()
			if _, err := app.OpenCache(cmd.Context(), cfg.Database); err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "word_cache is ready on %s\n", cfg.Database.Driver)
			return err
		},
	}
}
