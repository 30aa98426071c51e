package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordcraft/internal/bootstrap"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the number of cached combinations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			app := bootstrap.New()
			defer func() { _ = app.Close(context.Background()) }()
			cache, err := app.OpenCache(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}

			count, err := cache.Count(ctx)
			if err != nil {
				return fmt.Errorf("count combinations: %w", err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "cached combinations: %d\n", count)
			return err
		},
	}
}
