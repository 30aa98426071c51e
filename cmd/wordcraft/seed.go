package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordcraft/internal/bootstrap"
	"github.com/at-ishikawa/wordcraft/internal/combination"
)

func newSeedCommand() *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Combine the classic elements water, fire, earth and air",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if concurrency <= 0 {
				concurrency = cfg.Combination.SeedConcurrency
			}

			app := bootstrap.New()
			defer func() { _ = app.Close(context.Background()) }()
			combiner, err := app.NewCombiner(ctx, cfg)
			if err != nil {
				return fmt.Errorf("create combiner: %w", err)
			}

			results, err := combiner.CombineAll(ctx, combination.ClassicPairs, concurrency)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					if _, err := fmt.Fprintf(out, "%s + %s: %s\n", r.Pair.First, r.Pair.Second, color.RedString(r.Err.Error())); err != nil {
						return err
					}
					continue
				}
				if err := printResult(out, r.Pair.First, r.Pair.Second, r.Result); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d classic pairs failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Number of pairs combined at the same time. Defaults to combination.seed_concurrency")
	return cmd
}
