package main

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordcraft/internal/bootstrap"
	"github.com/at-ishikawa/wordcraft/internal/combination"
)

func newCombineCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "combine <first> <second>",
		Short: "Combine two words into a new element",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			app := bootstrap.New()
			defer func() { _ = app.Close(context.Background()) }()
			combiner, err := app.NewCombiner(ctx, cfg)
			if err != nil {
				return fmt.Errorf("create combiner: %w", err)
			}

			result, err := combiner.Combine(ctx, args[0], args[1])
			if err != nil {
				return fmt.Errorf("combine %s and %s: %w", args[0], args[1], err)
			}
			return printResult(cmd.OutOrStdout(), args[0], args[1], result)
		},
	}
}

func printResult(w io.Writer, first, second string, result combination.Result) error {
	label := fmt.Sprintf("%s + %s", first, second)
	if result.Rejected() {
		_, err := fmt.Fprintf(w, "%s = %s\n", label, color.YellowString("no new element"))
		return err
	}

	line := fmt.Sprintf("%s = %s %s", label, result.Symbol, color.New(color.Bold).Sprint(result.Word))
	if result.IsNovel {
		line += " " + color.GreenString("(new)")
	}
	_, err := fmt.Fprintln(w, line)
	return err
}
