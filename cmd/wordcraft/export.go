package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/wordcraft/internal/bootstrap"
	"github.com/at-ishikawa/wordcraft/internal/paircache"
)

type exportDocument struct {
	Combinations []paircache.Entry `yaml:"combinations"`
}

func newExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export cached combinations as YAML",
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

			entries, err := cache.FindAll(ctx)
			if err != nil {
				return fmt.Errorf("find all combinations: %w", err)
			}

			if output == "" {
				return writeExport(cmd.OutOrStdout(), entries)
			}
			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("os.Create(%s) > %w", output, err)
			}
			if err := writeExport(file, entries); err != nil {
				_ = file.Close()
				return err
			}
			return file.Close()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file. Defaults to stdout")
	return cmd
}

func writeExport(w io.Writer, entries []paircache.Entry) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(exportDocument{Combinations: entries}); err != nil {
		return fmt.Errorf("encoder.Encode > %w", err)
	}
	return encoder.Close()
}
