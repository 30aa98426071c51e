package main

import (
	"fmt"
	"slices"

	"github.com/spf13/pflag"

	"github.com/at-ishikawa/wordcraft/internal/config"
)

// EngineFlag selects a generation engine.
type EngineFlag string

// Set implements pflag.Value.
func (e *EngineFlag) Set(v string) error {
	if !slices.Contains(config.Providers, v) {
		return fmt.Errorf("invalid engine %q, valid values are %v", v, allEngines)
	}
	*e = EngineFlag(v)
	return nil
}

// String implements pflag.Value.
func (e *EngineFlag) String() string {
	if e == nil {
		return ""
	}
	return string(*e)
}

// Type implements pflag.Value.
func (e *EngineFlag) Type() string {
	return "EngineFlag"
}

var (
	_          pflag.Value = (*EngineFlag)(nil)
	allEngines             = config.Providers
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}
	if engineFlag != "" {
		cfg.Engine.Provider = string(engineFlag)
	}
	return cfg, nil
}
