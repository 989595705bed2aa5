package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/aretw0/metachem/internal/config"
	"github.com/aretw0/metachem/internal/logging"
	"github.com/aretw0/metachem/pkg/chemistry/stringcat"
	"github.com/aretw0/metachem/pkg/registry"
	"github.com/spf13/cobra"
)

// loadConfig reads --config when given and applies the flag overrides.
func loadConfig(cmd *cobra.Command) (*config.RunConfig, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("chemistry") {
		cfg.Chemistry, _ = flags.GetString("chemistry")
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}
	if flags.Lookup("limit") != nil && flags.Changed("limit") {
		cfg.TransitionLimit, _ = flags.GetInt("limit")
	}
	if flags.Lookup("seed") != nil && flags.Changed("seed") {
		seed, _ := flags.GetUint64("seed")
		cfg.Seed = &seed
	}
	if flags.Lookup("start") != nil && flags.Changed("start") {
		cfg.Start, _ = flags.GetString("start")
	}
	if flags.Lookup("metrics-addr") != nil && flags.Changed("metrics-addr") {
		cfg.MetricsAddr, _ = flags.GetString("metrics-addr")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config invalid: %w", err)
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg *config.RunConfig) *slog.Logger {
	// Both were checked by Validate.
	level, _ := logging.ParseLevel(cfg.Log.Level)
	format, _ := logging.ParseFormat(cfg.Log.Format)
	return logging.New(level, format, cmd.ErrOrStderr())
}

func newRegistry(logger *slog.Logger) *registry.Registry {
	r := registry.NewRegistry()
	stringcat.Register(r, logger)
	return r
}

// chemistryRand derives the chemistry's random source from the run seed so
// it never shares a stream with the engine. Nil lets the registry pick one.
func chemistryRand(cfg *config.RunConfig) *rand.Rand {
	if cfg.Seed == nil {
		return nil
	}
	return rand.New(rand.NewPCG(*cfg.Seed+1, *cfg.Seed^0x5851f42d4c957f2d))
}

// build resolves the configured chemistry into a runnable simulation.
func build(cfg *config.RunConfig, logger *slog.Logger) (*registry.Simulation, error) {
	sim, err := newRegistry(logger).Build(cfg.Chemistry, cfg.Params, chemistryRand(cfg))
	if err != nil {
		return nil, err
	}
	if cfg.Start != "" {
		sim.Start = cfg.Start
	}
	return sim, nil
}
