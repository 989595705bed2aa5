package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/metachem"
	httpadapter "github.com/aretw0/metachem/internal/adapters/http"
	"github.com/aretw0/metachem/internal/presentation/tui"
	"github.com/aretw0/metachem/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Build a chemistry and run it",
	Long: `Builds the configured chemistry, walks it until a Termination node or the
transition limit, and prints a report of the run and its output containers.
With --metrics-addr the inspection server keeps serving /metrics and /graph
until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := newLogger(cmd, cfg)
		quiet, _ := cmd.Flags().GetBool("quiet")

		sim, err := build(cfg, logger)
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		metrics, err := observability.NewMetrics(reg)
		if err != nil {
			return fmt.Errorf("metrics setup failed: %w", err)
		}

		opts := []metachem.Option{
			metachem.WithLogger(logger),
			metachem.WithLifecycleHooks(observability.Combine(metrics.Hooks(), observability.LoggingHooks(logger))),
		}
		if cfg.Seed != nil {
			opts = append(opts, metachem.WithSeed(*cfg.Seed))
		}
		engine := metachem.New(opts...)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		serveErr := make(chan error, 1)
		if cfg.MetricsAddr != "" {
			handler := httpadapter.NewHandler(httpadapter.Inspection{
				Chemistry: cfg.Chemistry,
				Version:   metachem.Version,
				Graph:     sim.Graph,
				Start:     sim.Start,
				Gatherer:  reg,
			})
			go func() { serveErr <- httpadapter.Serve(ctx, cfg.MetricsAddr, handler, logger) }()
		}

		if !quiet {
			tui.PrintBanner(cmd.OutOrStdout())
		}

		result, runErr := engine.Run(ctx, sim.Graph, sim.Start, cfg.TransitionLimit)
		if runErr != nil && result == nil {
			return runErr
		}
		if err := tui.Print(cmd.OutOrStdout(), tui.Report(cfg.Chemistry, result, sim.Outputs, runErr)); err != nil {
			return err
		}
		if runErr != nil {
			return runErr
		}

		if cfg.MetricsAddr == "" {
			return nil
		}
		logger.Info("run finished; serving inspection endpoints until interrupted", "addr", cfg.MetricsAddr)
		select {
		case <-ctx.Done():
			return <-serveErr
		case err := <-serveErr:
			return err
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int("limit", 0, "Transition limit (0 means run until a Termination node)")
	runCmd.Flags().Uint64("seed", 0, "Seed for a reproducible run")
	runCmd.Flags().String("start", "", "Start node (defaults to the chemistry's entry)")
	runCmd.Flags().String("metrics-addr", "", "Serve /metrics, /graph and /health on this address")
	runCmd.Flags().BoolP("quiet", "q", false, "Skip the banner")

	// Make 'run' the default if no command is provided
	rootCmd.RunE = runCmd.RunE
}
