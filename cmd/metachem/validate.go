package main

import (
	"fmt"

	"github.com/aretw0/metachem/internal/logging"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the chemistry graph for consistency",
	Long: `Builds the configured chemistry, which rejects role and container mismatches,
then walks the control edges from the start node and reports unreachable nodes
or a missing Termination.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		sim, err := build(cfg, logging.NewNop())
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		out := cmd.OutOrStdout()
		warnings := sim.Graph.Check(sim.Start)
		for _, w := range warnings {
			fmt.Fprintln(out, w.String())
		}
		if len(warnings) > 0 {
			fmt.Fprintf(out, "Graph built with %d warning(s).\n", len(warnings))
			return nil
		}
		fmt.Fprintln(out, "Graph is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().String("start", "", "Start node to check from (defaults to the chemistry's entry)")
}
