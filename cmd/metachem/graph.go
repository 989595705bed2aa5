package main

import (
	"fmt"

	"github.com/aretw0/metachem/internal/logging"
	"github.com/aretw0/metachem/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the chemistry graph visualization",
	Long:  `Builds the configured chemistry and outputs a Mermaid diagram (graph TD) of its control flow.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		sim, err := build(cfg, logging.NewNop())
		if err != nil {
			return err
		}

		withContainers, _ := cmd.Flags().GetBool("containers")
		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(sim.Graph, graph.Options{Containers: withContainers}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("containers", false, "Draw containers and access edges")
}
