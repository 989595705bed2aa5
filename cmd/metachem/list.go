package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/aretw0/metachem/internal/logging"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered chemistries",
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, c := range newRegistry(logging.NewNop()).List() {
			fmt.Fprintf(tw, "%s\t%s\n", c.Name, c.Description)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
