package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/metachem"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of metachem",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "metachem version %s\n", strings.TrimSpace(metachem.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
