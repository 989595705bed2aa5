package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "metachem",
	Short: "MetaChem runs artificial chemistry simulations",
	Long: `MetaChem builds a registered chemistry as a graph of containers and control
nodes, then walks it with the stochastic execution engine.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Run configuration file (.yaml, .json or .toml)")
	rootCmd.PersistentFlags().String("chemistry", "", "Registered chemistry to build (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
}
