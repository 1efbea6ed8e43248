package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stagehand",
	Short: "Stagehand dispatches run lifecycle notifications to registered listeners",
	Long: `Stagehand drives begin/end notifications for concurrent runs through
per-worker sequences of callbacks and owned actors, with optional Prometheus
metrics and Redis-backed run statistics.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the job configuration file (YAML)")
}
