package main

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "patrol",
	Short: "Log-analysis alert pipeline",
	Long: "Patrol runs one pass of a sequential pipeline: collect logs, analyze them " +
		"with an LLM, decide whether an alert is needed, and print a report. " +
		"No daemon, no database — just YAML config and a process.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
}
