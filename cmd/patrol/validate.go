package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/patrol-dev/patrol/internal/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the patrol configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve(cfgFile)
		if err != nil {
			return err
		}

		fmt.Printf("✓ Configuration OK\n")
		fmt.Printf("  Source:  %s\n", cfg.Source.Path)
		fmt.Printf("  Model:   %s\n", cfg.LLM.Model)
		fmt.Printf("  LLM URL: %s\n", cfg.LLM.BaseURL)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
