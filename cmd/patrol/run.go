package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/patrol-dev/patrol/internal/config"
	"github.com/patrol-dev/patrol/internal/llm"
	"github.com/patrol-dev/patrol/internal/logging"
	"github.com/patrol-dev/patrol/internal/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one pipeline pass and print the report",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Resolve(cfgFile)
		if err != nil {
			return err
		}

		apiKey, err := config.APIKeyFromEnv()
		if err != nil {
			return err
		}

		logger := logging.New(logging.ParseLevel(cfg.LogLevel))
		client := llm.NewHTTPClient(cfg.LLM.BaseURL, apiKey)

		p := pipeline.New(cfg, client, logger)
		res := p.Run(context.Background())
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "✗ run failed in %s stage: %v\n", res.ErrStage, res.Err)
			os.Exit(1)
		}

		fmt.Print(res.Report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
