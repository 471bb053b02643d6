// Command ascendo qualifies conference leads against an ideal customer
// profile using a multi-agent scoring pipeline.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anjy7/ascendo/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "ascendo",
	Short: "Conference lead qualification pipeline",
	Long: `ascendo scrapes conference speaker and attendee lists, enriches the
companies behind them, and scores each against an ideal customer profile.
Scoring runs through a validator/quality-reviewer agent pair that can dispute
and revise each other's verdicts before anything is exported.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		return config.InitLogger(cfg.Log)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
