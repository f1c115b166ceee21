package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcgo/roth-conversion-calculator/internal/config"
)

var settings *config.Settings

var rootCmd = &cobra.Command{
	Use:   "rothcalc",
	Short: "Roth conversion projection and scoring",
	Long:  "Builds a ladder of Roth conversion scenarios from a savings profile, simulates each through the distribution years, and scores the conversions against the untouched baseline.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.LoadSettings()
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		settings = s

		if err := config.InitLogger(settings.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
