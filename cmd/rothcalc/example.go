package main

import (
	"github.com/spf13/cobra"

	"github.com/rcgo/roth-conversion-calculator/internal/config"
)

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print an example input file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Print(config.ExampleInput())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exampleCmd)
}
