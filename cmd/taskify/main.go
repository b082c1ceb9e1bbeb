// Package main implements the taskify CLI tool.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "taskify",
	Short:         "Taskify - recurrence-aware task manager",
	SilenceUsage:  true,
	SilenceErrors: false,
}
