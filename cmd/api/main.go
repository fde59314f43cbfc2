package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/campusboard/core/cmd/api/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "campusboard",
		Short: "CampusBoard API Server",
		Long:  `CampusBoard is a student academic dashboard backend: calendar merging, club meeting schedules, exam lookups and notification preferences.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewExamCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
