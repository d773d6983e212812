package cmd

import (
	"github.com/spf13/cobra"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate documentation artifacts",
	Long: `Generate documentation for the Smart Bridge API.
Available subcommands include 'llms' and 'openapi'.`,
}

var generateBaseURL string

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.PersistentFlags().StringVar(&generateBaseURL, "base-url", "http://localhost:8000", "Base URL for the API endpoints")
}
