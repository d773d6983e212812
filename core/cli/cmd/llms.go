package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/smartbridge/smartbridge/core/infrastructure/di"
	"github.com/smartbridge/smartbridge/core/infrastructure/transport/http/handlers"
	"github.com/smartbridge/smartbridge/core/logger"
)

var llmsOutput string

// llmsCmd represents the llms command
var llmsCmd = &cobra.Command{
	Use:   "llms",
	Short: "Generate llms.txt documentation file",
	Long: `Generate an llms.txt documentation file describing every endpoint
and the schema of the configured database.`,
	RunE:          generateLLMs,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	generateCmd.AddCommand(llmsCmd)

	addConfigFlags(llmsCmd)
	llmsCmd.Flags().StringVarP(&llmsOutput, "output", "o", "llms.txt", "Output path for the llms.txt file")
}

func generateLLMs(cmd *cobra.Command, args []string) error {
	log := logger.New("generate")

	return withContainer(cmd, func(ctx context.Context, c *di.Container) error {
		tables, dbName, err := c.QueryService.Schema(ctx)
		if err != nil {
			return err
		}

		doc := handlers.GenerateLLMDocumentation(generateBaseURL, dbName, tables)
		if err := os.WriteFile(llmsOutput, []byte(doc), 0644); err != nil {
			return log.Errorf("failed to write llms.txt: %w", err)
		}

		log.Successf("llms.txt generated: %s", llmsOutput)
		return nil
	})
}
