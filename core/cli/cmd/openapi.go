package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/smartbridge/smartbridge/core/infrastructure/transport/http/handlers"
	"github.com/smartbridge/smartbridge/core/logger"
)

var openapiOutput string

// openapiCmd writes the OpenAPI document served at /docs
var openapiCmd = &cobra.Command{
	Use:           "openapi",
	Short:         "Generate the OpenAPI 3 document",
	RunE:          generateOpenAPI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	generateCmd.AddCommand(openapiCmd)

	openapiCmd.Flags().StringVarP(&openapiOutput, "output", "o", "openapi.json", "Output path for the OpenAPI document")
}

func generateOpenAPI(cmd *cobra.Command, args []string) error {
	log := logger.New("generate")

	doc, err := handlers.GenerateOpenAPISpec(generateBaseURL)
	if err != nil {
		return log.Errorf("failed to generate OpenAPI document: %w", err)
	}
	if err := os.WriteFile(openapiOutput, doc, 0644); err != nil {
		return log.Errorf("failed to write OpenAPI document: %w", err)
	}

	log.Successf("OpenAPI document generated: %s", openapiOutput)
	return nil
}
