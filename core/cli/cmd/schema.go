package cmd

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartbridge/smartbridge/core/application/schema"
	"github.com/smartbridge/smartbridge/core/infrastructure/di"
)

var schemaJSON bool

// schemaCmd prints the introspected schema of the active database
var schemaCmd = &cobra.Command{
	Use:           "schema",
	Short:         "Print the schema of the configured database",
	Args:          cobra.NoArgs,
	RunE:          printSchema,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(schemaCmd)

	addConfigFlags(schemaCmd)
	schemaCmd.Flags().BoolVar(&schemaJSON, "json", false, "Print the schema as JSON")
}

func printSchema(cmd *cobra.Command, args []string) error {
	return withContainer(cmd, func(ctx context.Context, c *di.Container) error {
		tables, _, err := c.QueryService.Schema(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if schemaJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(tables)
		}
		_, err = fmt.Fprintln(out, schema.Render(tables))
		return err
	})
}
