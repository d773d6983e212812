package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartbridge/smartbridge/core/config"
	"github.com/smartbridge/smartbridge/core/logger"
	"github.com/smartbridge/smartbridge/core/seed"
)

var seedValue uint64

// seedCmd (re)creates the sample e-commerce database
var seedCmd = &cobra.Command{
	Use:           "seed [path]",
	Short:         "Create the sample e-commerce SQLite database",
	Args:          cobra.MaximumNArgs(1),
	RunE:          runSeed,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().Uint64Var(&seedValue, "seed", seed.DefaultOptions().Seed, "Random seed for generated rows")
}

func runSeed(cmd *cobra.Command, args []string) error {
	log := logger.New("seed")

	path := config.Default().Database.Path
	if len(args) == 1 {
		path = args[0]
	}

	opts := seed.DefaultOptions()
	opts.Seed = seedValue
	if err := seed.Create(cmd.Context(), path, opts); err != nil {
		return log.Errorf("failed to create sample database: %w", err)
	}

	log.Successf("Sample database created: %s", path)
	fmt.Fprintf(cmd.OutOrStdout(), "%d customers, %d orders, %d reviews\n", seed.CustomerCount, seed.OrderCount, seed.ReviewCount)
	return nil
}
