package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smartbridge/smartbridge/core/config"
	"github.com/smartbridge/smartbridge/core/logger"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:           "validate",
	Short:         "Validate the Smart Bridge configuration",
	RunE:          validateConfig,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	addConfigFlags(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	log := logger.New("validate")

	cfg, err := loadConfig()
	if err != nil {
		return log.Errorf("validation failed: %w", err)
	}

	loadFrom := configFile
	if loadFrom == "" {
		loadFrom = config.DefaultPath
		if _, err := os.Stat(loadFrom); err != nil {
			loadFrom = "defaults"
		}
	}

	printValidationSummary(log, loadFrom, cfg)
	log.Successf("Configuration is valid: %s", loadFrom)
	return nil
}

func printValidationSummary(log *logger.Logger, loadFrom string, cfg *config.Config) {
	log.Info("Validation report:")
	log.Infof("  source: %s", loadFrom)
	log.Infof("  port: %d", cfg.Server.Port)
	log.Infof("  cors origins: %s", strings.Join(cfg.Server.CORSOrigins, ", "))

	if cfg.Database.DSN != "" {
		log.Info("  database: dsn")
	} else {
		seeded := ""
		if cfg.Database.SeedIfMissing {
			seeded = " (seeded when missing)"
		}
		log.Infof("  database: %s%s", cfg.Database.Path, seeded)
	}
	log.Infof("  upload dir: %s", cfg.Database.UploadDir)
	log.Infof("  query timeout: %s", cfg.Database.QueryTimeout)

	key := "missing"
	if cfg.LLM.APIKey != "" {
		key = "set"
	}
	log.Infof("  model: %s/%s (api key %s)", cfg.LLM.Provider, cfg.LLM.Model, key)

	if !cfg.RateLimit.Enabled {
		log.Info("  rate limit: off")
		return
	}
	backend := "local"
	if cfg.RateLimit.RedisURL != "" {
		backend = "redis"
	}
	log.Infof("  rate limit: %d per %s (%s)", cfg.RateLimit.Requests, cfg.RateLimit.Window, backend)
}
