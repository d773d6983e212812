package internal

import (
	"strings"

	"github.com/smartbridge/smartbridge/core/config"
	"github.com/smartbridge/smartbridge/core/logger"
)

// Overrides are command-line values that win over file and environment.
type Overrides struct {
	Port     int
	Database string
	LogLevel int
	Verbose  bool
}

// LoadConfig loads the configuration at path and applies flag overrides.
// The merged result is validated again so flags cannot bypass checks.
func LoadConfig(path string, o Overrides) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if o.Port > 0 {
		cfg.Server.Port = o.Port
	}
	if o.Database != "" {
		ApplyDatabase(cfg, o.Database)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDatabase points cfg at target, which is either a connection URL or a
// SQLite file path.
func ApplyDatabase(cfg *config.Config, target string) {
	lower := strings.ToLower(target)
	for _, scheme := range []string{"postgres://", "postgresql://", "mysql://"} {
		if strings.HasPrefix(lower, scheme) {
			cfg.Database.DSN = target
			return
		}
	}
	cfg.Database.DSN = ""
	cfg.Database.Path = target
}

// ResolveLogLevel resolves the log level from verbose flag, CLI flag, config file, or default
func ResolveLogLevel(verbose bool, cliLogLevel int, cfg *config.Config) int {
	if verbose {
		return logger.LogLevelDebug
	}
	if cliLogLevel > 0 {
		return cliLogLevel
	}
	if cfg != nil {
		if level := logger.ParseLogLevel(cfg.Logging.Level); level > 0 {
			return level
		}
	}
	return logger.LogLevelInfo
}
