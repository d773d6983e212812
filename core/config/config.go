package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/smartbridge/smartbridge/core/logger"
)

var log = logger.New("config")

// DefaultPath is the config file looked up when none is given explicitly.
const DefaultPath = "smartbridge.yaml"

// EnvPrefix prefixes every environment override, e.g. SMARTBRIDGE_SERVER_PORT.
const EnvPrefix = "SMARTBRIDGE_"

// Config is the full service configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"     envPrefix:"SERVER_"`
	Database  DatabaseConfig  `yaml:"database"   envPrefix:"DATABASE_"`
	LLM       LLMConfig       `yaml:"llm"        envPrefix:"LLM_"`
	RateLimit RateLimitConfig `yaml:"rate_limit" envPrefix:"RATE_LIMIT_"`
	Logging   LoggingConfig   `yaml:"logging"    envPrefix:"LOGGING_"`
}

type ServerConfig struct {
	Port           int           `yaml:"port"            env:"PORT"            validate:"min=1,max=65535"`
	CORSOrigins    []string      `yaml:"cors_origins"    env:"CORS_ORIGINS"    validate:"dive,required"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"REQUEST_TIMEOUT" validate:"gt=0"`
}

type DatabaseConfig struct {
	// Path is the SQLite file served at startup. DSN wins when set.
	Path          string        `yaml:"path"            env:"PATH"            validate:"required_without=DSN"`
	DSN           string        `yaml:"dsn"             env:"DSN"             validate:"omitempty,url"`
	UploadDir     string        `yaml:"upload_dir"      env:"UPLOAD_DIR"      validate:"required"`
	QueryTimeout  time.Duration `yaml:"query_timeout"   env:"QUERY_TIMEOUT"   validate:"gt=0"`
	SeedIfMissing bool          `yaml:"seed_if_missing" env:"SEED_IF_MISSING"`
}

type LLMConfig struct {
	Provider    string        `yaml:"provider"    env:"PROVIDER"    validate:"oneof=gemini openai"`
	APIKey      string        `yaml:"api_key"     env:"API_KEY"`
	Model       string        `yaml:"model"       env:"MODEL"       validate:"required"`
	BaseURL     string        `yaml:"base_url"    env:"BASE_URL"    validate:"omitempty,url"`
	Timeout     time.Duration `yaml:"timeout"     env:"TIMEOUT"     validate:"gt=0"`
	Temperature float64       `yaml:"temperature" env:"TEMPERATURE" validate:"gte=0,lte=2"`
}

type RateLimitConfig struct {
	Enabled  bool          `yaml:"enabled"   env:"ENABLED"`
	Requests int           `yaml:"requests"  env:"REQUESTS"  validate:"min=1"`
	Window   time.Duration `yaml:"window"    env:"WINDOW"    validate:"gt=0"`
	RedisURL string        `yaml:"redis_url" env:"REDIS_URL" validate:"omitempty,url"`
}

type LoggingConfig struct {
	Level string `yaml:"level" env:"LEVEL" validate:"oneof=error warn info debug"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8000,
			CORSOrigins:    []string{"*"},
			RequestTimeout: 60 * time.Second,
		},
		Database: DatabaseConfig{
			Path:          "data/sample.db",
			UploadDir:     "data",
			QueryTimeout:  30 * time.Second,
			SeedIfMissing: true,
		},
		LLM: LLMConfig{
			Provider: "gemini",
			Model:    "gemini-2.5-flash",
			Timeout:  60 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Requests: 30,
			Window:   time.Minute,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load builds the configuration from defaults, the optional YAML file at path
// and the environment, then validates it. An empty path falls back to
// DefaultPath when that file exists.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		log.Debugf("Loading config file %s", path)
		if err := Parse(cfg, data); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		log.Debugf("No config file, using defaults")
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse merges YAML content into cfg after resolving {{ env.NAME }} placeholders.
func Parse(cfg *Config, data []byte) error {
	content, err := substituteEnvVars(string(data))
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
		return fmt.Errorf("failed to unmarshal YAML: %w", err)
	}
	return nil
}

// ApplyEnv overlays SMARTBRIDGE_* variables and the provider's conventional
// API key variable onto cfg.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to parse environment variables: %w", err)
	}

	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	cfg.Logging.Level = strings.ToLower(strings.TrimSpace(cfg.Logging.Level))

	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv(ProviderKeyVar(cfg.LLM.Provider))
	}
	return nil
}

// ProviderKeyVar names the conventional API key variable for a provider.
func ProviderKeyVar(provider string) string {
	if provider == "openai" {
		return "OPENAI_API_KEY"
	}
	return "GEMINI_API_KEY"
}
