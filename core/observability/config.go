package observability

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Enabled           bool
	TracesEnabled     bool
	MetricsEnabled    bool
	ServiceName       string
	ServiceVersion    string
	Environment       string
	OTLPEndpoint      string
	TraceSamplingRate float64
}

// ResolveConfig reads the SMARTBRIDGE_OTEL_* variables. Export stays off
// unless SMARTBRIDGE_OTEL_ENABLED is set.
func ResolveConfig(serviceVersion string) Config {
	cfg := Config{
		Enabled:           false,
		TracesEnabled:     true,
		MetricsEnabled:    true,
		ServiceName:       "smartbridge",
		ServiceVersion:    "dev",
		Environment:       "development",
		OTLPEndpoint:      "localhost:4317",
		TraceSamplingRate: 1.0,
	}
	if serviceVersion != "" {
		cfg.ServiceVersion = serviceVersion
	}

	overrideBool("SMARTBRIDGE_OTEL_ENABLED", &cfg.Enabled)
	overrideBool("SMARTBRIDGE_OTEL_TRACES_ENABLED", &cfg.TracesEnabled)
	overrideBool("SMARTBRIDGE_OTEL_METRICS_ENABLED", &cfg.MetricsEnabled)
	overrideString("SMARTBRIDGE_OTEL_SERVICE_NAME", &cfg.ServiceName)
	overrideString("SMARTBRIDGE_OTEL_ENVIRONMENT", &cfg.Environment)
	overrideString("SMARTBRIDGE_OTEL_ENDPOINT", &cfg.OTLPEndpoint)
	overrideFloat("SMARTBRIDGE_OTEL_TRACE_SAMPLING_RATIO", &cfg.TraceSamplingRate)

	cfg.TraceSamplingRate = min(max(cfg.TraceSamplingRate, 0), 1)
	cfg.Environment = strings.ToLower(cfg.Environment)

	return cfg
}

func overrideString(name string, target *string) {
	if value := os.Getenv(name); value != "" {
		*target = value
	}
}

func overrideBool(name string, target *bool) {
	value := os.Getenv(name)
	if value == "" {
		return
	}
	parsed, err := strconv.ParseBool(value)
	if err == nil {
		*target = parsed
	}
}

func overrideFloat(name string, target *float64) {
	value := os.Getenv(name)
	if value == "" {
		return
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err == nil {
		*target = parsed
	}
}
