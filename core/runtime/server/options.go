package server

import "github.com/smartbridge/smartbridge/core/infrastructure/transport/http/middleware"

type RuntimeOption func(*Runtime)

// WithVersion sets the version reported to the telemetry resource.
func WithVersion(version string) RuntimeOption {
	return func(r *Runtime) {
		r.version = version
	}
}

// WithRateLimiter overrides the limiter chosen from configuration.
func WithRateLimiter(limiter middleware.RateLimiter) RuntimeOption {
	return func(r *Runtime) {
		r.limiter = limiter
	}
}
