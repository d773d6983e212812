package runtime

import (
	"github.com/smartbridge/smartbridge/core/runtime/server"
)

// Runtime represents the Smart Bridge server
// This is the main entry point for the runtime package
type Runtime = server.Runtime

// NewRuntime creates a new runtime instance
var NewRuntime = server.NewRuntime

var (
	WithVersion     = server.WithVersion
	WithRateLimiter = server.WithRateLimiter
)
