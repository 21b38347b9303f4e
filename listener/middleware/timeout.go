package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout is used when Timeout is given a non-positive duration.
const DefaultTimeout = 30 * time.Second

const timeoutBody = "Service Unavailable: handler timed out"

// Timeout bounds handler execution with http.TimeoutHandler. A handler still
// running after d gets a cancelled context and the client receives 503.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	if d <= 0 {
		slog.Warn("middleware: timeout must be positive, using default",
			"provided", d, "default", DefaultTimeout)

		d = DefaultTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, timeoutBody)
	}
}
