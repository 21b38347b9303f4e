package middleware

import (
	"errors"
	"log/slog"
	"net/http"
)

// DefaultMaxRequestSize is used when MaxRequestSize is given a non-positive limit.
const DefaultMaxRequestSize int64 = 1 << 20

// MaxRequestSize caps request bodies with http.MaxBytesReader. A handler that
// reads past the limit gets an error for which IsBodyTooLarge reports true and
// should answer 413.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		slog.Warn("middleware: body limit must be positive, using default",
			"provided", limit, "default", DefaultMaxRequestSize)

		limit = DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)

				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

// IsBodyTooLarge reports whether err, or any error it wraps, was produced by
// a body that exceeded the MaxRequestSize limit.
func IsBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError

	return errors.As(err, &maxErr)
}
