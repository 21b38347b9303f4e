package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// headerTracker records whether a response has been started.
type headerTracker struct {
	http.ResponseWriter

	started bool
}

func (w *headerTracker) WriteHeader(code int) {
	if code >= http.StatusOK {
		w.started = true
	}

	w.ResponseWriter.WriteHeader(code)
}

func (w *headerTracker) Write(b []byte) (int, error) {
	w.started = true

	return w.ResponseWriter.Write(b) //nolint:wrapcheck
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *headerTracker) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Recovery turns a panic in a downstream handler into a 500 response and an
// error log entry with the stack trace. When the response was already
// started only the log entry is written. http.ErrAbortHandler is re-raised.
func Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tracker := &headerTracker{ResponseWriter: w, started: false}

			defer func() {
				rec := recover()
				if rec == nil {
					return
				}

				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				attrs := []any{
					slog.String("panic", fmt.Sprint(rec)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Bool("response_started", tracker.started),
				}

				if id := GetRequestID(r.Context()); id != "" {
					attrs = append(attrs, slog.String("request_id", id))
				}

				slog.Error("panic recovered", attrs...) //nolint:gosec // constant message

				if !tracker.started {
					http.Error(tracker, "Internal Server Error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(tracker, r)
		})
	}
}
