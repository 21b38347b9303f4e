// Package logging builds the structured loggers used across the module.
// It writes JSON (default) or text records through Go's log/slog and is
// supplied to the Fx container by the di package.
package logging
