// Package middleware holds the HTTP middleware the listener wraps around
// document handlers: request ids, access logging, panic recovery, a handler
// deadline and a request body limit.
//
// Every constructor returns a func(http.Handler) http.Handler so the chain can
// be composed in any order; the listener applies them outermost first as
// RequestID, Logging, Recovery, Timeout, MaxRequestSize.
package middleware
