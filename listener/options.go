package listener

import "time"

// Option defines a function type for configuring an HTTP listener.
type Option func(*Config)

// WithAddress sets the address for the HTTP listener.
func WithAddress(addr string) Option {
	return func(cfg *Config) {
		cfg.Address = addr
	}
}

// WithMaxBodyBytes limits the size of request bodies.
func WithMaxBodyBytes(limit int64) Option {
	return func(cfg *Config) {
		cfg.MaxBodyBytes = limit
	}
}

// WithHandlerTimeout sets the per-request processing deadline.
func WithHandlerTimeout(timeout time.Duration) Option {
	return func(cfg *Config) {
		cfg.HandlerTimeout = timeout
	}
}
