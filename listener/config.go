// Package listener provides an HTTP listener module for the Fx DI container.
package listener

import (
	"errors"
	"time"
)

// DefaultAddress is the default address for the HTTP listener.
const DefaultAddress = ":8080"

// DefaultMaxBodyBytes bounds request bodies, and therefore uploaded documents, to 1MB.
const DefaultMaxBodyBytes int64 = 1 << 20

// DefaultHandlerTimeout is the default deadline for a single request.
const DefaultHandlerTimeout = 30 * time.Second

// ErrEmptyAddress is returned when the address is empty.
var ErrEmptyAddress = errors.New("address must not be empty")

// ErrInvalidLimit is returned when a size or time limit is not positive.
var ErrInvalidLimit = errors.New("limit must be positive")

// ErrListenFailed is returned when the server fails to listen on the configured address.
var ErrListenFailed = errors.New("failed to listen")

// ErrShutdownFailed is returned when the server fails to shut down gracefully.
var ErrShutdownFailed = errors.New("shutdown failed")

// ErrEmptyName is returned when the listener name is empty.
var ErrEmptyName = errors.New("listener name must not be empty")

// ErrNilHandler is returned when a nil http.Handler is provided.
var ErrNilHandler = errors.New("handler must not be nil")

// Config holds the configuration for an HTTP listener.
type Config struct {
	Address        string        `json:"address"        yaml:"address"`
	MaxBodyBytes   int64         `json:"maxBodyBytes"   yaml:"maxBodyBytes"`
	HandlerTimeout time.Duration `json:"handlerTimeout" yaml:"handlerTimeout"`
}

// SetDefaults sets default values for the Config and reports whether anything changed.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.Address == "" {
		c.Address = DefaultAddress
		changed = true
	}

	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
		changed = true
	}

	if c.HandlerTimeout == 0 {
		c.HandlerTimeout = DefaultHandlerTimeout
		changed = true
	}

	return changed
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.Address == "" {
		return ErrEmptyAddress
	}

	if c.MaxBodyBytes < 0 || c.HandlerTimeout < 0 {
		return ErrInvalidLimit
	}

	return nil
}
