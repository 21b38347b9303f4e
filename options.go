package loader

import (
	"log/slog"

	yamlmapper "github.com/0xalexb/hjarta-loader/mapper/yaml"
)

type options struct {
	logger *slog.Logger
	yaml   []yamlmapper.Option
}

// Option configures a Loader.
type Option func(*options)

// WithLogger makes the Loader emit debug records for every decode and encode.
// A nil logger keeps the default, which discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

// WithYAML configures the mapper built by NewYAML. New ignores it.
func WithYAML(opts ...yamlmapper.Option) Option {
	return func(o *options) {
		o.yaml = append(o.yaml, opts...)
	}
}
