package loader

import yamlmapper "github.com/0xalexb/hjarta-loader/mapper/yaml"

// NewYAML creates a Loader for T backed by the goccy/go-yaml mapper.
// Mapper settings are passed with WithYAML; other options apply as in New.
func NewYAML[T any](opts ...Option) *Loader[T] {
	var options options

	for _, apply := range opts {
		apply(&options)
	}

	// New only fails for a nil mapper.
	l, _ := New[T](yamlmapper.New(options.yaml...), opts...)

	return l
}
