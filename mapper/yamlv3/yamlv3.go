// Package yamlv3 provides a YAML Mapper backed by gopkg.in/yaml.v3.
//
// It is an alternative to the default goccy/go-yaml mapper for documents that
// rely on yaml.v3 behavior such as yaml.Node fields or custom
// yaml.v3 Unmarshaler implementations.
package yamlv3

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ContentType is the media type produced and accepted by the Mapper.
const ContentType = "application/yaml"

const defaultIndent = 2

// ErrEmptyData is returned when the input contains no YAML document.
var ErrEmptyData = errors.New("empty data")

type config struct {
	indent int
	strict bool
}

// Option configures a Mapper.
type Option func(*config)

// WithIndent sets the number of spaces per indentation level. Values below 1 are ignored.
func WithIndent(spaces int) Option {
	return func(cfg *config) {
		if spaces > 0 {
			cfg.indent = spaces
		}
	}
}

// WithStrict makes decoding fail on fields that do not exist in the target struct.
func WithStrict() Option {
	return func(cfg *config) {
		cfg.strict = true
	}
}

// Mapper implements loader.Mapper using yaml.v3 streaming encoder and decoder.
type Mapper struct {
	cfg config
}

// New creates a yaml.v3 mapper.
func New(opts ...Option) *Mapper {
	cfg := config{indent: defaultIndent, strict: false}

	for _, apply := range opts {
		apply(&cfg)
	}

	return &Mapper{cfg: cfg}
}

// ContentType returns the media type for YAML.
func (m *Mapper) ContentType() string {
	return ContentType
}

// Format returns the short format name.
func (m *Mapper) Format() string {
	return "yaml"
}

// Decode reads the first YAML document from r into target.
func (m *Mapper) Decode(r io.Reader, target any) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(m.cfg.strict)

	err := decoder.Decode(target)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyData
		}

		return fmt.Errorf("decode error: %w", err)
	}

	return nil
}

// Encode writes value to w as a single YAML document.
func (m *Mapper) Encode(w io.Writer, value any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(m.cfg.indent)

	err := encoder.Encode(value)
	if err != nil {
		_ = encoder.Close()

		return fmt.Errorf("encode error: %w", err)
	}

	err = encoder.Close()
	if err != nil {
		return fmt.Errorf("encode error: %w", err)
	}

	return nil
}
