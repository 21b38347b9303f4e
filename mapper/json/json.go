// Package json provides a JSON Mapper for the loader package.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ContentType is the media type produced and accepted by the Mapper.
const ContentType = "application/json"

// ErrEmptyData is returned when the input contains no JSON value.
var ErrEmptyData = errors.New("empty data")

// ErrTrailingData is returned when anything but whitespace follows the JSON value.
var ErrTrailingData = errors.New("trailing data after JSON value")

type config struct {
	prefix    string
	indent    string
	strict    bool
	useNumber bool
}

// Option configures a Mapper.
type Option func(*config)

// WithIndent pretty-prints encoded output like json.MarshalIndent.
func WithIndent(prefix, indent string) Option {
	return func(cfg *config) {
		cfg.prefix = prefix
		cfg.indent = indent
	}
}

// WithStrict makes decoding fail on fields that do not exist in the target struct.
func WithStrict() Option {
	return func(cfg *config) {
		cfg.strict = true
	}
}

// WithUseNumber decodes numbers into json.Number when the target is an interface value.
func WithUseNumber() Option {
	return func(cfg *config) {
		cfg.useNumber = true
	}
}

// Mapper implements loader.Mapper for JSON.
type Mapper struct {
	cfg config
}

// New creates a JSON mapper. Output is indented with two spaces unless overridden.
func New(opts ...Option) *Mapper {
	cfg := config{prefix: "", indent: "  ", strict: false, useNumber: false}

	for _, apply := range opts {
		apply(&cfg)
	}

	return &Mapper{cfg: cfg}
}

// ContentType returns the media type for JSON.
func (m *Mapper) ContentType() string {
	return ContentType
}

// Format returns the short format name.
func (m *Mapper) Format() string {
	return "json"
}

// Decode reads one JSON value from r into target. Only whitespace may follow it.
func (m *Mapper) Decode(r io.Reader, target any) error {
	decoder := json.NewDecoder(r)

	if m.cfg.strict {
		decoder.DisallowUnknownFields()
	}

	if m.cfg.useNumber {
		decoder.UseNumber()
	}

	err := decoder.Decode(target)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyData
		}

		return fmt.Errorf("decode error: %w", err)
	}

	_, err = decoder.Token()
	if errors.Is(err, io.EOF) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrTrailingData, err)
	}

	return ErrTrailingData
}

// Encode writes value to w as JSON followed by a newline.
func (m *Mapper) Encode(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent(m.cfg.prefix, m.cfg.indent)

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("encode error: %w", err)
	}

	return nil
}
