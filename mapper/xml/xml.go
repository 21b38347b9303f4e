// Package xml provides an XML Mapper for the loader package.
//
// Encoded documents need a single root element, so payload types should be
// structs (optionally with an XMLName field) rather than slices or maps.
package xml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// ContentType is the media type produced and accepted by the Mapper.
const ContentType = "application/xml"

// ErrEmptyData is returned when the input contains no XML element.
var ErrEmptyData = errors.New("empty data")

type config struct {
	prefix string
	indent string
	header bool
}

// Option configures a Mapper.
type Option func(*config)

// WithIndent pretty-prints encoded output like xml.MarshalIndent.
func WithIndent(prefix, indent string) Option {
	return func(cfg *config) {
		cfg.prefix = prefix
		cfg.indent = indent
	}
}

// WithHeader controls whether xml.Header is written before each document.
func WithHeader(enabled bool) Option {
	return func(cfg *config) {
		cfg.header = enabled
	}
}

// Mapper implements loader.Mapper for XML.
type Mapper struct {
	cfg config
}

// New creates an XML mapper. Output is indented with two spaces and starts with xml.Header.
func New(opts ...Option) *Mapper {
	cfg := config{prefix: "", indent: "  ", header: true}

	for _, apply := range opts {
		apply(&cfg)
	}

	return &Mapper{cfg: cfg}
}

// ContentType returns the media type for XML.
func (m *Mapper) ContentType() string {
	return ContentType
}

// Format returns the short format name.
func (m *Mapper) Format() string {
	return "xml"
}

// Decode reads the first XML element from r into target.
func (m *Mapper) Decode(r io.Reader, target any) error {
	err := xml.NewDecoder(r).Decode(target)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyData
		}

		return fmt.Errorf("decode error: %w", err)
	}

	return nil
}

// Encode writes value to w as an XML document followed by a newline.
func (m *Mapper) Encode(w io.Writer, value any) error {
	if m.cfg.header {
		_, err := io.WriteString(w, xml.Header)
		if err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent(m.cfg.prefix, m.cfg.indent)

	err := encoder.Encode(value)
	if err != nil {
		return fmt.Errorf("encode error: %w", err)
	}

	err = encoder.Close()
	if err != nil {
		return fmt.Errorf("encode error: %w", err)
	}

	_, err = io.WriteString(w, "\n")
	if err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}
