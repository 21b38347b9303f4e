// Package yaml provides the default YAML Mapper for the loader package.
//
// This package uses github.com/goccy/go-yaml for decoding and encoding, and its
// native PathString support for navigating into a document. Colon-separated
// paths (e.g., "api:permissions") are converted to YAML path format
// (e.g., "$.api.permissions") internally.
//
// Usage:
//
//	mapper := yaml.New(yaml.WithIndent(4), yaml.WithStrict())
//	var tmpl Template
//	err := mapper.Decode(r, &tmpl)
//	err = mapper.DecodePath(r, "templates:receipt", &tmpl)
//
// Path Conversion:
//   - Empty path "" -> decode entire document
//   - Single key "key" -> "$.key"
//   - Nested path "api:permissions" -> "$.api.permissions"
//
// The encoder never writes YAML tags for Go type information; values are
// emitted as plain mappings, sequences and scalars.
//
// A string is written plain only when reading it back yields the same string.
// Otherwise it is double-quoted with Go escapes, so values like "\ttab",
// ".inf", "a\r\nb" or "\n" survive an Encode and Decode cycle unchanged.
//
// Decode and DecodePath return ErrEmptyData for input without a document body.
// Comment-only input and a bare "---" both count as empty.
package yaml
