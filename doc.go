// Package loader binds a serialization Mapper to an explicit payload type.
//
// A Loader[T] decodes documents from streams, strings or byte slices into a
// fresh T and encodes T values back to a stream. The payload type is fixed by
// the type parameter at construction time; the mapper is configured once and
// shared by every call.
//
// Errors returned by the mapper are passed through unchanged, so callers can
// match library errors directly with errors.Is or errors.As.
//
// Usage:
//
//	tmpl, err := loader.NewYAML[Template]().LoadString(data)
//
//	l, err := loader.New[Template](jsonmapper.New())
//	err = l.Write(tmpl, os.Stdout)
//
// Mapper implementations live under mapper/: goccy/go-yaml (default),
// gopkg.in/yaml.v3, encoding/json and encoding/xml.
package loader
