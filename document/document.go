package document

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	loader "github.com/0xalexb/hjarta-loader"
	"github.com/0xalexb/hjarta-loader/source/file"
)

// DefaultFileMode is the permission used by Save for new documents.
const DefaultFileMode os.FileMode = 0o644

// Fetcher defines an interface for reading raw document data.
type Fetcher interface {
	Fetch() ([]byte, error)
}

// Validator defines an interface for validating decoded documents.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in decoded documents.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that fetches, loads, sets defaults, and validates a document.
// The returned function is Fx-friendly: its parameters are resolved from the container.
func Provider[T any](path string) func(*loader.Loader[T], Fetcher) (T, error) {
	return func(l *loader.Loader[T], fetcher Fetcher) (T, error) {
		var zero T

		data, err := fetcher.Fetch()
		if err != nil {
			return zero, fmt.Errorf("reading data error: %w", err)
		}

		value, err := l.LoadPath(bytes.NewReader(data), path)
		if err != nil {
			return zero, fmt.Errorf("loading error: %w", err)
		}

		return prepare(value, path)
	}
}

// Prepare applies defaults and validation to an already decoded value.
func Prepare[T any](value T) (T, error) {
	return prepare(value, "")
}

// Save encodes value with l and atomically writes it to fpath.
func Save[T any](l *loader.Loader[T], value T, fpath string) error {
	text, err := l.WriteString(value)
	if err != nil {
		return fmt.Errorf("encoding error: %w", err)
	}

	err = file.WriteFile(fpath, []byte(text), DefaultFileMode)
	if err != nil {
		return fmt.Errorf("saving error: %w", err)
	}

	return nil
}

func prepare[T any](value T, path string) (T, error) {
	var zero T

	targetDefaulter, isDefaulter := hook[T, Defaulter](&value)
	if isDefaulter {
		changed := targetDefaulter.SetDefaults()
		if changed {
			slog.Info("defaults applied", slog.String("path", path), slog.String("type", fmt.Sprintf("%T", value)))
		}
	}

	targetValidatable, isValidatable := hook[T, Validator](&value)
	if isValidatable {
		err := targetValidatable.Validate()
		if err != nil {
			return zero, fmt.Errorf("validating error: %w", err)
		}
	}

	return value, nil
}

// hook finds H on the value itself (pointer payloads, value receivers) or on
// its address (pointer receivers).
func hook[T, H any](value *T) (H, bool) {
	h, ok := any(*value).(H)
	if ok {
		return h, true
	}

	h, ok = any(value).(H)

	return h, ok
}
