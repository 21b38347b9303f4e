package loader

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
)

// ErrNilMapper is returned when a Loader is constructed without a Mapper.
var ErrNilMapper = errors.New("mapper must not be nil")

// ErrPathUnsupported is returned by LoadPath when the mapper cannot navigate paths.
var ErrPathUnsupported = errors.New("mapper does not support path navigation")

// Mapper converts between serialized text and typed values.
type Mapper interface {
	Decode(r io.Reader, target any) error
	Encode(w io.Writer, value any) error
}

// PathDecoder is implemented by mappers that can decode a sub-tree of a document.
//
// The path uses colon (:) as separator for nested keys, e.g. "api:permissions".
// An empty path decodes the entire document.
type PathDecoder interface {
	DecodePath(r io.Reader, path string, target any) error
}

// Loader decodes and encodes documents of type T with a fixed Mapper.
type Loader[T any] struct {
	mapper   Mapper
	logger   *slog.Logger
	typeName string
	pointee  reflect.Type
}

// New creates a Loader for T backed by the given mapper.
func New[T any](mapper Mapper, opts ...Option) (*Loader[T], error) {
	if mapper == nil {
		return nil, ErrNilMapper
	}

	options := options{logger: nil, yaml: nil}

	for _, apply := range opts {
		apply(&options)
	}

	logger := options.logger
	if logger == nil {
		logger = discardLogger()
	}

	return &Loader[T]{
		mapper:   mapper,
		logger:   logger,
		typeName: typeName[T](),
		pointee:  pointee[T](),
	}, nil
}

// Mapper returns the mapper the loader delegates to.
func (l *Loader[T]) Mapper() Mapper {
	return l.mapper
}

// Load decodes a single document from r into a new T.
func (l *Loader[T]) Load(r io.Reader) (T, error) {
	value, target := l.newTarget()

	err := l.mapper.Decode(r, target)
	if err != nil {
		var zero T

		return zero, err //nolint:wrapcheck // mapper errors are part of the contract
	}

	l.logger.Debug("loader: decoded", slog.String("type", l.typeName))

	return *value, nil
}

// LoadString decodes a document held in a string.
func (l *Loader[T]) LoadString(data string) (T, error) {
	return l.Load(strings.NewReader(data))
}

// LoadBytes decodes a document held in a byte slice.
func (l *Loader[T]) LoadBytes(data []byte) (T, error) {
	return l.Load(bytes.NewReader(data))
}

// LoadPath decodes the sub-tree at path into a new T.
// An empty path behaves like Load.
func (l *Loader[T]) LoadPath(r io.Reader, path string) (T, error) {
	if path == "" {
		return l.Load(r)
	}

	pathDecoder, ok := l.mapper.(PathDecoder)
	if !ok {
		var zero T

		return zero, ErrPathUnsupported
	}

	value, target := l.newTarget()

	err := pathDecoder.DecodePath(r, path, target)
	if err != nil {
		var zero T

		return zero, err //nolint:wrapcheck // mapper errors are part of the contract
	}

	l.logger.Debug("loader: decoded", slog.String("type", l.typeName), slog.String("path", path))

	return *value, nil
}

// Write encodes value to w.
func (l *Loader[T]) Write(value T, w io.Writer) error {
	err := l.mapper.Encode(w, value)
	if err != nil {
		return err //nolint:wrapcheck // mapper errors are part of the contract
	}

	l.logger.Debug("loader: encoded", slog.String("type", l.typeName))

	return nil
}

// WriteString encodes value and returns the serialized text.
func (l *Loader[T]) WriteString(value T) (string, error) {
	var buf strings.Builder

	err := l.Write(value, &buf)
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

// newTarget returns the value to hand back and the decode target for it.
// Pointer payloads get a freshly allocated pointee so mappers that leave nil
// pointers untouched still fill the result.
func (l *Loader[T]) newTarget() (*T, any) {
	value := new(T)

	if l.pointee == nil {
		return value, value
	}

	allocated := reflect.New(l.pointee)
	reflect.ValueOf(value).Elem().Set(allocated)

	return value, allocated.Interface()
}

func pointee[T any]() reflect.Type {
	t := reflect.TypeFor[T]()
	if t.Kind() != reflect.Pointer {
		return nil
	}

	return t.Elem()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
