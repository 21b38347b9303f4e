package di

import (
	"errors"
	"log/slog"

	loader "github.com/0xalexb/hjarta-loader"
	"github.com/0xalexb/hjarta-loader/document"
	"github.com/0xalexb/hjarta-loader/source/file"

	"go.uber.org/fx"
)

// ErrEmptyDocumentName is returned when a document module is registered without a name.
var ErrEmptyDocumentName = errors.New("document name must not be empty")

type documentOptions[T any] struct {
	path     string
	onReload func(T)
}

// DocumentOption configures a DocumentModule.
type DocumentOption[T any] func(*documentOptions[T])

// WithDocumentPath selects a section of the file using a colon-separated path.
func WithDocumentPath[T any](path string) DocumentOption[T] {
	return func(opts *documentOptions[T]) {
		opts.path = path
	}
}

// WithReload watches the file for changes for the lifetime of the app and calls
// onReload with every new document that loads and validates successfully.
// Documents that fail to load are logged and skipped; the last good value stays current.
func WithReload[T any](onReload func(T)) DocumentOption[T] {
	return func(opts *documentOptions[T]) {
		opts.onReload = onReload
	}
}

// DocumentModule creates an Fx module that provides *loader.Loader[T] and the
// document of type T read from filePath with the given mapper.
// The loader logs through the container's *slog.Logger.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func DocumentModule[T any](name, filePath string, mapper loader.Mapper, opts ...DocumentOption[T]) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyDocumentName)
	}

	var options documentOptions[T]

	for _, apply := range opts {
		apply(&options)
	}

	provideLoader := func(logger *slog.Logger) (*loader.Loader[T], error) {
		return loader.New[T](mapper, loader.WithLogger(logger))
	}

	if options.onReload == nil {
		return fx.Module(name,
			fx.Provide(provideLoader),
			fx.Provide(func(l *loader.Loader[T]) (T, error) {
				fetcher, err := file.NewFetcher(filePath)()
				if err != nil {
					var zero T

					return zero, err
				}

				return document.Provider[T](options.path)(l, fetcher)
			}),
		)
	}

	return fx.Module(name,
		fx.Provide(provideLoader),
		fx.Provide(func(lifecycle fx.Lifecycle, l *loader.Loader[T]) (T, error) {
			var zero T

			provide := document.Provider[T](options.path)

			watcher, err := file.NewWatcher(filePath, func(data []byte) {
				value, loadErr := provide(l, staticData(data))
				if loadErr != nil {
					slog.Error("document reload failed", "name", name, "path", filePath, "error", loadErr)

					return
				}

				slog.Info("document reloaded", "name", name, "path", filePath)
				options.onReload(value)
			})
			if err != nil {
				return zero, err
			}

			value, err := provide(l, watcher)
			if err != nil {
				return zero, err
			}

			lifecycle.Append(fx.Hook{
				OnStart: watcher.Start,
				OnStop:  watcher.Stop,
			})

			return value, nil
		}),
	)
}

type staticData []byte

func (d staticData) Fetch() ([]byte, error) {
	return d, nil
}
