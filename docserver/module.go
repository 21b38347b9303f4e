package docserver

import (
	"errors"
	"log/slog"
	"net/http"

	"go.uber.org/fx"
)

// ErrEmptyName is returned when Module is called without a name.
var ErrEmptyName = errors.New("docserver name must not be empty")

// Module creates an Fx module serving the T found in the container.
// It provides *Handler[T] and an http.Handler tagged with name, ready to be
// picked up by a listener module of the same name.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Module[T any](name string, opts ...Option[T]) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	return fx.Module("docserver."+name,
		fx.Provide(func(initial T, logger *slog.Logger) (*Handler[T], error) {
			return NewHandler(initial, append([]Option[T]{WithLogger[T](logger)}, opts...)...)
		}),
		fx.Provide(fx.Annotate(
			func(h *Handler[T]) http.Handler { return h },
			fx.ResultTags(`name:"`+name+`"`),
		)),
	)
}
