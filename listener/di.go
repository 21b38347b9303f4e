package listener

import (
	"log/slog"
	"net/http"
	"strconv"

	"go.uber.org/fx"
)

// nameTag is the fx tag shared by a listener's handler and Config.
func nameTag(name string) string {
	return "name:" + strconv.Quote(name)
}

// NewModule creates an Fx module running one HTTP listener called name.
//
// The module consumes an http.Handler and a Config, both tagged with name.
// A docserver.Module with the same name provides the handler. When opts are
// given the module supplies the Config itself; otherwise it must come from
// elsewhere in the graph, for example a document.Provider reading a file.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, opts ...Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	moduleOpts := make([]fx.Option, 0, 2) //nolint:mnd // config supply and invoke

	if len(opts) > 0 {
		var cfg Config

		for _, apply := range opts {
			apply(&cfg)
		}

		moduleOpts = append(moduleOpts, fx.Supply(fx.Annotate(cfg, fx.ResultTags(nameTag(name)))))
	}

	register := func(lifecycle fx.Lifecycle, shutdowner fx.Shutdowner, handler http.Handler, cfg Config) error {
		srv, err := NewServer(name, handler, cfg, func() {
			shutdownErr := shutdowner.Shutdown()
			if shutdownErr != nil {
				slog.Error("failed to trigger shutdown", "name", name, "error", shutdownErr)
			}
		})
		if err != nil {
			return err
		}

		lifecycle.Append(fx.StartStopHook(srv.Start, srv.Stop))

		return nil
	}

	moduleOpts = append(moduleOpts, fx.Invoke(
		fx.Annotate(register, fx.ParamTags("", "", nameTag(name), nameTag(name))),
	))

	return fx.Module(name, moduleOpts...)
}
