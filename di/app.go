package di

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	loader "github.com/0xalexb/hjarta-loader"
	"github.com/0xalexb/hjarta-loader/logging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// DefaultLifecycleTimeout bounds Start and Stop unless overridden.
const DefaultLifecycleTimeout = 15 * time.Second

var errAppNotInitialized = errors.New("app not initialized")

// App wraps an fx.App holding loaders, documents and listeners.
// A nil *App is safe to call; every method reports it as not initialized.
type App struct {
	app     *fx.App
	timeout time.Duration
}

// NewApp builds the logger described by the options, installs it as the
// slog default, exposes it and its config to the container, and registers
// the option modules. Graph errors surface from Err and Start.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	loggerConfig := logging.LoggerConfig{Level: options.LogLevel, Format: options.LogFormat}

	logger := logging.NewLogger(loggerConfig, os.Stderr).With(slog.String("version", loader.Version))
	slog.SetDefault(logger)

	timeout := options.LifecycleTimeout
	if timeout <= 0 {
		timeout = DefaultLifecycleTimeout
	}

	return &App{
		app: fx.New(
			fx.WithLogger(func() fxevent.Logger { return &fxevent.SlogLogger{Logger: logger} }),
			fx.Supply(loggerConfig, logger),
			fx.Options(options.Modules...),
		),
		timeout: timeout,
	}
}

// Err reports a dependency graph error found while building the app.
func (app *App) Err() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	return app.app.Err() //nolint:wrapcheck
}

// Start runs the OnStart hooks, such as binding listeners and starting file watchers.
func (app *App) Start() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	ctx, cancel := context.WithTimeout(context.Background(), app.timeout)
	defer cancel()

	err := app.app.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to start app: %w", err)
	}

	return nil
}

// Run starts the app and blocks until an OS signal arrives, then shuts down.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop runs the OnStop hooks in reverse order.
func (app *App) Stop() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	ctx, cancel := context.WithTimeout(context.Background(), app.timeout)
	defer cancel()

	err := app.app.Stop(ctx)
	if err != nil {
		return fmt.Errorf("failed to stop app: %w", err)
	}

	return nil
}
