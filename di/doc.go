// Package di assembles loaders, documents and HTTP listeners into an Fx application.
//
// NewApp configures structured logging, routes Fx events through slog and
// registers the modules passed as options. DocumentModule wires a typed
// document read from disk into the container so other constructors can
// depend on the decoded value directly.
package di
