package docserver

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"sync"

	loader "github.com/0xalexb/hjarta-loader"
	"github.com/0xalexb/hjarta-loader/document"
	"github.com/0xalexb/hjarta-loader/listener/middleware"
	jsonmapper "github.com/0xalexb/hjarta-loader/mapper/json"
	yamlmapper "github.com/0xalexb/hjarta-loader/mapper/yaml"
)

// VersionHeader carries the library version on every response.
const VersionHeader = "X-Loader-Version"

// ErrNilMapper is returned when WithFormat is given a nil mapper.
var ErrNilMapper = errors.New("format mapper must not be nil")

// Typed is implemented by mappers that report their media type.
type Typed interface {
	loader.Mapper
	ContentType() string
}

type format[T any] struct {
	mediaType string
	loader    *loader.Loader[T]
}

type config[T any] struct {
	mappers  []Typed
	onUpdate func(T)
	version  string
	logger   *slog.Logger
}

// Option configures a Handler.
type Option[T any] func(*config[T])

// WithFormat registers a mapper. The first registered format is the default
// representation for GET requests without a specific Accept header.
func WithFormat[T any](mapper Typed) Option[T] {
	return func(cfg *config[T]) {
		cfg.mappers = append(cfg.mappers, mapper)
	}
}

// WithOnUpdate registers a callback invoked with every accepted document.
func WithOnUpdate[T any](onUpdate func(T)) Option[T] {
	return func(cfg *config[T]) {
		cfg.onUpdate = onUpdate
	}
}

// WithLogger sets the logger passed to the per-format loaders.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(cfg *config[T]) {
		cfg.logger = logger
	}
}

// WithVersion overrides the value of the version response header.
func WithVersion[T any](version string) Option[T] {
	return func(cfg *config[T]) {
		cfg.version = version
	}
}

// Handler serves and replaces a document of type T.
type Handler[T any] struct {
	formats  []format[T]
	onUpdate func(T)
	version  string

	mu      sync.RWMutex
	current T
}

// NewHandler creates a Handler holding initial. Without WithFormat options it
// serves YAML (goccy/go-yaml) and JSON, in that order.
func NewHandler[T any](initial T, opts ...Option[T]) (*Handler[T], error) {
	cfg := config[T]{mappers: nil, onUpdate: nil, version: loader.Version, logger: nil}

	for _, apply := range opts {
		apply(&cfg)
	}

	if len(cfg.mappers) == 0 {
		cfg.mappers = []Typed{yamlmapper.New(), jsonmapper.New()}
	}

	formats := make([]format[T], 0, len(cfg.mappers))

	for _, mapper := range cfg.mappers {
		if mapper == nil {
			return nil, ErrNilMapper
		}

		l, err := loader.New[T](mapper, loader.WithLogger(cfg.logger))
		if err != nil {
			return nil, fmt.Errorf("creating loader: %w", err)
		}

		formats = append(formats, format[T]{mediaType: mapper.ContentType(), loader: l})
	}

	return &Handler[T]{
		formats:  formats,
		onUpdate: cfg.onUpdate,
		version:  cfg.version,
		current:  initial,
	}, nil
}

// Current returns the document currently served.
func (h *Handler[T]) Current() T {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.current
}

// Set replaces the served document without running defaults or validation.
func (h *Handler[T]) Set(value T) {
	h.mu.Lock()
	h.current = value
	h.mu.Unlock()
}

// ServeHTTP implements http.Handler.
func (h *Handler[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(VersionHeader, h.version)

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.serveDocument(w, r)
	case http.MethodPut, http.MethodPost:
		h.replaceDocument(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, PUT, POST")
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler[T]) serveDocument(w http.ResponseWriter, r *http.Request) {
	selected, ok := h.negotiate(r.Header.Get("Accept"))
	if !ok {
		http.Error(w, "Not Acceptable", http.StatusNotAcceptable)

		return
	}

	var buf bytes.Buffer

	err := selected.loader.Write(h.Current(), &buf)
	if err != nil {
		slog.Error("encoding document failed",
			"content_type", selected.mediaType, "request_id", middleware.GetRequestID(r.Context()), "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", selected.mediaType)
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return
	}

	_, _ = w.Write(buf.Bytes())
}

func (h *Handler[T]) replaceDocument(w http.ResponseWriter, r *http.Request) {
	selected, ok := h.byContentType(r.Header.Get("Content-Type"))
	if !ok {
		http.Error(w, "Unsupported Media Type", http.StatusUnsupportedMediaType)

		return
	}

	value, err := selected.loader.Load(r.Body)
	if err != nil {
		if middleware.IsBodyTooLarge(err) {
			http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)

			return
		}

		slog.Warn("decoding document failed",
			"content_type", selected.mediaType, "request_id", middleware.GetRequestID(r.Context()), "error", err)
		http.Error(w, "Bad Request: "+err.Error(), http.StatusBadRequest)

		return
	}

	value, err = document.Prepare(value)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)

		return
	}

	h.Set(value)

	if h.onUpdate != nil {
		h.onUpdate(value)
	}

	w.WriteHeader(http.StatusNoContent)
}

// negotiate picks the first registered format matching the Accept header.
// Media ranges are tried in header order; positive q-values are not ranked.
// A range with q=0 refuses every format it matches, wildcards included.
func (h *Handler[T]) negotiate(accept string) (format[T], bool) {
	if strings.TrimSpace(accept) == "" {
		return h.formats[0], true
	}

	var wanted, refused []string

	for _, part := range strings.Split(accept, ",") {
		mediaType, params, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}

		if quality(params["q"]) <= 0 {
			refused = append(refused, mediaType)
		} else {
			wanted = append(wanted, mediaType)
		}
	}

	for _, mediaType := range wanted {
		for _, f := range h.formats {
			if accepts(mediaType, f.mediaType) && !acceptsAny(refused, f.mediaType) {
				return f, true
			}
		}
	}

	return format[T]{}, false
}

// quality parses a q parameter. A missing or malformed value counts as 1.
func quality(q string) float64 {
	if q == "" {
		return 1
	}

	value, err := strconv.ParseFloat(q, 64)
	if err != nil {
		return 1
	}

	return value
}

// accepts reports whether an Accept media range covers offered.
func accepts(mediaRange, offered string) bool {
	return mediaRange == "*/*" || matches(mediaRange, offered)
}

func acceptsAny(ranges []string, offered string) bool {
	for _, mediaRange := range ranges {
		if accepts(mediaRange, offered) {
			return true
		}
	}

	return false
}

func (h *Handler[T]) byContentType(contentType string) (format[T], bool) {
	if contentType == "" {
		return h.formats[0], true
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return format[T]{}, false
	}

	for _, f := range h.formats {
		if matches(mediaType, f.mediaType) {
			return f, true
		}
	}

	return format[T]{}, false
}

// matches compares media types, treating the legacy YAML aliases and
// type wildcards ("application/*") as equivalent.
func matches(requested, offered string) bool {
	requested = canonical(requested)
	offered = canonical(offered)

	if requested == offered {
		return true
	}

	kind, sub, ok := strings.Cut(requested, "/")

	return ok && sub == "*" && strings.HasPrefix(offered, kind+"/")
}

func canonical(mediaType string) string {
	switch mediaType {
	case "application/x-yaml", "text/yaml", "text/x-yaml":
		return "application/yaml"
	case "text/xml":
		return "application/xml"
	default:
		return mediaType
	}
}
