package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strconv"
	"sync/atomic"
)

const (
	// RequestIDHeader is the HTTP header used for request IDs.
	RequestIDHeader = "X-Request-ID"

	maxRequestIDLength = 128
	prefixBytes        = 6
)

type requestIDKeyType struct{}

var requestIDKey = requestIDKeyType{} //nolint:gochecknoglobals

// idSource hands out ids made of a random per-process prefix and a counter,
// for example "9f2c4e1a07bd-2a".
type idSource struct {
	prefix  string
	counter atomic.Uint64
}

func newIDSource() *idSource {
	var buf [prefixBytes]byte

	// crypto/rand.Read never returns an error since Go 1.24.
	_, _ = rand.Read(buf[:])

	return &idSource{prefix: hex.EncodeToString(buf[:])}
}

func (s *idSource) next() string {
	return s.prefix + "-" + strconv.FormatUint(s.counter.Add(1), 36)
}

// GetRequestID retrieves the request ID from the context.
func GetRequestID(ctx context.Context) string {
	val, ok := ctx.Value(requestIDKey).(string)
	if !ok {
		return ""
	}

	return val
}

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}

	for i := range len(id) {
		if id[i] < 0x21 || id[i] > 0x7E {
			return false
		}
	}

	return true
}

// RequestID assigns an id to every request. A well formed incoming
// X-Request-ID is kept; anything else is replaced by a generated id. The id is
// stored in the request context and echoed in the response header.
func RequestID() func(http.Handler) http.Handler {
	ids := newIDSource()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if !validRequestID(id) {
				id = ids.next()
			}

			r.Header.Set(RequestIDHeader, id)
			w.Header().Set(RequestIDHeader, id)

			next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
		})
	}
}
