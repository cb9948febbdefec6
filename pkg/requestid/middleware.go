package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Header is the default request id header.
const Header = "X-Request-ID"

const maxIDLength = 128

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

type options struct {
	header        string
	trustIncoming bool
	generate      func() string
}

type Option func(*options)

// WithHeader reads and writes the id under a different header name.
func WithHeader(name string) Option {
	return func(o *options) {
		if name != "" {
			o.header = name
		}
	}
}

// WithTrustIncoming controls whether a well-formed id sent by the client is
// reused. Disable it when the service is exposed without a trusted proxy.
func WithTrustIncoming(trust bool) Option {
	return func(o *options) { o.trustIncoming = trust }
}

// WithGenerator replaces the uuid generator, mostly for tests.
func WithGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.generate = fn
		}
	}
}

// Middleware assigns a request id with default options.
func Middleware(next http.Handler) http.Handler {
	return New()(next)
}

// New returns middleware that assigns every request an id, stores it in the
// request context and echoes it in the response header.
func New(opts ...Option) func(http.Handler) http.Handler {
	o := options{header: Header, trustIncoming: true, generate: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(o.header)
			if !o.trustIncoming || !isValid(id) {
				id = o.generate()
			}
			w.Header().Set(o.header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

func isValid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}
