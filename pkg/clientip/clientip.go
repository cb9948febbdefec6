package clientip

import (
	"net"
	"net/http"
	"strings"
)

// DefaultHeaders are consulted in order before falling back to RemoteAddr.
var DefaultHeaders = []string{"X-Forwarded-For", "X-Real-IP"}

// Resolver extracts the client address from a request. Only the configured
// headers are trusted; a deployment without a proxy should trust none.
type Resolver struct {
	headers []string
}

type Option func(*Resolver)

// WithTrustedHeaders replaces the list of proxy headers. Passing no names
// makes the resolver use RemoteAddr only.
func WithTrustedHeaders(names ...string) Option {
	return func(r *Resolver) {
		r.headers = make([]string, 0, len(names))
		for _, n := range names {
			if n = strings.TrimSpace(n); n != "" {
				r.headers = append(r.headers, http.CanonicalHeaderKey(n))
			}
		}
	}
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{headers: DefaultHeaders}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IP returns the normalized client address or "" when nothing valid is found.
// Comma separated headers such as X-Forwarded-For yield their first valid entry.
func (res *Resolver) IP(r *http.Request) string {
	for _, name := range res.headers {
		value := r.Header.Get(name)
		if value == "" {
			continue
		}
		for candidate := range strings.SplitSeq(value, ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

var defaultResolver = NewResolver()

// GetIP resolves the client address with DefaultHeaders.
func GetIP(r *http.Request) string {
	return defaultResolver.IP(r)
}

func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
