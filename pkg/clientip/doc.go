// Package clientip resolves the originating client address of a request.
//
// A Resolver walks its trusted proxy headers in order and falls back to
// RemoteAddr. Headers are only as trustworthy as the proxy in front of the
// service, so list exactly the ones your edge sets:
//
//	ips := clientip.NewResolver(clientip.WithTrustedHeaders("CF-Connecting-IP"))
//	r.Use(ips.Middleware)
//	ip := clientip.FromContext(r.Context())
//
// The resolved address is normalized through net.ParseIP; invalid values are
// skipped and an empty string means nothing usable was found.
package clientip
