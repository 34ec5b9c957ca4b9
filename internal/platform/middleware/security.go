// Package middleware holds the HTTP middleware shared by every route.
package middleware

import (
	"net/http"
	"slices"
	"strings"
)

// apiHeaders keep API responses out of caches and frames and stop MIME
// sniffing.
var apiHeaders = [][2]string{
	{"Cache-Control", "no-store"},
	{"Content-Security-Policy", "frame-ancestors 'none'"},
	{"Cross-Origin-Opener-Policy", "same-origin"},
	{"Cross-Origin-Resource-Policy", "same-origin"},
	{"Permissions-Policy", "camera=(), geolocation=(), microphone=(), payment=(), usb=()"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
}

// Security sets apiHeaders on every response except those for paths under
// one of skipPrefixes. The docs UI is skipped since it frames itself and
// runs inline scripts.
func Security(skipPrefixes ...string) func(http.Handler) http.Handler {
	skipped := func(path string) bool {
		return slices.ContainsFunc(skipPrefixes, func(p string) bool {
			return strings.HasPrefix(path, p)
		})
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !skipped(r.URL.Path) {
				h := w.Header()
				for _, kv := range apiHeaders {
					h.Set(kv[0], kv[1])
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Vary lists request headers that select the representation, such as Accept
// choosing between JSON and CBOR. CORS adds Origin itself.
func Vary(headers ...string) func(http.Handler) http.Handler {
	value := strings.Join(headers, ", ")
	return func(next http.Handler) http.Handler {
		if value == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", value)
			next.ServeHTTP(w, r)
		})
	}
}
