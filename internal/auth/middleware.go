package auth

import (
	"net/http"
	"strings"

	authlib "github.com/Navaneeth-Nair/Neuromate/pkg/auth"
)

var publicPaths = map[string]bool{
	"/healthz":        true,
	"/metrics":        true,
	"/v1/auth/signup": true,
	"/v1/auth/signin": true,
	"/v1/beta/signup": true,
	"/v1/contact":     true,
}

// Middleware enforces bearer-token authentication on incoming requests.
type Middleware struct {
	inner authlib.Middleware
}

// NewMiddleware constructs Middleware with validation config.
func NewMiddleware(cfg Config) Middleware {
	skipper := func(r *http.Request) bool {
		return publicPaths[strings.TrimSuffix(r.URL.Path, "/")]
	}
	return Middleware{inner: authlib.NewMiddleware(cfg, skipper)}
}

// Wrap attaches authentication handling to an http.Handler.
func (m Middleware) Wrap(next http.Handler) http.Handler {
	return m.inner.Wrap(next)
}
