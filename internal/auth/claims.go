package auth

import (
	"context"
	"time"

	authlib "github.com/Navaneeth-Nair/Neuromate/pkg/auth"
)

// Claims mirrors the shared auth claims type for service convenience.
type Claims = authlib.Claims

// Config mirrors the shared auth config.
type Config = authlib.Config

// ParseClaims delegates to the shared auth parser.
func ParseClaims(token string, cfg Config) (*Claims, error) {
	return authlib.Parse(token, cfg)
}

// WithClaims stores the claims in the request context.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return authlib.WithClaims(ctx, claims)
}

// FromContext retrieves claims from context.
func FromContext(ctx context.Context) (*Claims, bool) {
	return authlib.FromContext(ctx)
}

// Issuer mints user session tokens carrying DefaultScopes.
type Issuer struct {
	cfg Config
}

// NewIssuer constructs an Issuer.
func NewIssuer(cfg Config) Issuer {
	return Issuer{cfg: cfg}
}

// Issue signs a token for subject.
func (i Issuer) Issue(subject string, now time.Time) (string, time.Time, error) {
	return authlib.Issue(i.cfg, subject, DefaultScopes, now)
}
