package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL mirrors the seven day session length of the web client.
const DefaultTTL = 7 * 24 * time.Hour

// Issue signs an HS256 token for subject carrying the provided scopes.
func Issue(cfg Config, subject string, scopes []string, now time.Time) (string, time.Time, error) {
	if strings.TrimSpace(subject) == "" {
		return "", time.Time{}, errors.New("subject is required")
	}
	if cfg.Secret == "" {
		return "", time.Time{}, errors.New("signing secret is required")
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	expiresAt := now.Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":    subject,
		"iss":    cfg.Issuer,
		"iat":    now.Unix(),
		"exp":    expiresAt.Unix(),
		"scopes": strings.Join(scopes, " "),
	})

	signed, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}
