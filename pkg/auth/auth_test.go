package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testConfig = Config{Secret: "test-secret", Issuer: "neuromate.test", TTL: time.Hour}

func TestIssueAndParse(t *testing.T) {
	now := time.Now().UTC()
	token, expiresAt, err := Issue(testConfig, "user-1", []string{"activities:read", "activities:write"}, now)
	require.NoError(t, err)
	require.WithinDuration(t, now.Add(time.Hour), expiresAt, time.Second)

	claims, err := Parse(token, testConfig)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.True(t, claims.HasScope("activities:read"))
	require.True(t, claims.HasAnyScope("profile:read", "activities:write"))
	require.False(t, claims.HasScope("profile:write"))
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	token, _, err := Issue(Config{Secret: testConfig.Secret, Issuer: "someone-else"}, "user-1", nil, time.Now())
	require.NoError(t, err)

	_, err = Parse(token, testConfig)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	token, _, err := Issue(testConfig, "user-1", nil, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = Parse(token, testConfig)
	require.True(t, errors.Is(err, ErrInvalidToken))
}

func TestParseMissingToken(t *testing.T) {
	_, err := Parse("  ", testConfig)
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestMiddlewareSkipsAndRejects(t *testing.T) {
	mw := NewMiddleware(testConfig, func(r *http.Request) bool { return r.URL.Path == "/healthz" })
	var seen *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := mw.Wrap(next)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/profile", nil))
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	token, _, err := Issue(testConfig, "user-7", []string{"profile:read"}, time.Now())
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.NotNil(t, seen)
	require.Equal(t, "user-7", seen.Subject)
}
