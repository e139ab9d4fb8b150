package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"movie-catalog/internal/auth"
	"movie-catalog/internal/model"
)

func newGate(t *testing.T, now func() time.Time) (*AuthMiddleware, *auth.TokenManager) {
	t.Helper()

	tokens, err := auth.NewTokenManager("gate-secret", auth.WithClock(now))
	require.NoError(t, err)
	return NewAuthMiddleware(tokens), tokens
}

func TestRequireAuth_AttachesClaims(t *testing.T) {
	gate, tokens := newGate(t, time.Now)
	token, err := tokens.Issue("u-1", "alice")
	require.NoError(t, err)

	var seen *model.TokenClaims
	handler := gate.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	for _, header := range []string{token.Header(), "Bearer " + string(token)} {
		req := httptest.NewRequest(http.MethodGet, "/movies", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		require.NotNil(t, seen)
		assert.Equal(t, "u-1", seen.UserID)
		assert.Equal(t, "alice", seen.Username)
	}
}

func TestRequireAuth_RejectsUniformly(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := issuedAt
	gate, tokens := newGate(t, func() time.Time { return now })

	token, err := tokens.Issue("u-1", "alice")
	require.NoError(t, err)

	foreign, err := auth.NewTokenManager("other-secret")
	require.NoError(t, err)
	forged, err := foreign.Issue("u-1", "alice")
	require.NoError(t, err)

	reached := false
	handler := gate.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	cases := map[string]struct {
		header  string
		advance time.Duration
	}{
		"missing":      {header: ""},
		"scheme only":  {header: "JWT"},
		"wrong scheme": {header: "Basic " + string(token)},
		"garbage":      {header: "JWT not.a.token"},
		"forged":       {header: forged.Header()},
		"expired":      {header: token.Header(), advance: auth.TokenLifetime + time.Second},
	}

	var bodies []string
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			now = issuedAt.Add(tc.advance)
			req := httptest.NewRequest(http.MethodPost, "/reviews", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, reached)

			var resp model.APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
			bodies = append(bodies, rec.Body.String())
		})
	}

	for _, b := range bodies {
		assert.Equal(t, bodies[0], b)
	}
}

func TestClaimsFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := ClaimsFromContext(req.Context())
	assert.False(t, ok)
}
