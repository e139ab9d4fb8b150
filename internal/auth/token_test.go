package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newTestManager(t *testing.T, clock *fakeClock) *TokenManager {
	t.Helper()

	m, err := NewTokenManager("test-secret", WithClock(clock.Now))
	require.NoError(t, err)
	return m
}

func TestIssueThenValidate(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	m := newTestManager(t, clock)

	token, err := m.Issue("user-1", "alice")
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.True(t, claims.IssuedAt.Equal(clock.now))
	require.True(t, claims.ExpiresAt.Equal(clock.now.Add(TokenLifetime)))
}

func TestValidateExpiry(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: issuedAt}
	m := newTestManager(t, clock)

	token, err := m.Issue("user-1", "alice")
	require.NoError(t, err)

	clock.now = issuedAt.Add(TokenLifetime - time.Minute)
	_, err = m.Validate(token)
	require.NoError(t, err)

	clock.now = issuedAt.Add(TokenLifetime + time.Second)
	_, err = m.Validate(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateRejectsForeignTokens(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Now()}
	m := newTestManager(t, clock)

	other, err := NewTokenManager("other-secret", WithClock(clock.Now))
	require.NoError(t, err)
	foreign, err := other.Issue("user-1", "alice")
	require.NoError(t, err)

	_, err = m.Validate(foreign)
	require.ErrorIs(t, err, ErrMalformedToken)

	_, err = m.Validate("not.a.token")
	require.ErrorIs(t, err, ErrMalformedToken)

	_, err = m.Validate("")
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestValidateRejectsUnsignedToken(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Now()}
	m := newTestManager(t, clock)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":      "user-1",
		"username": "alice",
		"exp":      clock.now.Add(time.Hour).Unix(),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Validate(Token(raw))
	require.ErrorIs(t, err, ErrMalformedToken)
}

func TestValidateRequiresExpiry(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Now()}
	m := newTestManager(t, clock)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      "user-1",
		"username": "alice",
	})
	raw, err := noExp.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Validate(Token(raw))
	require.ErrorIs(t, err, ErrMalformedToken)
}

func TestParseAuthorization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		want    Token
		wantErr error
	}{
		{name: "jwt scheme", header: "JWT abc.def.ghi", want: "abc.def.ghi"},
		{name: "scheme is case insensitive", header: "jwt abc.def.ghi", want: "abc.def.ghi"},
		{name: "bearer scheme", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "empty header", header: "   ", wantErr: ErrMissingToken},
		{name: "scheme only", header: "JWT ", wantErr: ErrMissingToken},
		{name: "raw token without scheme", header: "abc.def.ghi", wantErr: ErrMalformedToken},
		{name: "unknown scheme", header: "Basic dXNlcjpwYXNz", wantErr: ErrMalformedToken},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAuthorization(tc.header)
			if tc.wantErr != nil {
				require.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestTokenHeaderRoundTrip(t *testing.T) {
	t.Parallel()

	token := Token("abc.def.ghi")
	require.Equal(t, "JWT abc.def.ghi", token.Header())

	parsed, err := ParseAuthorization(token.Header())
	require.NoError(t, err)
	require.Equal(t, token, parsed)
}

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	t.Parallel()

	_, err := NewTokenManager("  ")
	require.Error(t, err)
}
