package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"movie-catalog/internal/model"
)

// TokenLifetime is fixed; tokens are never stored server side.
const TokenLifetime = time.Hour

// Scheme is the Authorization header marker clients have always sent.
const Scheme = "JWT"

var (
	ErrMissingToken   = errors.New("missing token")
	ErrMalformedToken = errors.New("malformed token")
	ErrExpiredToken   = errors.New("expired token")
)

// Token is a signed bearer token without its wire prefix.
type Token string

// Header renders the token the way it travels in responses and the
// Authorization header.
func (t Token) Header() string {
	return Scheme + " " + string(t)
}

// ParseAuthorization extracts a token from an Authorization header value.
// "JWT <token>" is the canonical form; "Bearer <token>" is also accepted.
func ParseAuthorization(header string) (Token, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrMissingToken
	}

	scheme, raw, found := strings.Cut(header, " ")
	if !found {
		if strings.EqualFold(header, Scheme) {
			return "", ErrMissingToken
		}
		return "", ErrMalformedToken
	}

	if !strings.EqualFold(scheme, Scheme) && !strings.EqualFold(scheme, "Bearer") {
		return "", ErrMalformedToken
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrMissingToken
	}

	return Token(raw), nil
}

type tokenClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates HS256 tokens. It holds only the secret
// and a clock, both fixed at construction.
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

type TokenOption func(*TokenManager)

// WithClock replaces time.Now, for deterministic expiry tests.
func WithClock(now func() time.Time) TokenOption {
	return func(m *TokenManager) {
		m.now = now
	}
}

func NewTokenManager(secret string, opts ...TokenOption) (*TokenManager, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token secret is required")
	}

	m := &TokenManager{secret: []byte(secret), now: time.Now}
	for _, opt := range opts {
		opt(m)
	}

	return m, nil
}

func (m *TokenManager) Issue(userID string, username string) (Token, error) {
	now := m.now().UTC()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return Token(signed), nil
}

// Validate checks signature and expiry against the manager's clock.
func (m *TokenManager) Validate(token Token) (*model.TokenClaims, error) {
	if strings.TrimSpace(string(token)) == "" {
		return nil, ErrMissingToken
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(string(token), &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if claims.Subject == "" || claims.Username == "" {
		return nil, ErrMalformedToken
	}

	out := &model.TokenClaims{
		UserID:    claims.Subject,
		Username:  claims.Username,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}

	return out, nil
}
