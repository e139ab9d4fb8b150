package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"movie-catalog/internal/auth"
	"movie-catalog/internal/model"
	"movie-catalog/pkg/apierror"
)

type tokenValidator interface {
	Validate(token auth.Token) (*model.TokenClaims, error)
}

type contextKey string

const authClaimsContextKey contextKey = "auth_claims"

type AuthMiddleware struct {
	validator tokenValidator
}

func NewAuthMiddleware(validator tokenValidator) *AuthMiddleware {
	return &AuthMiddleware{validator: validator}
}

// RequireAuth rejects the request with 401 unless it carries a valid token.
// Missing, malformed, forged and expired tokens all get the same response.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.ParseAuthorization(r.Header.Get("Authorization"))
		if err != nil {
			slog.Debug("auth rejected", "path", r.URL.Path, "reason", err)
			writeUnauthorized(w)
			return
		}

		claims, err := m.validator.Validate(token)
		if err != nil {
			slog.Debug("auth rejected", "path", r.URL.Path, "reason", err)
			writeUnauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

func WithClaims(ctx context.Context, claims *model.TokenClaims) context.Context {
	return context.WithValue(ctx, authClaimsContextKey, claims)
}

func ClaimsFromContext(ctx context.Context) (*model.TokenClaims, bool) {
	claims, ok := ctx.Value(authClaimsContextKey).(*model.TokenClaims)
	return claims, ok && claims != nil
}

func writeUnauthorized(w http.ResponseWriter) {
	apiErr := apierror.Unauthorized("missing or invalid token")
	writeError(w, apiErr.HTTPStatus, apiErr.Code, apiErr.Message)
}
