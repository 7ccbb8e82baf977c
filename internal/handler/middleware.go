package handler

import (
	"context"
	"net/http"
	"strings"

	"jianstory-server/internal/config"
	"jianstory-server/internal/domain"
)

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header, or returns "" when the header is absent or malformed.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func contextWithIdentity(ctx context.Context, user *domain.SupabaseUser, token string) context.Context {
	ctx = context.WithValue(ctx, userContextKey, user)
	return context.WithValue(ctx, tokenContextKey, token)
}

// AuthMiddleware validates Supabase JWT tokens and rejects requests
// without a valid one.
func AuthMiddleware(container *config.Container) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			user, err := container.AuthService.ValidateToken(token)
			if err != nil {
				container.GetLogger().Debug("Token validation failed", "error", err)
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithIdentity(r.Context(), user, token)))
		})
	}
}

// OptionalAuthMiddleware attaches the user when a valid token is present
// and lets the request through anonymously otherwise. Used on read
// endpoints that personalize their response for signed-in readers.
func OptionalAuthMiddleware(container *config.Container) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token != "" {
				if user, err := container.AuthService.ValidateToken(token); err == nil {
					r = r.WithContext(contextWithIdentity(r.Context(), user, token))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
