package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Dan9191/rm-dashboard/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookie carries the RM token for browser requests
const SessionCookie = "rm_session"

type contextKey string

const usernameKey contextKey = "username"

// Username returns the authenticated RM stored on the request context
func Username(ctx context.Context) string {
	v, _ := ctx.Value(usernameKey).(string)
	return v
}

// AuthMiddleware requires a valid RM token from the Authorization header or the session cookie.
// Requests pass through untouched when authentication is not configured.
func AuthMiddleware(cfg *config.Config, onDenied http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !cfg.AuthEnabled() {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, err := parseToken(tokenFromRequest(r), cfg.JWTSecret)
			if err != nil {
				onDenied(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), usernameKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

func parseToken(tokenString, secret string) (string, error) {
	if tokenString == "" {
		return "", fmt.Errorf("missing token")
	}
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	return claims.Subject, nil
}
