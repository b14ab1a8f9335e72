package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/coachpad/coachpad/internal/api/response"
	"github.com/coachpad/coachpad/internal/auth"
)

const claimsKey contextKey = "claims"

// Auth extracts the Authorization bearer token, verifies it, and stores the
// claims in the request context. Missing, expired, or malformed tokens
// return 401 with the message the clients key their session handling on.
func Auth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				response.Message(w, http.StatusUnauthorized, "Token is missing!")
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				if errors.Is(err, auth.ErrTokenExpired) {
					response.Message(w, http.StatusUnauthorized, "Token has expired!")
					return
				}
				response.Message(w, http.StatusUnauthorized, "Invalid token!")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireCoach rejects callers whose token does not carry the coach role.
// Every metric write endpoint sits behind this.
func RequireCoach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())
		if claims == nil {
			response.Message(w, http.StatusUnauthorized, "Token is missing!")
			return
		}
		if claims.Role != "coach" {
			response.Message(w, http.StatusForbidden, "Coach access required!")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetClaims retrieves the verified token claims from the request context.
func GetClaims(ctx context.Context) *auth.Claims {
	if c, ok := ctx.Value(claimsKey).(*auth.Claims); ok {
		return c
	}
	return nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
