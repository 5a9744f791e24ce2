package http

import (
	"context"
	"net/http"
	"strings"

	"furnirent-backend/internal/domain"
	"furnirent-backend/internal/security"
)

type contextKey string

const actorKey contextKey = "actor"

// AuthMiddleware validates the bearer token and stores the resulting actor
// in the request context. Every route behind it can rely on actorFrom.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeError(w, err)
				return
			}

			actor := domain.Actor{
				ID:    claims.UserID,
				Name:  claims.Name,
				Email: claims.Email,
				Role:  domain.UserRole(claims.Role),
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, actor)))
		})
	}
}

func actorFrom(r *http.Request) domain.Actor {
	actor, _ := r.Context().Value(actorKey).(domain.Actor)
	return actor
}
