package api

import (
	"context"
	"net/http"
	"serwer-zdjec/internal/auth"
	"strings"
)

type contextKey string

const identityContextKey = contextKey("identity")

func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		credential := strings.TrimPrefix(authHeader, "Bearer ")
		if credential == "" {
			writeError(w, http.StatusUnauthorized, "Invalid Authorization header format")
			return
		}

		identity, err := s.verifier.Verify(r.Context(), credential)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetIdentityFromContext(ctx context.Context) *auth.Identity {
	if identity, ok := ctx.Value(identityContextKey).(*auth.Identity); ok {
		return identity
	}
	return nil
}
