package http

import (
	"net/http"
	"strings"
	"time"

	"voltpark-backend/internal/logger"
	"voltpark-backend/internal/security"
)

// AuthMiddleware rejects requests without a valid admin bearer token.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorBody{Code: "UNAUTHORIZED", Message: "missing bearer token"})
				return
			}

			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorBody{Code: "UNAUTHORIZED", Message: err.Error()})
				return
			}
			if claims.Role != security.RoleAdmin {
				writeJSON(w, http.StatusForbidden, errorBody{Code: "FORBIDDEN", Message: "admin role required"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// LoggingMiddleware logs each request with its duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Info("http request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start).String())
	})
}
