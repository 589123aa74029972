package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eventhub-ke/eventhub/internal/core/domain"
	"github.com/eventhub-ke/eventhub/internal/core/services"
)

type contextKey string

const userContextKey contextKey = "user"

// UserFromContext returns the authenticated user placed by Protect.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok
}

// Protect rejects requests without a valid bearer token and attaches the
// resolved user to the request context.
func Protect(auth *services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeAuthError(w, "Not authorized, no token", "")
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrTokenExpired):
					writeAuthError(w, "Token expired. Please login again.", "TOKEN_EXPIRED")
				case errors.Is(err, domain.ErrUserGone):
					writeAuthError(w, "Session expired or invalid. Please login again.", "TOKEN_INVALID")
				case errors.Is(err, domain.ErrTokenInvalid):
					writeAuthError(w, "Invalid token. Please login again.", "INVALID_TOKEN")
				default:
					writeAuthError(w, "Not authorized, token failed", "")
				}
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OrganizerOnly requires the authenticated user to hold the organizer role.
// It must run after Protect.
func OrganizerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || !user.IsOrganizer() {
			writeError(w, http.StatusForbidden, "Not authorized as organizer")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequestLogger writes one structured access-log line per request.
func RequestLogger(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.WithFields(logrus.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rec.status,
				"duration": time.Since(start).String(),
			}).Info("request")
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// CORS is permissive: the SPA is served from a different origin in
// development.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
