package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// UserIDHeader carries the caller identity set by the upstream gateway
const UserIDHeader = "X-User-Id"

type userIDKey struct{}

// identify stores the caller's user id in the request context
func identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID := strings.TrimSpace(r.Header.Get(UserIDHeader)); userID != "" {
			r = r.WithContext(context.WithValue(r.Context(), userIDKey{}, userID))
		}
		next.ServeHTTP(w, r)
	})
}

// userIDFrom returns the caller's user id, or "" for anonymous requests
func userIDFrom(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey{}).(string)
	return userID
}

// requireUser writes 401 and returns false for anonymous requests
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := userIDFrom(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return userID, true
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				fields := []zap.Field{
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", status),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
					zap.String("remote", r.RemoteAddr),
				}
				if userID := userIDFrom(r.Context()); userID != "" {
					fields = append(fields, zap.String("user_id", userID))
				}

				switch {
				case status >= 500:
					logger.Error("request", fields...)
				case status >= 400:
					logger.Warn("request", fields...)
				default:
					logger.Info("request", fields...)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
