package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/stockroom/replenish-backend/pkg/ctxutil"
)

// Logger returns middleware that logs each HTTP request with method, path,
// status code, duration, and the caller's request_id, user_id and role.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			// Auth runs inside Logger; IdentifyCaller fills these in.
			if sw.ctxUser != "" {
				attrs = append(attrs, slog.String("user_id", sw.ctxUser), slog.String("role", sw.ctxRole))
			}

			level := slog.LevelInfo
			switch {
			case sw.status >= 500:
				level = slog.LevelError
			case sw.status == http.StatusUnauthorized || sw.status == http.StatusForbidden:
				level = slog.LevelWarn
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the response status code
// and the identity resolved further down the chain.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	ctxUser     string
	ctxRole     string
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) identify(r *http.Request) {
	if id, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		w.ctxUser = id.String()
		w.ctxRole = ctxutil.RoleFromCtx(r.Context())
	}
}

// IdentifyCaller copies the authenticated caller onto the access log entry.
// It must run after Auth.
func IdentifyCaller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sw, ok := w.(*statusWriter); ok {
			sw.identify(r)
		}
		next.ServeHTTP(w, r)
	})
}
