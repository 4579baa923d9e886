package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"proofflow-backend/internal/config"
	"proofflow-backend/internal/domain"
	"proofflow-backend/internal/logger"
	"proofflow-backend/internal/security"
)

var errAdminRequired = domain.NewError(domain.ErrNotAuthenticated, "Admin token required")

// SecurityMiddleware enforces the route security table. Admin routes need
// the admin header; share routes get their credential resolved and attached
// to the request context, leaving the decision to the handler.
func SecurityMiddleware(adminToken string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			level := config.GetSecurityLevel(routeName(r))

			switch level {
			case config.SecurityPublic:
				next.ServeHTTP(w, r)
			case config.SecurityAdmin:
				if !security.AdminTokenMatches(r.Header.Get(AdminTokenHeader), adminToken) {
					writeError(w, r, errAdminRequired)
					return
				}
				next.ServeHTTP(w, r.WithContext(withCredential(r.Context(), security.AdminCredential())))
			default:
				cred := resolveCredential(r, adminToken)
				next.ServeHTTP(w, r.WithContext(withCredential(r.Context(), cred)))
			}
		})
	}
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		return route.GetName()
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += int64(n)
	return n, err
}

func (s *statusRecorder) Unwrap() http.ResponseWriter {
	return s.ResponseWriter
}

// LoggingMiddleware logs one line per request. The query string is left out
// because it may carry tokens.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"route", routeName(r),
			"status", rec.status,
			"bytes", rec.bytes,
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if rec.status >= http.StatusInternalServerError {
			logger.WarnContext(r.Context(), "request failed", args...)
			return
		}
		logger.InfoContext(r.Context(), "request", args...)
	})
}
