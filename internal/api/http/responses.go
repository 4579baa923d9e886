package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"proofflow-backend/internal/domain"
	"proofflow-backend/internal/logger"
)

const maxJSONBodyBytes = 1 << 20

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("failed to encode response", "error", err)
	}
}

// writeError maps an error to its status code. Client-facing messages come
// from domain.Error; server errors get a generic body and are logged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, context.Canceled) && r.Context().Err() != nil {
		logger.InfoContext(r.Context(), "client went away", "path", r.URL.Path, "error", err)
		return
	}

	status, detail := classify(err)
	if status >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request error", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{Detail: detail})
}

func classify(err error) (int, string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge, "Request body too large"
	}

	var status int
	var detail string
	switch {
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusInternalServerError, "Internal server error"
	case errors.Is(err, domain.ErrNotAuthenticated):
		status, detail = http.StatusUnauthorized, "Not authorized"
	case errors.Is(err, domain.ErrNotFound):
		status, detail = http.StatusNotFound, "Not found"
	case errors.Is(err, domain.ErrConflict):
		status, detail = http.StatusConflict, "Conflict"
	case errors.Is(err, domain.ErrInvalidInput):
		status, detail = http.StatusBadRequest, "Invalid request"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}

	var derr *domain.Error
	if errors.As(err, &derr) && derr.Message != "" {
		detail = derr.Message
	}
	return status, detail
}

// decodeJSON reads a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return domain.NewError(domain.ErrInvalidInput, "Invalid JSON body")
	}
	return nil
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Detail: "Not found"})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Detail: "Method not allowed"})
}
