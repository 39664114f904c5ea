package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/dread-tracker/internal/domain"
	"github.com/preston-bernstein/dread-tracker/internal/http/middleware"
	"github.com/preston-bernstein/dread-tracker/internal/http/requestutil"
	"github.com/preston-bernstein/dread-tracker/internal/logging"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.HeaderRequestID)
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeDomainError maps tracker sentinel errors to a status. Anything else is
// logged and reported as unavailable.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, subject string, logger *slog.Logger) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, r, http.StatusNotFound, subject+" not found", logger)
	case errors.Is(err, domain.ErrInvalidFormat), errors.Is(err, domain.ErrInvalidField):
		writeError(w, r, http.StatusBadRequest, "invalid "+subject, logger)
	default:
		loggerFromContext(r, logger).Error("request failed",
			logging.FieldPath, r.URL.Path,
			"error", err,
		)
		writeError(w, r, http.StatusInternalServerError, subject+" unavailable", logger)
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
