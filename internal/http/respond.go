package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"procure/internal/core"
	"procure/internal/log"
)

func respond(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respond(w, status, map[string]string{"error": msg})
}

// respondServiceError maps a service error to its status code.
// Validation failures echo the offending field back to the caller;
// anything unexpected is logged and hidden behind a generic message.
func respondServiceError(ctx context.Context, w http.ResponseWriter, err error, notFoundMsg, internalMsg string) {
	switch {
	case core.IsValidation(err):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrNotFound):
		respondError(w, http.StatusNotFound, notFoundMsg)
	default:
		slog.ErrorContext(ctx, internalMsg,
			log.FieldError, err,
			log.FieldComponent, log.ComponentHTTP)
		respondError(w, http.StatusInternalServerError, internalMsg)
	}
}
