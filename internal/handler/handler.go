package handler

import (
	"encoding/json"
	"net/http"

	"food-court/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful left to do.
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: http.StatusText(status), Message: message})
}

// writeDomainError translates a service error into an HTTP response
// using the domain error code.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	switch model.ErrorCode(err) {
	case model.ErrCodeValidation:
		writeError(w, http.StatusBadRequest, err.Error(), logger)
	case model.ErrCodeNotFound:
		writeError(w, http.StatusNotFound, err.Error(), logger)
	case model.ErrCodeInvalidTransition:
		writeError(w, http.StatusConflict, err.Error(), logger)
	case model.ErrCodeIntegrityFault:
		writeError(w, http.StatusInternalServerError, err.Error(), logger)
	default:
		// Infrastructure errors stay opaque to the client.
		writeError(w, http.StatusInternalServerError, "internal server error", logger)
	}
}
