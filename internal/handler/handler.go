package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"dishpatch/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Response already started; nothing useful left to do.
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Warn().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeDomainError maps domain errors onto HTTP status codes. Anything
// unrecognised is treated as an internal error.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusInternalServerError
		switch domainErr.Code {
		case model.ErrCodeEmptyOrder, model.ErrCodeInvalidQuantity, model.ErrCodeMenuItemNotFound:
			status = http.StatusBadRequest
		case model.ErrCodeUnauthorizedActor:
			status = http.StatusForbidden
		case model.ErrCodeOrderNotFound:
			status = http.StatusNotFound
		case model.ErrCodeConflict:
			status = http.StatusConflict
		case model.ErrCodeInvalidTransition:
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, domainErr.Code, domainErr.Message, logger)
		return
	}

	msg := err.Error()
	if strings.Contains(msg, "required") || strings.Contains(msg, "nil") ||
		strings.Contains(msg, "must be") {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON, msg, logger)
		return
	}

	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}
