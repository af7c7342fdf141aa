// Package respond centralizes JSON response writing and the mapping from the
// domain error taxonomy to HTTP status codes.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"smart-canteen/internal/domain"
)

func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Message writes the `{message}` body used by errors and bodyless mutations.
func Message(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, map[string]any{"message": msg})
}

// MessageData writes the `{message, data}` body used by successful mutations.
func MessageData(w http.ResponseWriter, code int, msg string, data any) {
	JSON(w, code, map[string]any{"message": msg, "data": data})
}

// Err maps a domain error to its HTTP shape: ValidationError → 422 with field
// detail, ErrNotFound → 404, ErrUnauthorized → 401, ErrForbidden → 403,
// anything else → 500 with a generic message (the cause is logged, not leaked).
func Err(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		JSON(w, http.StatusUnprocessableEntity, map[string]any{
			"message": "The given data was invalid.",
			"errors":  ve.Fields,
		})
	case errors.Is(err, domain.ErrNotFound):
		Message(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		Message(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		Message(w, http.StatusForbidden, err.Error())
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		Message(w, http.StatusInternalServerError, "internal server error")
	}
}
