package utils

import (
	"encoding/json"
	"log"
	"net/http"

	"taskflow/internal/apperror"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode response: %v", err)
		}
	}
}

// WriteError writes a standardized error response. Errors that are not
// already an *apperror.AppError are reported as internal server errors.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("Server error", err)
	}
	if appErr.StatusCode() >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, appErr)
	}
	WriteJSONResponse(w, appErr.StatusCode(), appErr.ToResponse())
}

// DecodeJSONRequest decodes the request body into dst. On failure it writes
// a validation error response and returns the error, so callers can bail out
// with a bare return.
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteError(w, r, apperror.NewValidationError("Invalid request body", err))
		return err
	}
	return nil
}
