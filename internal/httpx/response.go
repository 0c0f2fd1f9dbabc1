package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/tair/warehouse-inventory/pkg/apperror"
	"github.com/tair/warehouse-inventory/pkg/logger"
)

// Response is the JSON envelope every endpoint returns
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// RespondData sends a successful envelope
func RespondData(w http.ResponseWriter, status int, message string, data interface{}) {
	RespondJSON(w, status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondError maps err onto the error taxonomy. Internal errors are logged
// with their cause and answered with a generic message.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.HTTPStatus(err)
	message := apperror.PublicMessage(err)

	if status >= http.StatusInternalServerError {
		logger.Error(r.Context()).
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request failed")
		message = "Internal server error"
	}

	RespondJSON(w, status, Response{
		Success: false,
		Error:   message,
	})
}

// DecodeJSON decodes the request body into dst
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return apperror.InvalidArgument("Request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperror.InvalidArgument("Request body is required")
		}
		return apperror.InvalidArgument("Invalid request body")
	}
	return nil
}
