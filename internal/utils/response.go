package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/devcampdir/api/internal/constants"
)

// Response is the wire envelope for every JSON reply. Exactly one of the
// optional fields is populated depending on the kind of response.
type Response struct {
	Success bool        `json:"success"`
	Count   *int        `json:"count,omitempty"`
	Token   string      `json:"token,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// writeJSON marshals the payload and writes it with the given status code.
// Falls back to a plain 500 if marshaling fails.
func writeJSON(w http.ResponseWriter, status int, payload Response) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"An internal server error occurred"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// JSON writes a successful response with a data payload
func JSON(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, Response{Success: true, Data: data})
}

// Collection writes a successful response with a data slice and its count
func Collection(w http.ResponseWriter, status int, count int, data interface{}) {
	writeJSON(w, status, Response{Success: true, Count: &count, Data: data})
}

// TokenJSON writes a successful response carrying an authentication token
func TokenJSON(w http.ResponseWriter, status int, token string) {
	writeJSON(w, status, Response{Success: true, Token: token})
}

// MessageJSON writes a successful response with a human-readable message
func MessageJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: true, Message: message})
}

// NoContent writes an empty 204 response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error writes an error response with the given status and message
func Error(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Response{Success: false, Error: message})
}

// ErrorFromAppError writes an error response derived from an AppError
func ErrorFromAppError(w http.ResponseWriter, appErr *AppError) {
	if appErr.DevInfo != "" {
		log.Debug().
			Int("status", appErr.StatusCode).
			Str("dev_info", appErr.DevInfo).
			Msg(appErr.Message)
	}
	Error(w, appErr.StatusCode, appErr.Message)
}

// SendError writes an error response for any error value, parsing it into
// an AppError first so database and sentinel errors map to sane statuses.
func SendError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		ErrorFromAppError(w, appErr)
		return
	}
	ErrorFromAppError(w, ParseError(err))
}

// PaginationParams holds the page and page size for a list request
type PaginationParams struct {
	Page     int
	PageSize int
}

// Offset returns the row offset for the current page
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// GetPaginationParams extracts pagination parameters from the request,
// clamping the page size to a sane range.
func GetPaginationParams(r *http.Request) PaginationParams {
	page := constants.DefaultPage
	pageSize := constants.DefaultPageSize

	if raw := r.URL.Query().Get(constants.QueryParamPage); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	if raw := r.URL.Query().Get(constants.QueryParamPageSize); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			switch {
			case parsed < constants.MinPageSize:
				pageSize = constants.MinPageSize
			case parsed > constants.MaxPageSize:
				pageSize = constants.MaxPageSize
			default:
				pageSize = parsed
			}
		}
	}

	return PaginationParams{Page: page, PageSize: pageSize}
}
