// Package httpx provides HTTP response utilities following RFC7807 problem details.
package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/subuhjayafarm/farmbook/internal/shared"
)

// ProblemDetail represents RFC7807 problem details.
type ProblemDetail struct {
	Type   string `json:"type,omitempty"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// JSON sends a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Problem sends an RFC7807 problem details response.
func Problem(w http.ResponseWriter, status int, title, detail string) {
	JSON(w, status, ProblemDetail{
		Title:  title,
		Status: status,
		Detail: detail,
	})
}

// DecodeJSON decodes JSON request body into the target struct.
func DecodeJSON(r *http.Request, target any) error {
	return json.NewDecoder(r.Body).Decode(target)
}

// Error maps domain errors onto problem responses. Validation failures
// come back 422 with their detail; unknown tenants 401; stock and balance
// violations 422; everything else is a 500 with a generic title.
func Error(w http.ResponseWriter, err error) {
	if ve, ok := shared.AsValidation(err); ok {
		Problem(w, http.StatusUnprocessableEntity, string(ve.Kind), ve.Msg)
		return
	}
	switch {
	case errors.Is(err, shared.ErrTenantUnknown):
		Problem(w, http.StatusUnauthorized, "unknown tenant", "")
	case errors.Is(err, shared.ErrInvalidCredentials):
		Problem(w, http.StatusUnauthorized, "invalid credentials", "")
	case errors.Is(err, shared.ErrNotFound):
		Problem(w, http.StatusNotFound, "not found", "")
	case errors.Is(err, shared.ErrNegativeStock),
		errors.Is(err, shared.ErrUnbalanced),
		errors.Is(err, shared.ErrTooFewLines),
		errors.Is(err, shared.ErrTooManyLines),
		errors.Is(err, shared.ErrCapitalOpening),
		errors.Is(err, shared.ErrUnknownCategory):
		Problem(w, http.StatusUnprocessableEntity, "rejected", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "internal error", "")
	}
}
