// Package errhttp maps domain errors to HTTP status codes.
// Every bounded context's errors belong to one kernel category, so the mapping
// is done per category rather than per sentinel.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/gardenhub/pkg/httpx"
	"github.com/ghuser/gardenhub/pkg/kernel"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Domain errors carry their own message; anything unrecognised becomes a
// 500 with a generic message so storage details are not leaked.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	httpx.JSONError(w, status, httpx.SafeError(err, status, true))
}

// StatusFor returns the HTTP status for err.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, kernel.ErrNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, kernel.ErrValidation):
		return http.StatusUnprocessableEntity // 422
	case errors.Is(err, kernel.ErrConflict):
		return http.StatusConflict // 409
	case errors.Is(err, kernel.ErrRuleViolation):
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}
