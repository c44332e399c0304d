package main

import (
	"errors"
	"net/http"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
)

var ErrInvalidID = errors.New("invalid ID format")

func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Errorw("internal error", "method", r.Method, "path", r.URL.Path, "error", err)

	_ = writeJson(w, http.StatusInternalServerError, envelope{
		Success: false,
		Message: "the server encountered a problem",
	})
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err)

	_ = writeJson(w, http.StatusBadRequest, envelope{
		Success: false,
		Message: err.Error(),
	})
}

func (app *application) notFoundError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found", "method", r.Method, "path", r.URL.Path, "error", err)

	_ = writeJson(w, http.StatusNotFound, envelope{
		Success: false,
		Message: err.Error(),
	})
}

func (app *application) unauthorizedError(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("unauthorized", "method", r.Method, "path", r.URL.Path, "error", err)

	_ = writeJson(w, http.StatusUnauthorized, envelope{
		Success: false,
		Message: err.Error(),
	})
}

func (app *application) forbiddenResponse(w http.ResponseWriter, r *http.Request) {
	app.logger.Warnw("forbidden", "method", r.Method, "path", r.URL.Path)

	_ = writeJson(w, http.StatusForbidden, envelope{
		Success: false,
		Message: "not authorized to perform this action",
	})
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter string) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	w.Header().Set("Retry-After", retryAfter)
	_ = writeJson(w, http.StatusTooManyRequests, envelope{
		Success: false,
		Message: "rate limit exceeded, retry after: " + retryAfter,
	})
}

// serviceError maps domain errors to HTTP status codes. Anything unknown is
// a 500.
func (app *application) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		app.notFoundError(w, r, err)
	case errors.Is(err, domain.ErrDuplicatePending),
		errors.Is(err, domain.ErrAlreadyDecided),
		errors.Is(err, domain.ErrInvalidPrice),
		errors.Is(err, domain.ErrDuplicateEmail),
		domain.IsValidationError(err):
		app.badRequestResponse(w, r, err)
	case errors.Is(err, domain.ErrUnauthorized):
		app.forbiddenResponse(w, r)
	case errors.Is(err, domain.ErrInvalidLogin):
		app.unauthorizedError(w, r, err)
	default:
		app.internalServerError(w, r, err)
	}
}
