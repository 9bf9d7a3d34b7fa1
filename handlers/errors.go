// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-vote/contests"
	"github.com/danielhkuo/quickly-vote/middleware"
)

// respondError maps repository errors to HTTP responses. Anything that is
// not a not-found or validation error is logged and reported as a 500.
func respondError(w http.ResponseWriter, r *http.Request, err error, action string) {
	var cerr *contests.Error
	msg := err.Error()
	if errors.As(err, &cerr) {
		msg = cerr.Msg
	}

	switch {
	case errors.Is(err, contests.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, msg)
	case errors.Is(err, contests.ErrValidation):
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
	default:
		slog.ErrorContext(r.Context(), "failed to "+action, "error", err, "path", r.URL.Path)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to "+action)
	}
}
