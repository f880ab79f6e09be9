package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/healthtrack/internal/apperror"
	"github.com/sakif/healthtrack/internal/auth"
	"github.com/sakif/healthtrack/internal/coerce"
)

var errNotOwner = apperror.Forbidden("You can only access your own data.")

// callerID returns the authenticated user's ID set by auth.RequireAuth.
func callerID(r *http.Request) (string, error) {
	id, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		return "", apperror.Unauthorized("Valid authentication required.")
	}
	return id, nil
}

// ownerFromQuery resolves the user a GET request is about. The caller is
// always the answer; a user_id or userId query parameter is accepted for
// older clients but must name the caller.
func ownerFromQuery(r *http.Request) (string, error) {
	caller, err := callerID(r)
	if err != nil {
		return "", err
	}
	q := r.URL.Query()
	claimed := q.Get("userId")
	if claimed == "" {
		claimed = q.Get("user_id")
	}
	if claimed = strings.TrimSpace(claimed); claimed != "" && claimed != caller {
		return "", errNotOwner
	}
	return caller, nil
}

// ownerFromBody is ownerFromQuery for write requests: a userId in the body
// is optional and must match the caller.
func ownerFromBody(r *http.Request, b body) (string, error) {
	caller, err := callerID(r)
	if err != nil {
		return "", err
	}
	if b.has("userId") {
		if claimed := strings.TrimSpace(coerce.String(b["userId"])); claimed != "" && claimed != caller {
			return "", errNotOwner
		}
	}
	return caller, nil
}

// todayOnly reads the ?today= flag. Any value other than "", "0" or
// "false" turns it on.
func todayOnly(r *http.Request) bool {
	v := strings.TrimSpace(r.URL.Query().Get("today"))
	return v != "" && v != "0" && !strings.EqualFold(v, "false")
}

// idParam reads a row ID from the {id} path segment, falling back to the
// ?id= query parameter.
func idParam(r *http.Request) string {
	if id := chi.URLParam(r, "id"); id != "" {
		return id
	}
	return r.URL.Query().Get("id")
}
