package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"uclmatch_server/models"
	"uclmatch_server/services"
)

// bearerToken pulls the session token from the Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

// currentUser resolves the request's session token to a user id.
func currentUser(r *http.Request, auth *services.AuthService) (string, error) {
	return auth.ResolveSession(bearerToken(r))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses: authentication and
// validation failures go back verbatim, missing documents are 404, and
// everything else is treated as a backend transport failure.
func writeError(w http.ResponseWriter, err error) {
	var status int
	switch {
	case errors.Is(err, models.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, models.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	default:
		status = http.StatusBadGateway
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
