package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jobee/jobee-api/internal/apperror"
	"github.com/jobee/jobee-api/internal/middleware"
)

// response is the envelope every endpoint answers with.
type response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response{
		Success: status < http.StatusBadRequest,
		Message: message,
		Data:    data,
	})
}

// writeError is the single place errors turn into HTTP responses; everything
// below the handlers deals in error values only.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, apperror.StatusCode(err), apperror.Message(err), nil)
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.Validation("Invalid request body")
	}
	return nil
}

// NotFound answers any unrouted path with the standard envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, r.URL.Path+" route not found", nil)
}

func callerID(r *http.Request) string {
	id, _ := r.Context().Value(middleware.UserIDCtxKey).(string)
	return id
}

func callerRole(r *http.Request) string {
	role, _ := r.Context().Value(middleware.UserRoleCtxKey).(string)
	return role
}

func callerName(r *http.Request) string {
	name, _ := r.Context().Value(middleware.UserNameCtxKey).(string)
	return name
}
