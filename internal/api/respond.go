package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campushours/officehours/internal/scheduling"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}

// writeSchedulingError maps core error kinds to HTTP statuses. Conflict
// responses carry the windows the request collided with.
func writeSchedulingError(w http.ResponseWriter, err error) {
	var e *scheduling.Error
	if !errors.As(err, &e) {
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}

	status := http.StatusInternalServerError
	switch e.Kind {
	case scheduling.KindForbidden:
		status = http.StatusForbidden
	case scheduling.KindNotFound:
		status = http.StatusNotFound
	case scheduling.KindInvalidInput:
		status = http.StatusBadRequest
	case scheduling.KindConflict:
		status = http.StatusConflict
	}

	resp := ErrorResponse{Error: string(e.Kind), Details: e.Message}
	for _, c := range e.Conflicts {
		resp.Conflicts = append(resp.Conflicts, toWindowResponse(c))
	}
	writeJSON(w, status, resp)
}
