package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"route-planner-service/internal/domain"
	"route-planner-service/internal/services"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// statusFor maps service errors onto response codes. Recoverable errors
// keep their text; the session stays usable after any of them.
func statusFor(err error) int {
	var ve *domain.ValidationError
	var dae *domain.DataAccessError
	var are *domain.AddressResolutionError
	var sue *domain.ServiceUnavailableError

	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.As(err, &ve), errors.As(err, &dae), errors.As(err, &are):
		return http.StatusUnprocessableEntity
	case errors.As(err, &sue):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError renders recoverable errors verbatim and hides
// internal ones behind a generic message.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("internal error: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		writeError(w, r, status, "internal server error")
		return
	}
	writeError(w, r, status, err.Error())
}
