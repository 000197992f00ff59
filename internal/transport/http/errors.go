package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"trivia-quiz/internal/domain"
)

func errorCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrDuplicateUser):
		return "duplicate_user"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, domain.ErrNoQuestions):
		return "no_questions"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, domain.ErrSessionNotFound):
		return "session_not_found"
	case errors.Is(err, domain.ErrSlotLocked):
		return "slot_locked"
	case errors.Is(err, domain.ErrSlotNotFound):
		return "slot_not_found"
	case errors.Is(err, domain.ErrNoActiveQuestion):
		return "no_active_question"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrConfirmationRequired):
		return "confirmation_required"
	case errors.Is(err, domain.ErrSessionExhausted):
		return "session_exhausted"
	case errors.Is(err, domain.ErrEmptyResult):
		return "empty_result"
	case errors.Is(err, domain.ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, domain.ErrToken):
		return "provider_token"
	default:
		return "internal"
	}
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrDuplicateUser):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusCode(err), errorPayload{Code: errorCode(err), Message: domain.UserMessage(err)})
}
