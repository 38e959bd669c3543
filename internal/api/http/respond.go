package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/game"
	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/homework"
	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/session"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeDomainError maps the error taxonomy: validation → 400 with the
// field path, not-found (and not-owned, deliberately conflated) → 404,
// domain rejections → 400, everything else → 500 with a generic
// message and a server-side log line.
func writeDomainError(w http.ResponseWriter, err error) {
	var fe *homework.FieldError
	switch {
	case errors.As(err, &fe):
		writeJSON(w, http.StatusBadRequest, fe)
	case errors.Is(err, homework.ErrNotFound),
		errors.Is(err, session.ErrNotFound),
		errors.Is(err, game.ErrNoDailyQuestion):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrAlreadyAnswered),
		errors.Is(err, game.ErrWrongQuestion),
		errors.Is(err, game.ErrInsufficientPoints),
		errors.Is(err, game.ErrPowerupUnavailable),
		errors.Is(err, game.ErrUnknownPowerup),
		errors.Is(err, session.ErrAlreadySubmitted),
		errors.Is(err, session.ErrNotSubmitted),
		errors.Is(err, session.ErrNotInProgress),
		errors.Is(err, session.ErrNameRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
