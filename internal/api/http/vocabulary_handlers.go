package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	auth "github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/auth/middleware"
	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/homework"
)

func CreateVocabularyHandler(store homework.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Word       string `json:"word"`
			Definition string `json:"definition"`
			Example    string `json:"example"`
			Category   string `json:"category"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		req.Word = strings.TrimSpace(req.Word)
		if req.Word == "" {
			writeJSON(w, http.StatusBadRequest, &homework.FieldError{Message: "word is required", Field: "word"})
			return
		}
		if strings.TrimSpace(req.Definition) == "" {
			writeJSON(w, http.StatusBadRequest, &homework.FieldError{Message: "definition is required", Field: "definition"})
			return
		}
		word := homework.VocabularyWord{
			ID:         uuid.NewString(),
			UserID:     auth.SubjectFromContext(r.Context()),
			Word:       req.Word,
			Definition: req.Definition,
			Example:    req.Example,
			Category:   req.Category,
			CreatedAt:  time.Now().Unix(),
		}
		if err := store.PutVocabularyWord(r.Context(), word); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, word)
	}
}

func ListVocabularyHandler(store homework.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListVocabularyByUser(r.Context(), auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func DeleteVocabularyHandler(store homework.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.DeleteVocabularyWord(r.Context(),
			chi.URLParam(r, "wordID"), auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
