package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	auth "github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/auth/middleware"
	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/homework"
	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/notify"
)

// HomeworkGenerator is the LLM collaborator for exercise creation.
type HomeworkGenerator interface {
	GenerateHomework(ctx context.Context, topic, difficulty, hwType string) ([]homework.Question, error)
}

func CreateHomeworkHandler(store homework.Store, gen HomeworkGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in homework.CreateInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		in.Topic = strings.TrimSpace(in.Topic)
		if err := in.Validate(); err != nil {
			writeDomainError(w, err)
			return
		}

		questions, err := gen.GenerateHomework(r.Context(), in.Topic, in.Difficulty, in.Type)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		hw := homework.Homework{
			ID:            uuid.NewString(),
			UserID:        auth.SubjectFromContext(r.Context()),
			Topic:         in.Topic,
			Difficulty:    in.Difficulty,
			Type:          in.Type,
			Questions:     questions,
			TimerMinutes:  in.TimerMinutes,
			QuestionCount: in.QuestionCount,
			AntiCheat:     in.AntiCheat,
			CreatedAt:     time.Now().Unix(),
		}
		if err := store.PutHomework(r.Context(), hw); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, hw)
	}
}

func GetHomeworkHandler(store homework.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hw, err := store.GetHomework(r.Context(), chi.URLParam(r, "homeworkID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, hw)
	}
}

func ListHomeworkHandler(store homework.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := store.ListHomeworkByUser(r.Context(), auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func DeleteHomeworkHandler(store homework.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := store.DeleteHomework(r.Context(),
			chi.URLParam(r, "homeworkID"), auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// ShareHomeworkHandler emails the exam link to a student address.
func ShareHomeworkHandler(store homework.Store, mailer *notify.EmailService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Email string `json:"email"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Email) == "" {
			writeError(w, http.StatusBadRequest, "email required")
			return
		}
		id := chi.URLParam(r, "homeworkID")
		hw, err := store.GetHomework(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if hw.UserID != auth.SubjectFromContext(r.Context()) {
			writeError(w, http.StatusNotFound, homework.ErrNotFound.Error())
			return
		}
		if !mailer.IsEnabled() {
			writeError(w, http.StatusBadRequest, "email sending is not configured")
			return
		}
		if err := mailer.SendShareLink(r.Context(), req.Email, hw.Topic, hw.ID); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
