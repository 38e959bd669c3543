package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	auth "github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/auth/middleware"
	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/homework"
)

// CreateSubmissionHandler records a student result directly. The
// server-side session reports results itself; this endpoint remains for
// clients that ran the exam locally.
func CreateSubmissionHandler(store homework.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			HomeworkID     string `json:"homeworkId"`
			StudentName    string `json:"studentName"`
			Score          int    `json:"score"`
			TotalQuestions int    `json:"totalQuestions"`
			Percentage     int    `json:"percentage"`
			Answers        []bool `json:"answers"`
			TimeSpent      *int   `json:"timeSpent"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.HomeworkID == "" || strings.TrimSpace(req.StudentName) == "" {
			writeError(w, http.StatusBadRequest, "homeworkId and studentName required")
			return
		}
		if _, err := store.GetHomework(r.Context(), req.HomeworkID); err != nil {
			writeDomainError(w, err)
			return
		}
		sub := homework.ExamSubmission{
			ID:             uuid.NewString(),
			HomeworkID:     req.HomeworkID,
			StudentName:    strings.TrimSpace(req.StudentName),
			Score:          req.Score,
			TotalQuestions: req.TotalQuestions,
			Percentage:     req.Percentage,
			Answers:        req.Answers,
			TimeSpentSec:   req.TimeSpent,
			SubmittedAt:    time.Now().Unix(),
		}
		if err := store.PutSubmission(r.Context(), sub); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, sub)
	}
}

func ListSubmissionsHandler(store homework.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := auth.SubjectFromContext(r.Context())
		if hwID := r.URL.Query().Get("homeworkId"); hwID != "" {
			hw, err := store.GetHomework(r.Context(), hwID)
			if err != nil || hw.UserID != owner {
				writeError(w, http.StatusNotFound, homework.ErrNotFound.Error())
				return
			}
			list, err := store.ListSubmissionsByHomework(r.Context(), hwID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			writeJSON(w, http.StatusOK, list)
			return
		}
		list, err := store.ListSubmissionsByOwner(r.Context(), owner)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}
