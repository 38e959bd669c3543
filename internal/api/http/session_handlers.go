package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/session"
)

// StartSessionHandler opens an exam session from a share link. The body
// carries only the homework id and the student marker; timer, question
// limit and anti-cheat come from the stored record.
func StartSessionHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			HomeworkID string `json:"homeworkId"`
			Student    bool   `json:"student"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if req.HomeworkID == "" {
			writeError(w, http.StatusBadRequest, "homeworkId required")
			return
		}
		s, err := mgr.Start(r.Context(), req.HomeworkID, req.Student)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, s.Snapshot())
	}
}

func GetSessionHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := mgr.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.Snapshot())
	}
}

// BeginExamHandler supplies the student name and starts the clock.
func BeginExamHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			StudentName string `json:"studentName"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		s, err := mgr.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if err := s.Start(req.StudentName); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.Snapshot())
	}
}

func SubmitAnswerHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Answer string `json:"answer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		s, err := mgr.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		res, err := s.SubmitAnswer(req.Answer)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func AdvanceHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := mgr.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if err := s.Advance(); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.Snapshot())
	}
}

func RestartHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := mgr.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		s.Restart()
		writeJSON(w, http.StatusOK, s.Snapshot())
	}
}

// SessionEventHandler receives reported browser events (copy, paste,
// contextmenu, ...) and answers whether the anti-cheat guard suppresses
// them.
func SessionEventHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Type string `json:"type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		s, err := mgr.Get(chi.URLParam(r, "sessionID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s.HandleEvent(req.Type))
	}
}

// CloseSessionHandler is the unmount path: drops the session and
// releases its timer and guard.
func CloseSessionHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mgr.Remove(chi.URLParam(r, "sessionID"))
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
