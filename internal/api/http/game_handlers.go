package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	auth "github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/auth/middleware"
	"github.com/nguyenviethung270980-afk/SmartTutorEnglishAI/internal/game"
)

func DailyQuestionHandler(ledger *game.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := ledger.GetOrCreateDaily(r.Context(), auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

func AnswerDailyHandler(ledger *game.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Answer string `json:"answer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		res, err := ledger.AnswerDaily(r.Context(),
			auth.SubjectFromContext(r.Context()), chi.URLParam(r, "questionID"), req.Answer)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func StatsHandler(ledger *game.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := ledger.Stats(r.Context(), auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func ShopHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, game.Catalog)
	}
}

func BuyPowerupHandler(ledger *game.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			PowerupID string `json:"powerupId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		if err := ledger.Buy(r.Context(), auth.SubjectFromContext(r.Context()), req.PowerupID); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func ListPowerupsHandler(ledger *game.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := ledger.Powerups(r.Context(), auth.SubjectFromContext(r.Context()))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func UsePowerupHandler(ledger *game.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := ledger.Use(r.Context(),
			auth.SubjectFromContext(r.Context()), chi.URLParam(r, "powerupID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}
