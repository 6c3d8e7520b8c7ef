package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/examforge/examforge/internal/attempt"
	"github.com/examforge/examforge/internal/auth"
)

// POST /exams/{examID}/start
func StartAttemptHandler(engine *attempt.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		res, err := engine.Start(r.Context(), chi.URLParam(r, "examID"), userID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, res)
	}
}

type answerInput struct {
	OptionID string `json:"option_id"`
	Selected bool   `json:"selected"`
}

type endRequest struct {
	Answers []answerInput `json:"answers"`
}

// POST /exams/attempts/{attemptID}/end
func EndAttemptHandler(engine *attempt.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := auth.SubjectFromContext(r.Context())
		var req endRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		answers := make(map[string]bool, len(req.Answers))
		for _, a := range req.Answers {
			answers[a.OptionID] = a.Selected
		}
		res, err := engine.End(r.Context(), chi.URLParam(r, "attemptID"), userID, answers)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
