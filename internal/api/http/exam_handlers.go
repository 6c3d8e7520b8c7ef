package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/examforge/examforge/internal/catalog"
	"github.com/examforge/examforge/internal/importer"
)

type examSummary struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	DurationMinutes   int    `json:"duration_minutes"`
	NumberOfQuestions int    `json:"number_of_questions"`
}

// GET /exams (public). Passing scores and questions stay out of the
// listing.
func ListExamsHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		exams, err := store.ListExams(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]examSummary, 0, len(exams))
		for _, e := range exams {
			out = append(out, examSummary{
				ID:                e.ID,
				Title:             e.Title,
				DurationMinutes:   e.DurationMinutes,
				NumberOfQuestions: e.NumberOfQuestions,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// POST /exams/import
func ImportExamsHandler(im *importer.Importer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := im.Run(r.Context(), r.Body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]int{"imported": n})
	}
}

// DELETE /exams/{examID}
func DeleteExamHandler(store catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := store.DeleteExam(r.Context(), chi.URLParam(r, "examID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
