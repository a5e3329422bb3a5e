package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/surveyforge/tabulator/internal/survey"
)

// POST /surveys
func UploadSurveyHandler(store survey.Store, events Auditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var s survey.Survey
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if len(s.Questions) == 0 {
			http.Error(w, "survey has no questions", http.StatusBadRequest)
			return
		}
		for _, q := range s.Questions {
			if len(q.Options) == 0 {
				http.Error(w, "question has no options", http.StatusBadRequest)
				return
			}
		}
		if err := store.PutSurvey(r.Context(), s); err != nil {
			http.Error(w, "store survey: "+err.Error(), http.StatusInternalServerError)
			return
		}
		audit(r, events, "SurveyUploaded", s.ID, map[string]any{"questions": len(s.Questions)})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": s.ID})
	}
}

// GET /surveys/{surveyID}
func GetSurveyHandler(store survey.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(chi.URLParam(r, "surveyID"))
		if id == "" {
			http.Error(w, "surveyID required", http.StatusBadRequest)
			return
		}
		s, err := store.GetSurvey(r.Context(), id)
		if err != nil {
			if errors.Is(err, survey.ErrNotFound) {
				http.Error(w, "survey not found", http.StatusNotFound)
				return
			}
			http.Error(w, "get survey: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(s)
	}
}
