package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/surveyforge/tabulator/internal/report"
	"github.com/surveyforge/tabulator/internal/survey"
	"github.com/surveyforge/tabulator/internal/tabdata"
)

// GET /surveys/{surveyID}/datasets/{datasetID}/report?breakout=<questionID>
func ReportHandler(store survey.Store, asm *report.Assembler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyID := strings.TrimSpace(chi.URLParam(r, "surveyID"))
		datasetID := strings.TrimSpace(chi.URLParam(r, "datasetID"))
		if surveyID == "" || datasetID == "" {
			http.Error(w, "surveyID and datasetID required", http.StatusBadRequest)
			return
		}

		breakout := 0
		if b := r.URL.Query().Get("breakout"); b != "" {
			n, err := strconv.Atoi(b)
			if err != nil || n <= 0 {
				http.Error(w, "bad breakout question id", http.StatusBadRequest)
				return
			}
			breakout = n
		}

		s, err := store.GetSurvey(r.Context(), surveyID)
		if err != nil {
			if errors.Is(err, survey.ErrNotFound) {
				http.Error(w, "survey not found", http.StatusNotFound)
				return
			}
			http.Error(w, "get survey: "+err.Error(), http.StatusInternalServerError)
			return
		}
		d, err := store.GetDataset(r.Context(), surveyID, datasetID)
		if err != nil {
			if errors.Is(err, survey.ErrNotFound) {
				http.Error(w, "dataset not found", http.StatusNotFound)
				return
			}
			http.Error(w, "get dataset: "+err.Error(), http.StatusInternalServerError)
			return
		}

		rep, err := asm.Build(&s, tabdata.FromStored(d.Columns, d.Rows), breakout)
		if err != nil {
			if errors.Is(err, report.ErrNoDataColumn) {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			http.Error(w, "build report: "+err.Error(), http.StatusInternalServerError)
			return
		}
		rep.DatasetID = datasetID
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rep)
	}
}
