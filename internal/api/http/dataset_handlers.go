package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/surveyforge/tabulator/internal/survey"
	"github.com/surveyforge/tabulator/internal/tabdata"
)

// Blobs archives raw uploads; Auditor records ingest events. Both are
// narrow interfaces (nil disables them) so handlers stay testable without a
// filesystem or database.
type Blobs interface {
	Put(key string, r io.Reader) (string, error)
}

type Auditor interface {
	Append(ctx context.Context, e survey.Event) error
}

// audit best-effort-appends an event; ingest never fails on audit errors.
func audit(r *http.Request, events Auditor, typ, key string, data map[string]any) {
	if events == nil {
		return
	}
	payload, _ := json.Marshal(data)
	_ = events.Append(r.Context(), survey.Event{Type: typ, Key: key, DataJSON: string(payload)})
}

// POST /surveys/{surveyID}/datasets  (body: CSV export)
func UploadDatasetHandler(store survey.Store, blobs Blobs, events Auditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyID := strings.TrimSpace(chi.URLParam(r, "surveyID"))
		if surveyID == "" {
			http.Error(w, "surveyID required", http.StatusBadRequest)
			return
		}
		if _, err := store.GetSurvey(r.Context(), surveyID); err != nil {
			if errors.Is(err, survey.ErrNotFound) {
				http.Error(w, "survey not found", http.StatusNotFound)
				return
			}
			http.Error(w, "get survey: "+err.Error(), http.StatusInternalServerError)
			return
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, 32<<20))
		if err != nil {
			http.Error(w, "read body: "+err.Error(), http.StatusBadRequest)
			return
		}
		ds, err := tabdata.LoadCSV(bytes.NewReader(body))
		if err != nil {
			http.Error(w, "parse csv: "+err.Error(), http.StatusBadRequest)
			return
		}

		id := uuid.NewString()
		name := strings.TrimSpace(r.URL.Query().Get("name"))
		if name == "" {
			name = "export-" + id[:8]
		}
		if blobs != nil {
			if _, err := blobs.Put(fmt.Sprintf("uploads/%s/%s.csv", surveyID, id), bytes.NewReader(body)); err != nil {
				http.Error(w, "archive upload: "+err.Error(), http.StatusInternalServerError)
				return
			}
		}

		stored := survey.Dataset{ID: id, SurveyID: surveyID, Name: name, Columns: map[int][]string{}, Rows: ds.Rows}
		for qid, col := range ds.Columns {
			stored.Columns[qid] = col.Tokens
		}
		if err := store.PutDataset(r.Context(), stored); err != nil {
			http.Error(w, "store dataset: "+err.Error(), http.StatusInternalServerError)
			return
		}
		audit(r, events, "DatasetIngested", id, map[string]any{"survey_id": surveyID, "rows": ds.Rows})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": id, "rows": ds.Rows})
	}
}

// GET /surveys/{surveyID}/datasets
func ListDatasetsHandler(store survey.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyID := strings.TrimSpace(chi.URLParam(r, "surveyID"))
		if surveyID == "" {
			http.Error(w, "surveyID required", http.StatusBadRequest)
			return
		}
		list, err := store.ListDatasets(r.Context(), surveyID)
		if err != nil {
			http.Error(w, "list datasets: "+err.Error(), http.StatusInternalServerError)
			return
		}
		// column payloads are omitted from listings
		for i := range list {
			list[i].Columns = nil
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(list)
	}
}
