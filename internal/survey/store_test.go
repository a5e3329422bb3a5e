package survey_test

import (
	"context"
	"errors"
	"testing"

	"github.com/surveyforge/tabulator/internal/survey"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := survey.NewInMemoryStore()

	s := survey.Survey{
		ID:    "s1",
		Title: "Shift feedback",
		Questions: []survey.Question{
			{ID: 1, Text: "The new schedule works for me.", Options: []string{"Agree", "Disagree"}},
		},
	}
	if err := st.PutSurvey(ctx, s); err != nil {
		t.Fatalf("PutSurvey: %v", err)
	}
	got, err := st.GetSurvey(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSurvey: %v", err)
	}
	if got.Title != s.Title || len(got.Questions) != 1 {
		t.Fatalf("got %+v", got)
	}

	d := survey.Dataset{
		ID:       "d1",
		SurveyID: "s1",
		Name:     "wave 1",
		Columns:  map[int][]string{1: {"Agree", "Disagree", ""}},
		Rows:     3,
	}
	if err := st.PutDataset(ctx, d); err != nil {
		t.Fatalf("PutDataset: %v", err)
	}
	gd, err := st.GetDataset(ctx, "s1", "d1")
	if err != nil {
		t.Fatalf("GetDataset: %v", err)
	}
	if gd.Rows != 3 || len(gd.Columns[1]) != 3 {
		t.Fatalf("got %+v", gd)
	}

	list, err := st.ListDatasets(ctx, "s1")
	if err != nil || len(list) != 1 {
		t.Fatalf("ListDatasets: %v %v", list, err)
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	st := survey.NewInMemoryStore()

	if _, err := st.GetSurvey(ctx, "nope"); !errors.Is(err, survey.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if err := st.PutDataset(ctx, survey.Dataset{ID: "d", SurveyID: "nope"}); !errors.Is(err, survey.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound (dataset for unknown survey)", err)
	}
	if _, err := st.GetDataset(ctx, "s", "d"); !errors.Is(err, survey.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreDatasetScopedBySurvey(t *testing.T) {
	ctx := context.Background()
	st := survey.NewInMemoryStore()
	_ = st.PutSurvey(ctx, survey.Survey{ID: "s1"})
	_ = st.PutSurvey(ctx, survey.Survey{ID: "s2"})
	_ = st.PutDataset(ctx, survey.Dataset{ID: "d1", SurveyID: "s1"})

	if _, err := st.GetDataset(ctx, "s2", "d1"); !errors.Is(err, survey.ErrNotFound) {
		t.Fatalf("dataset must not be visible under another survey, err = %v", err)
	}
}
