package report_test

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/surveyforge/tabulator/internal/report"
	"github.com/surveyforge/tabulator/internal/survey"
	"github.com/surveyforge/tabulator/internal/tabdata"
)

func likertSurvey() *survey.Survey {
	return &survey.Survey{
		ID:    "s1",
		Title: "Shift feedback",
		Questions: []survey.Question{{
			ID:      1,
			Text:    "The new schedule works for me.",
			Options: []string{"Strongly Disagree", "Disagree", "Neither", "Agree", "Strongly Agree"},
		}},
	}
}

func column(tokens ...string) *tabdata.Column {
	return &tabdata.Column{Name: "Q1", Tokens: tokens}
}

func repeat(token string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = token
	}
	return out
}

func TestBuildEndToEnd(t *testing.T) {
	// 60 x "Agree", 40 x "Strongly Agree".
	tokens := append(repeat("Agree", 60), repeat("Strongly Agree", 40)...)
	ds := &tabdata.Dataset{Rows: 100, Columns: map[int]*tabdata.Column{1: column(tokens...)}}

	rep, err := (&report.Assembler{}).Build(likertSurvey(), ds, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(rep.Cells) != 1 {
		t.Fatalf("cells = %d", len(rep.Cells))
	}
	c := rep.Cells[0]
	if !c.Available || c.Respondents != 100 {
		t.Fatalf("cell = %+v", c)
	}
	if !reflect.DeepEqual(c.Counts, []int{0, 0, 0, 60, 40}) {
		t.Fatalf("counts = %v", c.Counts)
	}
	if !reflect.DeepEqual(c.Percentages, []int{0, 0, 0, 60, 40}) {
		t.Fatalf("percentages = %v", c.Percentages)
	}
	if c.AverageLabel != "Average Score" || c.Average == nil {
		t.Fatalf("average missing: %+v", c)
	}
	if math.Abs(*c.Average-4.4) > 1e-9 {
		t.Fatalf("average = %v, want 4.4", *c.Average)
	}
	if c.Overcount {
		t.Fatal("unexpected overcount flag")
	}
}

func TestBuildSkippedRespondentsExcluded(t *testing.T) {
	tokens := append(repeat("Agree", 3), "", "", "Disagree")
	ds := &tabdata.Dataset{Rows: 6, Columns: map[int]*tabdata.Column{1: column(tokens...)}}

	rep, err := (&report.Assembler{}).Build(likertSurvey(), ds, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	c := rep.Cells[0]
	if c.Respondents != 4 {
		t.Fatalf("respondents = %d, want 4 (skips excluded)", c.Respondents)
	}
	if !reflect.DeepEqual(c.Percentages, []int{0, 25, 0, 75, 0}) {
		t.Fatalf("percentages = %v", c.Percentages)
	}
}

func TestBuildMissingColumn(t *testing.T) {
	ds := &tabdata.Dataset{Rows: 0, Columns: map[int]*tabdata.Column{}}
	rep, err := (&report.Assembler{}).Build(likertSurvey(), ds, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rep.Cells[0].Available {
		t.Fatal("cell for missing column must be unavailable")
	}
}

func TestBuildMissingBreakoutColumn(t *testing.T) {
	ds := &tabdata.Dataset{Rows: 0, Columns: map[int]*tabdata.Column{}}
	_, err := (&report.Assembler{}).Build(likertSurvey(), ds, 9)
	if !errors.Is(err, report.ErrNoDataColumn) {
		t.Fatalf("err = %v, want ErrNoDataColumn", err)
	}
}

func TestBuildBreakoutGroups(t *testing.T) {
	s := likertSurvey()
	s.Questions = append(s.Questions, survey.Question{ID: 2, Text: "Which shift do you work?", Options: []string{"Days", "Nights"}})
	ds := &tabdata.Dataset{
		Rows: 4,
		Columns: map[int]*tabdata.Column{
			1: column("Agree", "Disagree", "Agree", "Agree"),
			2: {Name: "Q2", Tokens: []string{"Days", "Days", "Nights", "Nights"}},
		},
	}
	rep, err := (&report.Assembler{}).Build(s, ds, 2)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(rep.Groups, []string{"Days", "Nights"}) {
		t.Fatalf("groups = %v", rep.Groups)
	}
	// Two questions x two groups.
	if len(rep.Cells) != 4 {
		t.Fatalf("cells = %d", len(rep.Cells))
	}
	days := rep.Cells[0]
	if days.Group != "Days" || days.Respondents != 2 {
		t.Fatalf("days cell = %+v", days)
	}
	if !reflect.DeepEqual(days.Counts, []int{0, 1, 0, 1, 0}) {
		t.Fatalf("days counts = %v", days.Counts)
	}
	nights := rep.Cells[1]
	if nights.Group != "Nights" || !reflect.DeepEqual(nights.Counts, []int{0, 0, 0, 2, 0}) {
		t.Fatalf("nights cell = %+v", nights)
	}
}

func TestBuildOvercountFlag(t *testing.T) {
	// "Agree" options at two positions both claim the same raw token.
	s := &survey.Survey{
		ID: "s2",
		Questions: []survey.Question{{
			ID:      1,
			Text:    "Doubled options",
			Options: []string{"Agree", "agree"},
		}},
	}
	ds := &tabdata.Dataset{Rows: 2, Columns: map[int]*tabdata.Column{1: column("Agree", "Agree")}}

	var logged strings.Builder
	a := &report.Assembler{Logf: func(format string, args ...any) {
		logged.WriteString(format)
	}}
	rep, err := a.Build(s, ds, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !rep.Cells[0].Overcount {
		t.Fatal("expected overcount flag")
	}
	if logged.Len() == 0 {
		t.Fatal("expected a diagnostic log line")
	}
}

func TestBuildLastQuestionOvertime(t *testing.T) {
	s := &survey.Survey{
		ID: "s3",
		Questions: []survey.Question{{
			ID:      4,
			Text:    "Final comments", // designated last question carries the overtime scale
			Options: []string{"None", "1 to 5 hours", "5 to 10 hours", "10 to 15 hours", "All I can get"},
		}},
	}
	ds := &tabdata.Dataset{Rows: 2, Columns: map[int]*tabdata.Column{4: {Name: "Q4", Tokens: []string{"None", "All I can get"}}}}
	rep, err := (&report.Assembler{}).Build(s, ds, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	c := rep.Cells[0]
	if c.AverageLabel != "Average Hours" || c.Average == nil {
		t.Fatalf("cell = %+v", c)
	}
	if math.Abs(*c.Average-7.5) > 1e-9 {
		t.Fatalf("average = %v, want 7.5", *c.Average)
	}
}
