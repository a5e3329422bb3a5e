package tabdata

import (
	"reflect"
	"strings"
	"testing"
)

func TestLoadCSV(t *testing.T) {
	in := strings.Join([]string{
		"respondent,Q1,q2,notes",
		"r1,Agree,a,whatever",
		"r2,Disagree,b,",
		"r3,,a,",
	}, "\n")
	ds, err := LoadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if ds.Rows != 3 {
		t.Fatalf("rows = %d, want 3", ds.Rows)
	}
	if ds.Column(99) != nil {
		t.Fatal("unexpected column for unknown question")
	}
	c1 := ds.Column(1)
	if c1 == nil {
		t.Fatal("missing Q1 column")
	}
	if !reflect.DeepEqual(c1.Tokens, []string{"Agree", "Disagree", ""}) {
		t.Fatalf("Q1 tokens = %v", c1.Tokens)
	}
	if c1.Valid() != 2 {
		t.Fatalf("Q1 valid = %d, want 2", c1.Valid())
	}
	c2 := ds.Column(2)
	values, counts := c2.Distinct()
	if !reflect.DeepEqual(values, []string{"a", "b"}) {
		t.Fatalf("Q2 distinct = %v", values)
	}
	if counts["a"] != 2 || counts["b"] != 1 {
		t.Fatalf("Q2 counts = %v", counts)
	}
}

func TestLoadCSVBareNumericHeader(t *testing.T) {
	ds, err := LoadCSV(strings.NewReader("7\nyes\nno\n"))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if got := ds.Column(7); got == nil || len(got.Tokens) != 2 {
		t.Fatalf("column 7 = %+v", got)
	}
}

func TestLoadCSVNoQuestionColumns(t *testing.T) {
	if _, err := LoadCSV(strings.NewReader("name,notes\na,b\n")); err == nil {
		t.Fatal("expected error for header without question columns")
	}
}

func TestLoadCSVShortRowsPadded(t *testing.T) {
	ds, err := LoadCSV(strings.NewReader("Q1,Q2\nonly\n"))
	if err != nil {
		t.Fatalf("LoadCSV: %v", err)
	}
	if got := ds.Column(2).Tokens; !reflect.DeepEqual(got, []string{""}) {
		t.Fatalf("Q2 tokens = %v", got)
	}
}

func TestDistinctFirstSeenOrder(t *testing.T) {
	c := &Column{Tokens: []string{"b", "a", "b", "", "c", "a"}}
	values, counts := c.Distinct()
	if !reflect.DeepEqual(values, []string{"b", "a", "c"}) {
		t.Fatalf("values = %v", values)
	}
	if counts["b"] != 2 || counts["a"] != 2 || counts["c"] != 1 {
		t.Fatalf("counts = %v", counts)
	}
}

func TestFilterAndGroups(t *testing.T) {
	ds := &Dataset{
		Rows: 4,
		Columns: map[int]*Column{
			1: {Name: "Q1", Tokens: []string{"x", "y", "x", ""}},
			2: {Name: "Q2", Tokens: []string{"Agree", "Agree", "Disagree", "Agree"}},
		},
	}
	labels, rows := ds.Groups(1)
	if !reflect.DeepEqual(labels, []string{"x", "y"}) {
		t.Fatalf("labels = %v", labels)
	}
	sub := ds.Column(2).Filter(rows["x"])
	if !reflect.DeepEqual(sub.Tokens, []string{"Agree", "Disagree"}) {
		t.Fatalf("filtered tokens = %v", sub.Tokens)
	}
	// Respondent 3 skipped the breakout question and lands in no group.
	total := 0
	for _, r := range rows {
		total += len(r)
	}
	if total != 3 {
		t.Fatalf("grouped respondents = %d, want 3", total)
	}
}
