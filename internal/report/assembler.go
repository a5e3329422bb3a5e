// Package report reconciles a canonical survey definition against a
// tabulated export: per (question x breakout-group) cell it produces option
// match counts, integer percentages summing to 100, and — for questions that
// carry a numeric reading — a count-weighted average.
package report

import (
	"errors"
	"fmt"

	"github.com/surveyforge/tabulator/internal/apportion"
	"github.com/surveyforge/tabulator/internal/resolve"
	"github.com/surveyforge/tabulator/internal/scales"
	"github.com/surveyforge/tabulator/internal/survey"
	"github.com/surveyforge/tabulator/internal/tabdata"
)

// ErrNoDataColumn signals that the export has no column for a requested
// question. The caller renders an explicit "not available" cell; the error
// is never absorbed into zero counts.
var ErrNoDataColumn = errors.New("no data column for question")

// Cell is one question's reconciled numbers for one respondent group.
type Cell struct {
	QuestionID int    `json:"question_id"`
	Group      string `json:"group,omitempty"` // empty = all respondents

	Available   bool  `json:"available"`
	Respondents int   `json:"respondents"` // valid (non-skipped) respondents
	Counts      []int `json:"counts"`      // per option, same order as the definition
	Percentages []int `json:"percentages"` // per option, sums to exactly 100

	AverageLabel string   `json:"average_label,omitempty"`
	Average      *float64 `json:"average,omitempty"`

	// Overcount is set when the resolver cascade assigned more respondents
	// than the column holds: two options claimed the same raw token. The
	// numbers are still reported (matching reproduces the reference
	// cascade) but the cell is flagged as a data-quality problem.
	Overcount bool `json:"overcount,omitempty"`
}

// Report is the full reconciliation of one dataset.
type Report struct {
	SurveyID  string   `json:"survey_id"`
	DatasetID string   `json:"dataset_id,omitempty"`
	Breakout  int      `json:"breakout_question,omitempty"`
	Groups    []string `json:"groups,omitempty"`
	Cells     []Cell   `json:"cells"`
}

// Assembler holds the per-run configuration. CodeMappingEnabled reinstates
// the irregular letter-code detector (off in the reference behavior); Logf
// receives data-quality diagnostics and defaults to a no-op.
type Assembler struct {
	CodeMappingEnabled bool
	Logf               func(format string, args ...any)
}

func (a *Assembler) logf(format string, args ...any) {
	if a.Logf != nil {
		a.Logf(format, args...)
	}
}

// Build reconciles every question, either over the whole dataset or — when
// breakoutID > 0 — once per breakout group. A missing breakout column is an
// error; a missing question column yields an unavailable cell.
func (a *Assembler) Build(s *survey.Survey, ds *tabdata.Dataset, breakoutID int) (*Report, error) {
	rep := &Report{SurveyID: s.ID, Breakout: breakoutID}

	if breakoutID <= 0 {
		for qi, q := range s.Questions {
			rep.Cells = append(rep.Cells, a.cell(q, ds.Column(q.ID), "", qi == len(s.Questions)-1))
		}
		return rep, nil
	}

	labels, rows := ds.Groups(breakoutID)
	if labels == nil {
		return nil, fmt.Errorf("breakout question %d: %w", breakoutID, ErrNoDataColumn)
	}
	rep.Groups = labels
	for qi, q := range s.Questions {
		col := ds.Column(q.ID)
		last := qi == len(s.Questions)-1
		for _, label := range labels {
			var sub *tabdata.Column
			if col != nil {
				sub = col.Filter(rows[label])
			}
			rep.Cells = append(rep.Cells, a.cell(q, sub, label, last))
		}
	}
	return rep, nil
}

// cell reconciles one question against one (possibly group-filtered) column.
func (a *Assembler) cell(q survey.Question, col *tabdata.Column, group string, isLast bool) Cell {
	c := Cell{QuestionID: q.ID, Group: group}
	if col == nil {
		return c
	}
	c.Available = true

	values, counts := col.Distinct()
	c.Respondents = col.Valid()

	codes := resolve.BuildCodeMap(values, len(q.Options), a.CodeMappingEnabled)

	c.Counts = make([]int, len(q.Options))
	matchedTotal := 0
	for i, opt := range q.Options {
		for _, v := range resolve.Resolve(opt, i, values, codes) {
			c.Counts[i] += counts[v]
		}
		matchedTotal += c.Counts[i]
	}

	// Two strategies claiming the same token double-counts it. Detect and
	// surface rather than silently distorting percentages.
	if matchedTotal > c.Respondents {
		c.Overcount = true
		a.logf("question %d group %q: matched %d of %d valid respondents (double-counted token)",
			q.ID, group, matchedTotal, c.Respondents)
	}

	proportions := make([]float64, len(q.Options))
	if c.Respondents > 0 {
		for i, n := range c.Counts {
			proportions[i] = float64(n) / float64(c.Respondents)
		}
	}
	c.Percentages = apportion.Apportion(proportions)

	if cfg := scales.Classify(q.Text, q.Options, isLast); cfg != nil {
		c.AverageLabel = cfg.Label
		if avg, ok := scales.Average(values, counts, cfg); ok {
			c.Average = &avg
		}
	}
	return c
}
