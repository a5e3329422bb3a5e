// Package tabdata models a tabulated survey export: one row-aligned column of
// raw respondent tokens per question, plus the CSV loader that builds them.
package tabdata

import "strconv"

// Column holds one question's raw tokens, one per respondent, in row order.
// An empty token means the respondent skipped the question; skipped rows are
// excluded from every denominator.
type Column struct {
	Name   string
	Tokens []string
}

// Distinct returns the column's distinct non-empty tokens in first-seen
// order, with per-token respondent counts. First-seen order matters: the
// leading-number resolver strategy claims the first matching token.
func (c *Column) Distinct() (values []string, counts map[string]int) {
	counts = make(map[string]int)
	for _, t := range c.Tokens {
		if t == "" {
			continue
		}
		if _, seen := counts[t]; !seen {
			values = append(values, t)
		}
		counts[t]++
	}
	return values, counts
}

// Valid counts respondents who answered (non-empty token).
func (c *Column) Valid() int {
	n := 0
	for _, t := range c.Tokens {
		if t != "" {
			n++
		}
	}
	return n
}

// Filter returns a new column containing only the given row indices, in
// order. Out-of-range indices are ignored.
func (c *Column) Filter(rows []int) *Column {
	out := &Column{Name: c.Name}
	for _, i := range rows {
		if i >= 0 && i < len(c.Tokens) {
			out.Tokens = append(out.Tokens, c.Tokens[i])
		}
	}
	return out
}

// Dataset maps question IDs to row-aligned columns.
type Dataset struct {
	Columns map[int]*Column
	Rows    int
}

// FromStored rebuilds a Dataset from the persisted representation
// (question ID -> per-respondent tokens).
func FromStored(columns map[int][]string, rows int) *Dataset {
	ds := &Dataset{Columns: make(map[int]*Column, len(columns)), Rows: rows}
	for id, tokens := range columns {
		ds.Columns[id] = &Column{Name: "Q" + strconv.Itoa(id), Tokens: tokens}
	}
	return ds
}

// Column returns the column for a question ID, or nil if the export had no
// matching header.
func (d *Dataset) Column(questionID int) *Column {
	if d == nil {
		return nil
	}
	return d.Columns[questionID]
}

// Groups partitions respondent rows by their answer to the breakout
// question. Group labels are the breakout column's distinct tokens in
// first-seen order; respondents who skipped the breakout question belong to
// no group.
func (d *Dataset) Groups(breakoutID int) (labels []string, rows map[string][]int) {
	col := d.Column(breakoutID)
	if col == nil {
		return nil, nil
	}
	rows = make(map[string][]int)
	for i, t := range col.Tokens {
		if t == "" {
			continue
		}
		if _, seen := rows[t]; !seen {
			labels = append(labels, t)
		}
		rows[t] = append(rows[t], i)
	}
	return labels, rows
}
