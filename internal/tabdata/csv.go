package tabdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// LoadCSV reads a tabulated export. The header row names question columns
// "Q<id>" (a bare numeric "<id>" is accepted); headers that match neither
// form are ignored. Tokens are NFKC-folded and space-collapsed so that
// visually identical exports from different tools compare equal. Rows
// shorter than the header are padded with skips.
func LoadCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	// column index in the CSV -> question ID
	ids := make(map[int]int)
	for i, h := range header {
		if id, ok := parseQuestionHeader(h); ok {
			ids[i] = id
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no question columns in header %v", header)
	}

	ds := &Dataset{Columns: make(map[int]*Column, len(ids))}
	for i, id := range ids {
		ds.Columns[id] = &Column{Name: strings.TrimSpace(header[i])}
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", ds.Rows+2, err)
		}
		for i, id := range ids {
			token := ""
			if i < len(rec) {
				token = cleanToken(rec[i])
			}
			ds.Columns[id].Tokens = append(ds.Columns[id].Tokens, token)
		}
		ds.Rows++
	}
	return ds, nil
}

func parseQuestionHeader(h string) (int, bool) {
	h = strings.TrimSpace(h)
	h = strings.TrimPrefix(strings.ToUpper(h), "Q")
	id, err := strconv.Atoi(h)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}

// cleanToken folds the token to NFKC and collapses interior whitespace.
// Content-level normalization (quotes, punctuation) stays in textnorm; this
// only undoes encoding-level differences between export tools.
func cleanToken(s string) string {
	s = norm.NFKC.String(s)
	return strings.Join(strings.Fields(s), " ")
}
