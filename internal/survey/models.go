package survey

// Question is one canonical survey question. Options are ordered; an
// option's index is semantically meaningful (several resolver strategies map
// positions to scale values when text matching fails).
type Question struct {
	ID      int      `json:"id"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

// Survey is a canonical survey definition, immutable once loaded. Question
// IDs are stable and locate the matching column in a tabulated export.
type Survey struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`

	CreatedAt int64 `json:"created_at,omitempty"`
}

// Dataset is one stored tabulated export for a survey. Columns are persisted
// row-aligned so breakout grouping can partition respondents.
type Dataset struct {
	ID       string           `json:"id"`
	SurveyID string           `json:"survey_id"`
	Name     string           `json:"name"`
	Columns  map[int][]string `json:"columns"` // question ID -> per-respondent tokens
	Rows     int              `json:"rows"`

	CreatedAt int64 `json:"created_at,omitempty"`
}
