package survey

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) PutSurvey(ctx context.Context, sv Survey) error {
	qj, err := json.Marshal(sv.Questions)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO surveys (id,title,questions_json,created_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET title=EXCLUDED.title, questions_json=EXCLUDED.questions_json`,
		sv.ID, sv.Title, string(qj), time.Now().Unix())
	return err
}

func (s *SQLStore) GetSurvey(ctx context.Context, id string) (Survey, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id,title,questions_json,created_at FROM surveys WHERE id=$1`, id)
	var sv Survey
	var qjson string
	if err := row.Scan(&sv.ID, &sv.Title, &qjson, &sv.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Survey{}, ErrNotFound
		}
		return Survey{}, err
	}
	if err := json.Unmarshal([]byte(qjson), &sv.Questions); err != nil {
		return Survey{}, fmt.Errorf("decode questions for %s: %w", id, err)
	}
	return sv, nil
}

func (s *SQLStore) PutDataset(ctx context.Context, d Dataset) error {
	// ensure the survey exists so the FK error doesn't leak driver detail
	var exist int
	if err := s.db.QueryRowContext(ctx, `SELECT 1 FROM surveys WHERE id=$1`, d.SurveyID).Scan(&exist); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	cj, err := json.Marshal(d.Columns)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO datasets (id,survey_id,name,columns_json,rows,created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, columns_json=EXCLUDED.columns_json, rows=EXCLUDED.rows`,
		d.ID, d.SurveyID, d.Name, string(cj), d.Rows, time.Now().Unix())
	return err
}

func (s *SQLStore) GetDataset(ctx context.Context, surveyID, datasetID string) (Dataset, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id,survey_id,name,columns_json,rows,created_at FROM datasets WHERE id=$1 AND survey_id=$2`,
		datasetID, surveyID)
	var d Dataset
	var cjson string
	if err := row.Scan(&d.ID, &d.SurveyID, &d.Name, &cjson, &d.Rows, &d.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Dataset{}, ErrNotFound
		}
		return Dataset{}, err
	}
	if err := json.Unmarshal([]byte(cjson), &d.Columns); err != nil {
		return Dataset{}, fmt.Errorf("decode columns for %s: %w", datasetID, err)
	}
	return d, nil
}

func (s *SQLStore) ListDatasets(ctx context.Context, surveyID string) ([]Dataset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,survey_id,name,rows,created_at FROM datasets WHERE survey_id=$1 ORDER BY created_at`,
		surveyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Dataset
	for rows.Next() {
		var d Dataset
		if err := rows.Scan(&d.ID, &d.SurveyID, &d.Name, &d.Rows, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
