package survey

import (
	"context"
	"database/sql"
	"time"
)

// Event is one row of the ingest audit log: survey uploads and dataset
// ingests, with a JSON payload describing what was loaded.
type Event struct {
	Offset    int64
	Type      string // e.g. SurveyUploaded, DatasetIngested
	Key       string // survey or dataset ID
	DataJSON  string
	CreatedAt int64
}

type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

func (r *EventRepo) Append(ctx context.Context, e Event) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4)`,
		e.Type, e.Key, e.DataJSON, time.Now().Unix())
	return err
}
