// Package journal keeps a local SQLite log of every submission attempt.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quentinproust/teamwork-cli/internal/config"
	"github.com/quentinproust/teamwork-cli/internal/journal/migrations"
	"github.com/quentinproust/teamwork-cli/internal/schedule"
	"github.com/quentinproust/teamwork-cli/internal/submit"

	_ "modernc.org/sqlite"
)

// Record is one journaled entry.
type Record struct {
	ID          int64
	BatchID     string
	TaskID      string
	Date        time.Time
	Hours       decimal.Decimal
	RemoteID    string
	Status      submit.Status
	Error       string
	DryRun      bool
	SubmittedAt time.Time
}

// Journal stores records in a SQLite database.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Path returns the default database location under homeDir.
func Path(homeDir string) string {
	return filepath.Join(config.Dir(homeDir), "journal.db")
}

// Open opens or creates the database at path and applies migrations.
func Open(ctx context.Context, path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := migrations.Run(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return &Journal{db: db, now: time.Now}, nil
}

func (j *Journal) Close() error {
	return j.db.Close()
}

// Record stores one submission result.
func (j *Journal) Record(ctx context.Context, batchID, taskID string, dryRun bool, r submit.Result) error {
	errText := ""
	if r.Err != nil {
		errText = r.Err.Error()
	}

	_, err := j.db.ExecContext(ctx, `
	INSERT INTO submissions (batch_id, task_id, entry_date, hours, remote_id, status, error, dry_run, submitted_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		batchID, taskID, r.Entry.Key(), r.Entry.Hours.String(), r.RemoteID,
		string(r.Status), errText, dryRun, j.now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert journal record: %w", err)
	}
	return nil
}

// Recent returns the last limit records, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	return j.query(ctx, selectRecords+" ORDER BY id DESC LIMIT ?", limit)
}

// Batch returns the records of one run in insertion order.
func (j *Journal) Batch(ctx context.Context, batchID string) ([]Record, error) {
	return j.query(ctx, selectRecords+" WHERE batch_id = ? ORDER BY id", batchID)
}

// SubmittedHours sums the hours successfully submitted per day from from
// onward, keyed by YYYY-MM-DD.
func (j *Journal) SubmittedHours(ctx context.Context, from time.Time) (map[string]decimal.Decimal, error) {
	rows, err := j.query(ctx, selectRecords+" WHERE status = ? AND entry_date >= ? ORDER BY id",
		string(submit.StatusSubmitted), schedule.Key(from))
	if err != nil {
		return nil, err
	}
	out := make(map[string]decimal.Decimal)
	for _, r := range rows {
		k := schedule.Key(r.Date)
		out[k] = out[k].Add(r.Hours)
	}
	return out, nil
}

const selectRecords = `
	SELECT id, batch_id, task_id, entry_date, hours, remote_id, status, error, dry_run, submitted_at
	FROM submissions`

func (j *Journal) query(ctx context.Context, q string, args ...any) ([]Record, error) {
	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scan(rows *sql.Rows) (Record, error) {
	var (
		r                     Record
		date, hours, at, stat string
	)
	if err := rows.Scan(&r.ID, &r.BatchID, &r.TaskID, &date, &hours, &r.RemoteID, &stat, &r.Error, &r.DryRun, &at); err != nil {
		return Record{}, fmt.Errorf("scan journal record: %w", err)
	}

	var err error
	if r.Date, err = time.Parse(schedule.DateLayout, date); err != nil {
		return Record{}, fmt.Errorf("record %d: bad date %q", r.ID, date)
	}
	if r.Hours, err = decimal.NewFromString(hours); err != nil {
		return Record{}, fmt.Errorf("record %d: bad hours %q", r.ID, hours)
	}
	if r.SubmittedAt, err = time.Parse(time.RFC3339, at); err != nil {
		return Record{}, fmt.Errorf("record %d: bad timestamp %q", r.ID, at)
	}
	r.Status = submit.Status(stat)
	return r, nil
}
