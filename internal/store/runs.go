package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"notary-crawler/internal/domain"
)

// fixed width so stored timestamps sort as text
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run is one archived crawl.
type Run struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	City       string
	Pages      int
	Candidates int
	Kept       int
	Skipped    int
	CSVPath    string
}

// SaveRun stores run and its canonical records in one transaction and
// returns the new run id.
func SaveRun(ctx context.Context, db *sql.DB, run Run, ns []domain.Notary) (int64, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
INSERT INTO runs(started_at, finished_at, city, pages, candidates, kept, skipped, csv_path)
VALUES(?,?,?,?,?,?,?,?);`,
		run.StartedAt.UTC().Format(timeLayout),
		run.FinishedAt.UTC().Format(timeLayout),
		run.City,
		run.Pages,
		run.Candidates,
		run.Kept,
		run.Skipped,
		run.CSVPath,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO notaries(run_id, position, name, mail, phone, website, address)
VALUES(?,?,?,?,?,?,?);`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, n := range ns {
		if _, err := stmt.ExecContext(ctx, id, i, n.Name, n.Mail, n.Phone, n.Website, n.Address); err != nil {
			return 0, fmt.Errorf("insert notary %d: %w", i, err)
		}
	}

	return id, tx.Commit()
}

// ListRuns returns the most recent runs first.
func ListRuns(ctx context.Context, db *sql.DB, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, started_at, finished_at, city, pages, candidates, kept, skipped, csv_path
FROM runs
ORDER BY started_at DESC, id DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &started, &finished, &r.City, &r.Pages, &r.Candidates, &r.Kept, &r.Skipped, &r.CSVPath); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(timeLayout, started)
		r.FinishedAt, _ = time.Parse(timeLayout, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

var ErrRunNotFound = errors.New("run not found")

// RunNotaries returns the records archived for run id, in export order.
func RunNotaries(ctx context.Context, db *sql.DB, id int64) ([]domain.Notary, error) {
	var one int
	err := db.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ? LIMIT 1;`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
SELECT name, mail, phone, website, address
FROM notaries
WHERE run_id = ?
ORDER BY position;`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Notary
	for rows.Next() {
		var n domain.Notary
		if err := rows.Scan(&n.Name, &n.Mail, &n.Phone, &n.Website, &n.Address); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// CleanupOldRuns drops archived runs older than keep.
func CleanupOldRuns(ctx context.Context, db *sql.DB, keep time.Duration) (deleted int64, err error) {
	cutoff := time.Now().Add(-keep).UTC().Format(timeLayout)
	if _, err := db.ExecContext(ctx, `
DELETE FROM notaries WHERE run_id IN (SELECT id FROM runs WHERE started_at < ?);`, cutoff); err != nil {
		return 0, fmt.Errorf("cleanup old notaries: %w", err)
	}
	res, err := db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup old runs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
