package db

import (
	"database/sql"
	"fmt"
	"time"
)

// InsertRun stores a finished run and its per-day rows in one transaction.
func InsertRun(db *sql.DB, r Run, clips []RunClip) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin insert run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(InsertRunSQL,
		r.ID, r.StartedAt, r.FinishedAt, r.SourceDir, r.OutputPath, r.Policy, r.Seed,
		r.ClipDuration, r.Status, r.ClipCount, r.SkippedCount, r.OutputSize, r.Error,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, c := range clips {
		if _, err := tx.Exec(InsertRunClipSQL, r.ID, c.Day, c.SourcePath, c.Status, c.Stage, c.Reason); err != nil {
			return fmt.Errorf("insert run clip %s: %w", c.Day, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// SelectRuns returns the most recent runs, newest first.
func SelectRuns(db *sql.DB, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(SelectRunsSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// SelectRunByPrefix resolves a full or abbreviated run ID. It fails when the
// prefix matches no run or more than one.
func SelectRunByPrefix(db *sql.DB, prefix string) (*Run, error) {
	rows, err := db.Query(SelectRunsByPrefixSQL, prefix)
	if err != nil {
		return nil, fmt.Errorf("select run %s: %w", prefix, err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	switch len(runs) {
	case 0:
		return nil, fmt.Errorf("run not found: %s", prefix)
	case 1:
		return &runs[0], nil
	default:
		return nil, fmt.Errorf("run ID %s is ambiguous (%d matches)", prefix, len(runs))
	}
}

// SelectRunClips returns a run's per-day rows ordered by day.
func SelectRunClips(db *sql.DB, runID string) ([]RunClip, error) {
	rows, err := db.Query(SelectRunClipsSQL, runID)
	if err != nil {
		return nil, fmt.Errorf("select run clips: %w", err)
	}
	defer rows.Close()

	var clips []RunClip
	for rows.Next() {
		var c RunClip
		if err := rows.Scan(&c.ID, &c.RunID, &c.Day, &c.SourcePath, &c.Status, &c.Stage, &c.Reason); err != nil {
			return nil, fmt.Errorf("scan run clip: %w", err)
		}
		clips = append(clips, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run clips: %w", err)
	}
	return clips, nil
}

// DeleteRunsBefore prunes runs started before cutoff; their clips go with
// them through the foreign key cascade.
func DeleteRunsBefore(db *sql.DB, cutoff time.Time) (int64, error) {
	result, err := db.Exec(DeleteRunsBeforeSQL, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete runs: %w", err)
	}
	return result.RowsAffected()
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.ID, &r.StartedAt, &r.FinishedAt, &r.SourceDir, &r.OutputPath, &r.Policy, &r.Seed,
			&r.ClipDuration, &r.Status, &r.ClipCount, &r.SkippedCount, &r.OutputSize, &r.Error,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
