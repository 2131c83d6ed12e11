package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"MarketCycles/internal/model"
)

// SQLiteRecorder persists analysis runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers don't block the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT,
			window_start   TEXT,
			window_end     TEXT,
			recovery_limit REAL,
			point_count    INTEGER,
			bear_count     INTEGER,
			bull_count     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS segments (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      INTEGER NOT NULL,
			kind        TEXT,
			start_date  TEXT,
			end_date    TEXT,
			start_price REAL,
			end_price   REAL,
			pct_change  REAL,
			days        INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_segments_run ON segments(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts the run row and all of its segments in one transaction.
func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO runs
		(timestamp, symbol, window_start, window_end, recovery_limit, point_count, bear_count, bull_count)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Symbol,
		rec.WindowStart.Format("2006-01-02"), rec.WindowEnd.Format("2006-01-02"),
		rec.RecoveryLimit, rec.PointCount, len(rec.Bear), len(rec.Bull),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	insert := func(segments []model.Segment) error {
		for _, seg := range segments {
			if _, err := tx.Exec(`INSERT INTO segments
				(run_id, kind, start_date, end_date, start_price, end_price, pct_change, days)
				VALUES (?,?,?,?,?,?,?,?)`,
				runID, string(seg.Kind),
				seg.StartDate.Format("2006-01-02"), seg.EndDate.Format("2006-01-02"),
				seg.StartPrice, seg.EndPrice, seg.PctChange, seg.Days,
			); err != nil {
				return fmt.Errorf("insert segment: %w", err)
			}
		}
		return nil
	}
	if err := insert(rec.Bear); err != nil {
		return err
	}
	if err := insert(rec.Bull); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
