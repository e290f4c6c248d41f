package output

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/shopfloor-sim/shopfloor-sim/sim"
)

// SQLiteWriter writes the event log into a SQLite database: one row in
// runs per invocation, one row in production_records per record. All
// inserts happen inside a single transaction, so a failed write leaves
// no partial run behind.
type SQLiteWriter struct {
	Path string
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	created_at   TIMESTAMP NOT NULL,
	record_count INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS production_records (
	run_id             TEXT NOT NULL REFERENCES runs(id),
	ts                 TEXT NOT NULL,
	machine_id         TEXT NOT NULL,
	product_id         TEXT NOT NULL,
	lot_number         TEXT NOT NULL,
	cycle_time_seconds REAL NOT NULL,
	status             TEXT NOT NULL,
	error_code         TEXT NOT NULL,
	operator_id        TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_production_records_run_ts
	ON production_records (run_id, ts);
`

// Write persists the records to the database at w.Path, creating the
// schema on first use.
func (w *SQLiteWriter) Write(runID string, records []sim.ProductionRecord) error {
	db, err := sql.Open("sqlite3", w.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	if _, err := tx.Exec(
		`INSERT INTO runs (id, created_at, record_count) VALUES (?, ?, ?)`,
		runID, time.Now().UTC(), len(records),
	); err != nil {
		return fmt.Errorf("insert run %s: %w", runID, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO production_records
			(run_id, ts, machine_id, product_id, lot_number, cycle_time_seconds, status, error_code, operator_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(
			runID,
			r.Timestamp.Format(timestampLayout),
			r.MachineID,
			r.ProductID,
			r.LotNumber,
			r.CycleTimeSeconds,
			string(r.Status),
			r.ErrorCode,
			r.OperatorID,
		); err != nil {
			return fmt.Errorf("insert record for %s: %w", r.MachineID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", runID, err)
	}
	return nil
}
