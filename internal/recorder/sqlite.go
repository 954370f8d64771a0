package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"AstroEngine/internal/model"
)

// SQLiteRecorder persists run history to a SQLite database.
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

	// WAL mode for better concurrent read performance.
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
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			evaluated_at     INTEGER NOT NULL,
			almuten          TEXT,
			profected_sign   TEXT,
			year_lord        TEXT,
			evidence_count   INTEGER,
			dropped_count    INTEGER,
			suppressed_count INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS evidence (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      INTEGER NOT NULL REFERENCES runs(id),
			kind        TEXT,
			subject     TEXT,
			claim       TEXT,
			base_score  REAL,
			final_score REAL,
			tier        TEXT,
			multipliers TEXT,
			reasons     TEXT,
			dropped     INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_evidence_run ON evidence(run_id)`,

		`CREATE TABLE IF NOT EXISTS suppressions (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id        INTEGER NOT NULL REFERENCES runs(id),
			claim         TEXT,
			loser_subject TEXT,
			loser_kind    TEXT,
			won_by        TEXT,
			rule          TEXT,
			detail        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_suppressions_run ON suppressions(run_id)`,

		`CREATE TABLE IF NOT EXISTS transitions (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			technique TEXT,
			from_lord TEXT,
			to_lord   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transitions_ts ON transitions(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO runs
		(timestamp, evaluated_at, almuten, profected_sign, year_lord,
		 evidence_count, dropped_count, suppressed_count)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.EvaluatedAt.Unix(),
		string(rec.Almuten), rec.ProfectedSign.String(), string(rec.YearLord),
		len(rec.Evidence), len(rec.Dropped), len(rec.Suppressions),
	)
	if err != nil {
		return err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for i := range rec.Evidence {
		if err := insertEvidenceRow(tx, runID, &rec.Evidence[i], false); err != nil {
			return err
		}
	}
	for i := range rec.Dropped {
		if err := insertEvidenceRow(tx, runID, &rec.Dropped[i], true); err != nil {
			return err
		}
	}

	for _, s := range rec.Suppressions {
		if _, err := tx.Exec(`INSERT INTO suppressions
			(run_id, claim, loser_subject, loser_kind, won_by, rule, detail)
			VALUES (?,?,?,?,?,?,?)`,
			runID, s.Claim, s.Loser.Subject, string(s.Loser.Kind), s.WonBy, s.Rule, s.Detail,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertEvidenceRow(tx *sql.Tx, runID int64, e *model.Evidence, dropped bool) error {
	mults := make([]string, len(e.AppliedMultipliers))
	for i, m := range e.AppliedMultipliers {
		mults[i] = fmt.Sprintf("%s=%.2f", m.Name, m.Factor)
	}
	droppedFlag := 0
	if dropped {
		droppedFlag = 1
	}
	_, err := tx.Exec(`INSERT INTO evidence
		(run_id, kind, subject, claim, base_score, final_score, tier, multipliers, reasons, dropped)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		runID, string(e.Kind), e.Subject, e.Claim,
		e.BaseScore, e.FinalScore, string(e.Tier),
		strings.Join(mults, ","), strings.Join(e.Reasons, "; "), droppedFlag,
	)
	return err
}

func (r *SQLiteRecorder) RecordTransition(evt *TransitionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO transitions
		(timestamp, technique, from_lord, to_lord)
		VALUES (?,?,?,?)`,
		evt.At.Unix(), evt.Technique, evt.From, evt.To,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
