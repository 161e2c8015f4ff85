// Package store provides SQLite-based persistence for verification runs:
// the look-elsewhere parameters, aggregate statistics, and a retained
// prefix of the sample set behind each evidence figure.
package store

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/lemniscate-alpha/internal/quadratic"
	"github.com/talgya/lemniscate-alpha/internal/sweep"
)

// DB wraps a SQLite connection for run persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		samples INTEGER NOT NULL,
		seed INTEGER NOT NULL,
		gstar REAL NOT NULL,
		gstar_var_pct REAL NOT NULL,
		k_center REAL NOT NULL,
		k_var REAL NOT NULL,
		threshold_ppm REAL NOT NULL,
		reference REAL NOT NULL,
		matches INTEGER NOT NULL,
		no_real_roots INTEGER NOT NULL,
		match_fraction REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_samples (
		run_id TEXT NOT NULL,
		idx INTEGER NOT NULL,
		gstar REAL NOT NULL,
		k REAL NOT NULL,
		x_plus REAL NOT NULL,
		x_minus REAL NOT NULL,
		ppm REAL NOT NULL,
		no_real_root INTEGER NOT NULL,
		PRIMARY KEY (run_id, idx)
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_samples_run ON run_samples(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Run is one persisted look-elsewhere run.
type Run struct {
	ID            string  `db:"id"`
	CreatedAt     string  `db:"created_at"`
	Samples       int     `db:"samples"`
	Seed          int64   `db:"seed"`
	GStar         float64 `db:"gstar"`
	GStarVarPct   float64 `db:"gstar_var_pct"`
	KCenter       float64 `db:"k_center"`
	KVar          float64 `db:"k_var"`
	ThresholdPPM  float64 `db:"threshold_ppm"`
	Reference     float64 `db:"reference"`
	Matches       int     `db:"matches"`
	NoRealRoots   int     `db:"no_real_roots"`
	MatchFraction float64 `db:"match_fraction"`
}

// SaveRun persists a Monte Carlo result and at most keepSamples of its
// retained samples. Returns the new run's ID.
func (db *DB) SaveRun(res *sweep.Result, keepSamples int) (string, error) {
	id := uuid.NewString()
	cfg := res.Config

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, created_at, samples, seed, gstar, gstar_var_pct, k_center, k_var,
		 threshold_ppm, reference, matches, no_real_roots, match_fraction)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339), cfg.Samples, cfg.Seed,
		cfg.GStar, cfg.GStarVarPct, cfg.KCenter, cfg.KVar,
		cfg.Threshold, cfg.Reference, res.Matches, res.NoRealRoots, res.MatchFraction,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	n := len(res.Samples)
	if keepSamples >= 0 && keepSamples < n {
		n = keepSamples
	}
	if n > 0 {
		stmt, err := tx.Preparex(`INSERT INTO run_samples
			(run_id, idx, gstar, k, x_plus, x_minus, ppm, no_real_root)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return "", err
		}
		defer stmt.Close()

		for i := 0; i < n; i++ {
			s := res.Samples[i]
			noRoot := 0
			ppm := s.PPM
			if s.NoRealRoot {
				noRoot = 1
				ppm = -1 // +Inf is not representable; flagged rows carry a sentinel
			}
			if _, err := stmt.Exec(id, i, s.GStar, s.K, s.Roots.XPlus, s.Roots.XMinus, ppm, noRoot); err != nil {
				return "", fmt.Errorf("insert sample %d: %w", i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	slog.Info("run saved", "id", id, "samples", cfg.Samples, "retained", n, "match_fraction", res.MatchFraction)
	return id, nil
}

// ListRuns returns all persisted runs, newest first.
func (db *DB) ListRuns() ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs, "SELECT * FROM runs ORDER BY created_at DESC")
	return runs, err
}

// LoadRun fetches one run and its retained samples.
func (db *DB) LoadRun(id string) (Run, []sweep.Sample, error) {
	var run Run
	if err := db.conn.Get(&run, "SELECT * FROM runs WHERE id = ?", id); err != nil {
		return Run{}, nil, fmt.Errorf("load run %s: %w", id, err)
	}

	rows, err := db.conn.Queryx(
		"SELECT gstar, k, x_plus, x_minus, ppm, no_real_root FROM run_samples WHERE run_id = ? ORDER BY idx",
		id,
	)
	if err != nil {
		return Run{}, nil, err
	}
	defer rows.Close()

	var samples []sweep.Sample
	for rows.Next() {
		var gstar, k, xp, xm, ppm float64
		var noRoot int
		if err := rows.Scan(&gstar, &k, &xp, &xm, &ppm, &noRoot); err != nil {
			return Run{}, nil, err
		}
		s := sweep.Sample{
			GStar:      gstar,
			K:          k,
			Roots:      quadratic.RootPair{XPlus: xp, XMinus: xm},
			PPM:        ppm,
			NoRealRoot: noRoot != 0,
		}
		if s.NoRealRoot {
			s.PPM = math.Inf(1)
		}
		samples = append(samples, s)
	}
	return run, samples, rows.Err()
}

// SetMeta stores a key-value pair in run metadata.
func (db *DB) SetMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO run_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM run_meta WHERE key = ?", key)
	return value, err
}
