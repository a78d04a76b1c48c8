// Package storage persists yield evaluation history in SQLite.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/fd1az/hermes-yield/business/yield/domain"
	"github.com/fd1az/hermes-yield/internal/apperror"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id     TEXT PRIMARY KEY,
    run_at INTEGER  NOT NULL, -- unix milliseconds
    vaults INTEGER  NOT NULL DEFAULT 0
);

-- NULL marks an unavailable figure.
CREATE TABLE IF NOT EXISTS vault_yields (
    run_id         TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    name           TEXT NOT NULL,
    kind           TEXT NOT NULL,
    pair           TEXT NOT NULL,
    amm            TEXT NOT NULL,
    simple_apr     REAL,
    trading_apr    REAL NOT NULL DEFAULT 0,
    trading_reason TEXT NOT NULL DEFAULT '',
    vault_apr      REAL,
    vault_apy      REAL,
    total_apy      REAL,
    PRIMARY KEY (run_id, name)
);

CREATE INDEX IF NOT EXISTS idx_runs_at ON runs(run_at DESC);
`

// SQLiteRecorder stores each evaluation run with its vault yields.
type SQLiteRecorder struct {
	db *sql.DB
}

// NewSQLiteRecorder opens (or creates) the database at path.
func NewSQLiteRecorder(path string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, apperror.Internal(apperror.CodeStorageFailed, "open "+path, err)
	}
	db.SetMaxOpenConns(1) // single writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, apperror.Internal(apperror.CodeStorageFailed, "apply schema", err)
	}

	return &SQLiteRecorder{db: db}, nil
}

// Record inserts one run and returns its generated id.
func (r *SQLiteRecorder) Record(ctx context.Context, runAt time.Time, yields []domain.PoolYield) (string, error) {
	runID := uuid.NewString()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", apperror.Internal(apperror.CodeStorageFailed, "begin tx", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, run_at, vaults) VALUES (?, ?, ?)`,
		runID, runAt.UnixMilli(), len(yields),
	); err != nil {
		return "", apperror.Internal(apperror.CodeStorageFailed, "insert run", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vault_yields
			(run_id, name, kind, pair, amm, simple_apr, trading_apr, trading_reason, vault_apr, vault_apy, total_apy)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", apperror.Internal(apperror.CodeStorageFailed, "prepare insert", err)
	}
	defer stmt.Close()

	for _, y := range yields {
		res := y.Result
		if _, err := stmt.ExecContext(ctx,
			runID, y.Name, string(y.Kind), y.Pair.Hex(), y.AMM.String(),
			nullRate(res.SimpleApr),
			res.TradingApr.Value, string(res.TradingApr.Reason),
			nullRate(res.VaultApr), nullRate(res.VaultApy), nullRate(res.TotalApy),
		); err != nil {
			return "", apperror.Internal(apperror.CodeStorageFailed, "insert vault "+y.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", apperror.Internal(apperror.CodeStorageFailed, "commit", err)
	}
	return runID, nil
}

// RunSummary is one stored run.
type RunSummary struct {
	ID     string
	RunAt  time.Time
	Vaults int
}

// RecentRuns returns up to limit runs, newest first.
func (r *SQLiteRecorder) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, run_at, vaults FROM runs ORDER BY run_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, apperror.Internal(apperror.CodeStorageFailed, "query runs", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var (
			s     RunSummary
			runAt int64
		)
		if err := rows.Scan(&s.ID, &runAt, &s.Vaults); err != nil {
			return nil, apperror.Internal(apperror.CodeStorageFailed, "scan run", err)
		}
		s.RunAt = time.UnixMilli(runAt).UTC()
		runs = append(runs, s)
	}
	return runs, rows.Err()
}

// StoredYield is a vault row of a run. Nil pointers are unavailable figures.
type StoredYield struct {
	Name          string
	Kind          domain.VaultKind
	AMM           string
	SimpleApr     *float64
	TradingApr    float64
	TradingReason domain.UnavailableReason
	VaultApr      *float64
	VaultApy      *float64
	TotalApy      *float64
}

// RunYields returns the vault rows of a run ordered by name.
func (r *SQLiteRecorder) RunYields(ctx context.Context, runID string) ([]StoredYield, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, kind, amm, simple_apr, trading_apr, trading_reason, vault_apr, vault_apy, total_apy
		FROM vault_yields WHERE run_id = ? ORDER BY name`, runID)
	if err != nil {
		return nil, apperror.Internal(apperror.CodeStorageFailed, "query vault yields", err)
	}
	defer rows.Close()

	var out []StoredYield
	for rows.Next() {
		var (
			y                                    StoredYield
			kind, reason                         string
			simple, vaultApr, vaultApy, totalApy sql.NullFloat64
		)
		if err := rows.Scan(&y.Name, &kind, &y.AMM, &simple, &y.TradingApr, &reason, &vaultApr, &vaultApy, &totalApy); err != nil {
			return nil, apperror.Internal(apperror.CodeStorageFailed, "scan vault yield", err)
		}
		y.Kind = domain.VaultKind(kind)
		y.TradingReason = domain.UnavailableReason(reason)
		y.SimpleApr = floatPtr(simple)
		y.VaultApr = floatPtr(vaultApr)
		y.VaultApy = floatPtr(vaultApy)
		y.TotalApy = floatPtr(totalApy)
		out = append(out, y)
	}
	return out, rows.Err()
}

// Prune deletes runs older than retention.
func (r *SQLiteRecorder) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).UnixMilli()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperror.Internal(apperror.CodeStorageFailed, "begin tx", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM vault_yields WHERE run_id IN (SELECT id FROM runs WHERE run_at < ?)`, cutoff); err != nil {
		return 0, apperror.Internal(apperror.CodeStorageFailed, "prune vault yields", err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE run_at < ?`, cutoff)
	if err != nil {
		return 0, apperror.Internal(apperror.CodeStorageFailed, "prune runs", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, apperror.Internal(apperror.CodeStorageFailed, "commit", err)
	}
	return res.RowsAffected()
}

// Ping checks the database connection.
func (r *SQLiteRecorder) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database.
func (r *SQLiteRecorder) Close() error {
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}
	return nil
}

func nullRate(r domain.Rate) sql.NullFloat64 {
	v, ok := r.Float64()
	return sql.NullFloat64{Float64: v, Valid: ok}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
