package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"smartsort/internal/services"
)

//go:embed schema.sql
var schemaSQL string

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// schemaVersion is the current schema version. Bump this when the schema changes.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Store manages run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure journal directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to start a fresh history)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx = ensureContext(ctx)
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}

// BeginRun inserts a run row in the running state.
func (s *Store) BeginRun(ctx context.Context, run Run) error {
	if strings.TrimSpace(run.ID) == "" {
		return services.Wrap(services.ErrValidation, "journal", "begin run", "run id required", nil)
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	if run.Status == "" {
		run.Status = StatusRunning
	}
	_, err := s.exec(ctx,
		`INSERT INTO runs (id, started_at, source_dir, target_dir, dry_run, status) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(timeLayout),
		run.SourceDir,
		run.TargetDir,
		boolToInt(run.DryRun),
		string(run.Status),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecordDecision stores the outcome for one file.
func (s *Store) RecordDecision(ctx context.Context, d Decision) error {
	if d.RecordedAt.IsZero() {
		d.RecordedAt = time.Now()
	}
	_, err := s.exec(ctx,
		`INSERT INTO decisions (run_id, seq, source_path, raw_category, group_name, destination, outcome, error_message, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.RunID,
		d.Seq,
		d.SourcePath,
		d.RawCategory,
		d.GroupName,
		d.Destination,
		string(d.Outcome),
		nullableString(d.ErrorMessage),
		d.RecordedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert decision: %w", err)
	}
	return nil
}

// FinishRun stores the final status and statistics of a run.
func (s *Store) FinishRun(ctx context.Context, run Run) error {
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	res, err := s.exec(ctx,
		`UPDATE runs SET finished_at = ?, status = ?, processed = ?, moved = ?, errors = ?,
		 classification_failures = ?, naming_fallbacks = ?, groups_count = ?, error_message = ?
		 WHERE id = ?`,
		run.FinishedAt.UTC().Format(timeLayout),
		string(run.Status),
		run.Processed,
		run.Moved,
		run.Errors,
		run.ClassificationFailures,
		run.NamingFallbacks,
		run.Groups,
		nullableString(run.ErrorMessage),
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return services.Wrap(services.ErrNotFound, "journal", "finish run", run.ID, nil)
	}
	return nil
}

const runColumns = "id, started_at, finished_at, source_dir, target_dir, dry_run, status, processed, moved, errors, classification_failures, naming_fallbacks, groups_count, error_message"

// ListRuns returns the most recent runs, newest first. A limit <= 0 returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	query := "SELECT " + runColumns + " FROM runs ORDER BY started_at DESC, id DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun looks up a run by its full identifier or an unambiguous prefix.
func (s *Store) GetRun(ctx context.Context, idOrPrefix string) (Run, error) {
	ctx = ensureContext(ctx)
	key := strings.TrimSpace(idOrPrefix)
	if key == "" {
		return Run{}, services.Wrap(services.ErrValidation, "journal", "get run", "run id required", nil)
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM runs WHERE id = ? OR substr(id, 1, ?) = ? ORDER BY started_at DESC LIMIT 2",
		key, len(key), key,
	)
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return Run{}, fmt.Errorf("scan run: %w", err)
		}
		if run.ID == key {
			return run, nil
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return Run{}, err
	}
	switch len(matches) {
	case 0:
		return Run{}, services.Wrap(services.ErrNotFound, "journal", "get run", key, nil)
	case 1:
		return matches[0], nil
	default:
		return Run{}, services.Wrap(services.ErrValidation, "journal", "get run", fmt.Sprintf("prefix %q matches more than one run", key), nil)
	}
}

// Decisions returns the per-file decisions of a run in the order they were made.
func (s *Store) Decisions(ctx context.Context, runID string) ([]Decision, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, seq, source_path, raw_category, group_name, destination, outcome, error_message, recorded_at
		 FROM decisions WHERE run_id = ? ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list decisions: %w", err)
	}
	defer rows.Close()

	var out []Decision
	for rows.Next() {
		var (
			d          Decision
			outcome    string
			errMsg     sql.NullString
			recordedAt string
		)
		if err := rows.Scan(&d.RunID, &d.Seq, &d.SourcePath, &d.RawCategory, &d.GroupName, &d.Destination, &outcome, &errMsg, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		d.Outcome = Outcome(outcome)
		d.ErrorMessage = errMsg.String
		if ts, err := parseTimeString(recordedAt); err == nil {
			d.RecordedAt = ts
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run         Run
		startedRaw  string
		finishedRaw sql.NullString
		dryRun      int
		status      string
		errMsg      sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&startedRaw,
		&finishedRaw,
		&run.SourceDir,
		&run.TargetDir,
		&dryRun,
		&status,
		&run.Processed,
		&run.Moved,
		&run.Errors,
		&run.ClassificationFailures,
		&run.NamingFallbacks,
		&run.Groups,
		&errMsg,
	); err != nil {
		return Run{}, err
	}
	run.DryRun = dryRun != 0
	run.Status = Status(status)
	run.ErrorMessage = errMsg.String
	if ts, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = ts
	}
	if finishedRaw.Valid {
		if ts, err := parseTimeString(finishedRaw.String); err == nil {
			run.FinishedAt = ts
		}
	}
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
