package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/qed/cat"
	"github.com/roach88/qed/laws"
)

// DomainVerdict is the digest domain for verdict identity.
const DomainVerdict = "qed/verdict/v1"

// Run groups the verdicts of one suite execution.
type Run struct {
	ID    string `json:"id"`
	Suite string `json:"suite"`
	Seq   int64  `json:"seq"`
}

// Verdict is one persisted law check result.
type Verdict struct {
	ID    string `json:"id"`
	RunID string `json:"run_id"`
	Seq   int64  `json:"seq"`
	laws.Result
}

// BeginRun opens a new run for a suite and returns its record.
func (s *Store) BeginRun(ctx context.Context, suite string) (Run, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("begin run: begin tx: %w", err)
	}
	defer tx.Rollback()

	seq, err := nextSeq(ctx, tx)
	if err != nil {
		return Run{}, fmt.Errorf("begin run: %w", err)
	}

	run := Run{ID: s.newID(), Suite: suite, Seq: seq}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, suite, seq) VALUES (?, ?, ?)
	`, run.ID, run.Suite, run.Seq); err != nil {
		return Run{}, fmt.Errorf("begin run: insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("begin run: commit: %w", err)
	}
	return run, nil
}

// WriteVerdict persists a law check result under a run. The verdict ID is
// a content digest over the run ID and the result's canonical JSON, so
// writing the same result into the same run twice is idempotent
// (ON CONFLICT DO NOTHING). Returns the verdict ID and whether a new row
// was inserted.
func (s *Store) WriteVerdict(ctx context.Context, runID string, result laws.Result) (string, bool, error) {
	id, err := cat.Digest(DomainVerdict, map[string]any{
		"run":    runID,
		"result": result.CanonicalMap(),
	})
	if err != nil {
		return "", false, fmt.Errorf("write verdict: %w", err)
	}

	violations, err := marshalViolations(result.Violations)
	if err != nil {
		return "", false, fmt.Errorf("write verdict: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", false, fmt.Errorf("write verdict: begin tx: %w", err)
	}
	defer tx.Rollback()

	seq, err := nextSeq(ctx, tx)
	if err != nil {
		return "", false, fmt.Errorf("write verdict: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO verdicts
		(id, run_id, law, structure, fingerprint, outcome, samples, exhaustive, violations, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		id,
		runID,
		string(result.Law),
		result.Structure,
		result.Fingerprint,
		string(result.Outcome),
		result.Samples,
		result.Exhaustive,
		violations,
		seq,
	)
	if err != nil {
		return "", false, fmt.Errorf("write verdict: insert: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return "", false, fmt.Errorf("write verdict: rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", false, fmt.Errorf("write verdict: commit: %w", err)
	}
	return id, affected > 0, nil
}

// nextSeq advances the logical clock and returns the new value. Runs
// inside the caller's transaction so seq allocation and insert commit
// together.
func nextSeq(ctx context.Context, tx *sql.Tx) (int64, error) {
	if _, err := tx.ExecContext(ctx, `
		UPDATE meta SET value = value + 1 WHERE key = 'seq'
	`); err != nil {
		return 0, fmt.Errorf("advance seq: %w", err)
	}

	var seq int64
	if err := tx.QueryRowContext(ctx, `
		SELECT value FROM meta WHERE key = 'seq'
	`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("read seq: %w", err)
	}
	return seq, nil
}

// marshalViolations renders violations as a canonical JSON array.
func marshalViolations(violations []laws.Violation) (string, error) {
	arr := make([]any, len(violations))
	for i, v := range violations {
		arr[i] = map[string]any{
			"property": v.Property,
			"witness":  v.Witness,
			"expected": v.Expected,
			"actual":   v.Actual,
		}
	}
	data, err := cat.MarshalCanonical(arr)
	if err != nil {
		return "", fmt.Errorf("marshal violations: %w", err)
	}
	return string(data), nil
}
