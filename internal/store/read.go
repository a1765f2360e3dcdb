package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/roach88/qed/laws"
)

const verdictColumns = `v.id, v.run_id, v.law, v.structure, v.fingerprint,
	v.outcome, v.samples, v.exhaustive, v.violations, v.seq`

// Runs returns every run in logical order.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, suite, seq FROM runs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Suite, &r.Seq); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// RunVerdicts returns a run's verdicts in logical order.
func (s *Store) RunVerdicts(ctx context.Context, runID string) ([]Verdict, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+verdictColumns+`
		FROM verdicts v
		WHERE v.run_id = ?
		ORDER BY v.seq ASC, v.id COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run verdicts: %w", err)
	}
	defer rows.Close()

	return collectVerdicts(rows)
}

// LatestOutcome returns the most recent verdict for a structure
// fingerprint under one law. Returns sql.ErrNoRows when the structure was
// never checked.
func (s *Store) LatestOutcome(ctx context.Context, fingerprint string, law laws.Law) (Verdict, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+verdictColumns+`
		FROM verdicts v
		WHERE v.fingerprint = ? AND v.law = ?
		ORDER BY v.seq DESC, v.id COLLATE BINARY DESC
		LIMIT 1
	`, fingerprint, string(law))

	return scanVerdictRow(row)
}

// Verified reports whether the most recent check of a fingerprint under a
// law passed. A structure never checked is not verified.
func (s *Store) Verified(ctx context.Context, fingerprint string, law laws.Law) (bool, error) {
	v, err := s.LatestOutcome(ctx, fingerprint, law)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return v.Outcome == laws.OutcomePassed, nil
}

// History returns all verdicts matching a filter in logical order.
func (s *Store) History(ctx context.Context, f Filter) ([]Verdict, error) {
	where, args, err := f.whereClause()
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	query := `
		SELECT ` + verdictColumns + `
		FROM verdicts v
		JOIN runs r ON v.run_id = r.id
	`
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY v.seq ASC, v.id COLLATE BINARY ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	return collectVerdicts(rows)
}

func collectVerdicts(rows *sql.Rows) ([]Verdict, error) {
	verdicts := []Verdict{}
	for rows.Next() {
		v, err := scanVerdict(rows)
		if err != nil {
			return nil, err
		}
		verdicts = append(verdicts, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verdicts: %w", err)
	}
	return verdicts, nil
}

func scanVerdict(rows *sql.Rows) (Verdict, error) {
	var v Verdict
	var law, outcome, violations string
	if err := rows.Scan(
		&v.ID, &v.RunID, &law, &v.Structure, &v.Fingerprint,
		&outcome, &v.Samples, &v.Exhaustive, &violations, &v.Seq,
	); err != nil {
		return Verdict{}, fmt.Errorf("scan verdict: %w", err)
	}
	return finishVerdict(v, law, outcome, violations)
}

func scanVerdictRow(row *sql.Row) (Verdict, error) {
	var v Verdict
	var law, outcome, violations string
	if err := row.Scan(
		&v.ID, &v.RunID, &law, &v.Structure, &v.Fingerprint,
		&outcome, &v.Samples, &v.Exhaustive, &violations, &v.Seq,
	); err != nil {
		return Verdict{}, err
	}
	return finishVerdict(v, law, outcome, violations)
}

func finishVerdict(v Verdict, law, outcome, violations string) (Verdict, error) {
	v.Law = laws.Law(law)
	v.Outcome = laws.Outcome(outcome)
	if violations != "" && violations != "[]" {
		if err := json.Unmarshal([]byte(violations), &v.Violations); err != nil {
			return Verdict{}, fmt.Errorf("unmarshal violations: %w", err)
		}
	}
	return v, nil
}
