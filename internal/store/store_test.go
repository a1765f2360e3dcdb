package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qed/laws"
)

// openTestStore opens an in-memory ledger with sequential run IDs.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	n := 0
	s, err := Open(":memory:", WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("run-%04d", n)
	}))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func passedResult(structure, fingerprint string) laws.Result {
	return laws.Result{
		Law:         laws.LawCategory,
		Structure:   structure,
		Fingerprint: fingerprint,
		Outcome:     laws.OutcomePassed,
		Samples:     8,
		Exhaustive:  true,
	}
}

func failedResult(structure, fingerprint string) laws.Result {
	return laws.Result{
		Law:         laws.LawCategory,
		Structure:   structure,
		Fingerprint: fingerprint,
		Outcome:     laws.OutcomeFailed,
		Samples:     8,
		Violations: []laws.Violation{{
			Property: "associativity",
			Witness:  "(a, b, c)",
			Expected: "x",
			Actual:   "y",
		}},
	}
}

func TestOpenAppliesPragmas(t *testing.T) {
	// WAL needs a real file; in-memory databases report journal_mode=memory.
	path := filepath.Join(t.TempDir(), "ledger.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("foreign_keys", "1"))
	assert.NoError(t, s.verifyPragma("busy_timeout", "5000"))
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	s1, err := Open(path)
	require.NoError(t, err)

	run, err := s1.BeginRun(context.Background(), "smoke")
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	runs, err := s2.Runs(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)
}

func TestSchemaVersionIsSet(t *testing.T) {
	s := openTestStore(t)

	var version int
	require.NoError(t, s.DB().QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}
