package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginRunAssignsLogicalSeq(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.BeginRun(ctx, "alpha")
	require.NoError(t, err)
	second, err := s.BeginRun(ctx, "beta")
	require.NoError(t, err)

	assert.Equal(t, "run-0001", first.ID)
	assert.Equal(t, "run-0002", second.ID)
	assert.Greater(t, second.Seq, first.Seq)
}

func TestWriteVerdictIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run, err := s.BeginRun(ctx, "alpha")
	require.NoError(t, err)

	result := passedResult("ints", "sha256:aaa")

	id1, inserted, err := s.WriteVerdict(ctx, run.ID, result)
	require.NoError(t, err)
	assert.True(t, inserted)

	id2, inserted, err := s.WriteVerdict(ctx, run.ID, result)
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, id1, id2)

	verdicts, err := s.RunVerdicts(ctx, run.ID)
	require.NoError(t, err)
	assert.Len(t, verdicts, 1)
}

func TestWriteVerdictDistinctRunsDistinctIDs(t *testing.T) {
	// The same result in a different run is a new ledger entry; identity
	// covers the run, not just the verdict content.
	s := openTestStore(t)
	ctx := context.Background()

	result := passedResult("ints", "sha256:aaa")

	runA, err := s.BeginRun(ctx, "alpha")
	require.NoError(t, err)
	runB, err := s.BeginRun(ctx, "alpha")
	require.NoError(t, err)

	idA, inserted, err := s.WriteVerdict(ctx, runA.ID, result)
	require.NoError(t, err)
	assert.True(t, inserted)

	idB, inserted, err := s.WriteVerdict(ctx, runB.ID, result)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NotEqual(t, idA, idB)
}

func TestWriteVerdictRequiresRun(t *testing.T) {
	s := openTestStore(t)

	_, _, err := s.WriteVerdict(context.Background(), "no-such-run", passedResult("ints", "sha256:aaa"))
	require.Error(t, err)
}

func TestWriteVerdictRoundTripsViolations(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	run, err := s.BeginRun(ctx, "alpha")
	require.NoError(t, err)

	_, _, err = s.WriteVerdict(ctx, run.ID, failedResult("freeMonoid", "sha256:bbb"))
	require.NoError(t, err)

	verdicts, err := s.RunVerdicts(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, verdicts, 1)

	v := verdicts[0]
	require.Len(t, v.Violations, 1)
	assert.Equal(t, "associativity", v.Violations[0].Property)
	assert.Equal(t, "(a, b, c)", v.Violations[0].Witness)
	assert.Equal(t, "x", v.Violations[0].Expected)
	assert.Equal(t, "y", v.Violations[0].Actual)
}
