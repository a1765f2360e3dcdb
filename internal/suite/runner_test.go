package suite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qed/cat"
	"github.com/roach88/qed/internal/compiler"
	"github.com/roach88/qed/internal/store"
	"github.com/roach88/qed/laws"
)

func loadSmoke(t *testing.T) (*Suite, *compiler.Library) {
	t.Helper()
	s, err := LoadSuite(filepath.Join("testdata", "suites", "smoke.yaml"))
	require.NoError(t, err)
	lib, err := BuildLibrary(s.Specs)
	require.NoError(t, err)
	return s, lib
}

func TestRunnerSmokeSuite(t *testing.T) {
	s, lib := loadSmoke(t)

	report, err := NewRunner(lib).Run(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, "smoke", report.Suite)
	assert.Equal(t, laws.OutcomePassed, report.Outcome)
	assert.True(t, report.Passed())

	require.Len(t, report.Checks, len(s.Checks))
	for i, c := range report.Checks {
		assert.Equal(t, s.Checks[i].Law, c.Law, "checks[%d] out of order", i)
		assert.Equal(t, s.Checks[i].Target(), c.Target)
		assert.Equal(t, laws.OutcomePassed, c.Result.Outcome)
		assert.True(t, c.Result.Exhaustive, "checks[%d] should exhaust the finite space", i)
		assert.Greater(t, c.Result.Samples, 0)
		assert.True(t, strings.HasPrefix(c.Result.Fingerprint, "sha256:"))
		assert.NotEmpty(t, c.Result.Structure)
	}

	assert.Equal(t, "Chain", report.Checks[0].Target)
	assert.Equal(t, "eta, eta, eps, eps", report.Checks[3].Target)
}

func TestRunnerDeterministicAcrossConcurrency(t *testing.T) {
	s, lib := loadSmoke(t)
	ctx := context.Background()

	serial, err := NewRunner(lib, WithConcurrency(1)).Run(ctx, s)
	require.NoError(t, err)
	parallel, err := NewRunner(lib).Run(ctx, s)
	require.NoError(t, err)

	a, err := cat.MarshalCanonical(serial.CanonicalMap())
	require.NoError(t, err)
	b, err := cat.MarshalCanonical(parallel.CanonicalMap())
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestRunnerUnknownTarget(t *testing.T) {
	_, lib := loadSmoke(t)

	s := &Suite{
		Name:   "broken",
		Checks: []Check{{Law: LawCategory, Category: "Ghost"}},
	}
	_, err := NewRunner(lib).Run(context.Background(), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checks[0]")
	assert.Contains(t, err.Error(), "Ghost")
}

func TestRunnerUnknownLaw(t *testing.T) {
	_, lib := loadSmoke(t)

	s := &Suite{
		Name:   "broken",
		Checks: []Check{{Law: "associativity"}},
	}
	_, err := NewRunner(lib).Run(context.Background(), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown law "associativity"`)
}

func TestAggregateOutcome(t *testing.T) {
	res := func(o laws.Outcome) CheckReport {
		return CheckReport{Result: laws.Result{Outcome: o}}
	}

	tests := []struct {
		name   string
		checks []CheckReport
		want   laws.Outcome
	}{
		{"empty", nil, laws.OutcomePassed},
		{"all passed", []CheckReport{res(laws.OutcomePassed), res(laws.OutcomePassed)}, laws.OutcomePassed},
		{"one inconclusive", []CheckReport{res(laws.OutcomePassed), res(laws.OutcomeInconclusive)}, laws.OutcomeInconclusive},
		{"failure wins", []CheckReport{res(laws.OutcomeInconclusive), res(laws.OutcomeFailed), res(laws.OutcomePassed)}, laws.OutcomeFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, aggregateOutcome(tt.checks))
		})
	}
}

func TestReportGolden(t *testing.T) {
	report := &Report{
		Suite:   "smoke",
		Outcome: laws.OutcomePassed,
		Checks: []CheckReport{{
			Law:    LawCategory,
			Target: "Chain",
			Result: laws.Result{
				Law:         laws.LawCategory,
				Structure:   "Chain",
				Fingerprint: "sha256:feed",
				Outcome:     laws.OutcomePassed,
				Samples:     6,
				Exhaustive:  true,
			},
		}},
	}
	require.NoError(t, AssertGolden(t, "report", report))
}

func TestPersistReport(t *testing.T) {
	s, lib := loadSmoke(t)
	ctx := context.Background()

	report, err := NewRunner(lib).Run(ctx, s)
	require.NoError(t, err)

	st, err := store.Open(":memory:")
	require.NoError(t, err)
	defer st.Close()

	run, err := Persist(ctx, st, report)
	require.NoError(t, err)
	assert.Equal(t, "smoke", run.Suite)

	runs, err := st.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	verdicts, err := st.RunVerdicts(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, verdicts, len(report.Checks))
	for i, v := range verdicts {
		assert.Equal(t, report.Checks[i].Result.Law, v.Law, "verdicts[%d] out of order", i)
	}

	ok, err := st.Verified(ctx, verdicts[0].Fingerprint, verdicts[0].Law)
	require.NoError(t, err)
	assert.True(t, ok)
}
