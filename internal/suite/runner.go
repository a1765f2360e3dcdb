package suite

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/qed/cat"
	"github.com/roach88/qed/internal/compiler"
	"github.com/roach88/qed/laws"
)

// defaultConcurrency bounds parallel checks. Law checks are CPU-bound and
// short; a small constant keeps scheduling noise out of timing-sensitive
// budgets.
const defaultConcurrency = 4

// Runner resolves suite checks against a built library and runs them.
type Runner struct {
	lib    *compiler.Library
	logger *slog.Logger
	limit  int
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger replaces the runner's logger. The default discards.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) { r.logger = logger }
}

// WithConcurrency bounds how many checks run in parallel.
func WithConcurrency(n int) RunnerOption {
	return func(r *Runner) {
		if n > 0 {
			r.limit = n
		}
	}
}

// NewRunner builds a runner over a compiled library.
func NewRunner(lib *compiler.Library, opts ...RunnerOption) *Runner {
	r := &Runner{
		lib:    lib,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		limit:  defaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every check in the suite. Checks run in parallel under the
// concurrency limit; results land at their check's index, so report order
// is suite order. A check that cannot run at all (unknown name, broken
// derivation) is a Go error and aborts the run; law violations are data
// in the report.
func (r *Runner) Run(ctx context.Context, s *Suite) (*Report, error) {
	budget := s.Budget.toBudget()
	checks := make([]CheckReport, len(s.Checks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)

	for i, check := range s.Checks {
		g.Go(func() error {
			result, err := r.runCheck(ctx, check, budget)
			if err != nil {
				return fmt.Errorf("checks[%d] (%s %s): %w", i, check.Law, check.Target(), err)
			}
			checks[i] = CheckReport{Law: check.Law, Target: check.Target(), Result: result}
			r.logger.Info("check finished",
				"suite", s.Name,
				"law", check.Law,
				"target", check.Target(),
				"outcome", result.Outcome,
				"samples", result.Samples,
				"exhaustive", result.Exhaustive,
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Report{
		Suite:   s.Name,
		Outcome: aggregateOutcome(checks),
		Checks:  checks,
	}, nil
}

// runCheck resolves one check's targets and dispatches to laws.
func (r *Runner) runCheck(ctx context.Context, check Check, budget laws.Budget) (laws.Result, error) {
	switch check.Law {
	case LawCategory:
		c, err := r.lib.Category(check.Category)
		if err != nil {
			return laws.Result{}, err
		}
		return laws.CheckCategoryLaws(ctx, c.Handle(), budget)

	case LawFunctor:
		f, err := r.lib.Functor(check.Functor)
		if err != nil {
			return laws.Result{}, err
		}
		return laws.CheckFunctorLaws(ctx, f, budget)

	case LawNaturality:
		t, err := r.lib.Transformation(check.Transformation)
		if err != nil {
			return laws.Result{}, err
		}
		return laws.CheckNaturality(ctx, t, budget)

	case LawInterchange:
		parts := make([]*cat.Transformation, len(check.Transformations))
		for i, name := range check.Transformations {
			t, err := r.lib.Transformation(name)
			if err != nil {
				return laws.Result{}, err
			}
			parts[i] = t
		}
		return laws.CheckInterchange(ctx, parts[0], parts[1], parts[2], parts[3], budget)

	case LawAdjunction:
		adj, err := r.lib.Adjunction(check.Adjunction)
		if err != nil {
			return laws.Result{}, err
		}
		return laws.CheckAdjunction(ctx, adj, budget)

	case LawMonad:
		adj, err := r.lib.Adjunction(check.Adjunction)
		if err != nil {
			return laws.Result{}, err
		}
		m, err := cat.DeriveMonad(adj)
		if err != nil {
			return laws.Result{}, err
		}
		return laws.CheckMonadLaws(ctx, m, budget)

	case LawComonad:
		adj, err := r.lib.Adjunction(check.Adjunction)
		if err != nil {
			return laws.Result{}, err
		}
		w, err := cat.DeriveComonad(adj)
		if err != nil {
			return laws.Result{}, err
		}
		return laws.CheckComonadLaws(ctx, w, budget)

	default:
		return laws.Result{}, fmt.Errorf("unknown law %q", check.Law)
	}
}
