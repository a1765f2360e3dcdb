package laws

import (
	"context"
	"fmt"

	"github.com/roach88/qed/cat"
)

// agreement names one componentwise comparison a coherence check sweeps.
type agreement struct {
	property    string
	left, right *cat.Transformation
}

// CheckMonadLaws samples the monad coherence laws for T with unit η and
// multiplication μ: both unit composites (η T);μ and (T η);μ must be the
// identity on T, and the two associations (μ T);μ and (T μ);μ of the
// triple multiplication must agree, all at drawn objects of T's category.
func CheckMonadLaws(ctx context.Context, m *cat.Monad, b Budget) (Result, error) {
	sides, err := monadSides(m)
	if err != nil {
		return Result{}, fmt.Errorf("monad %s: %w", m.Name(), err)
	}

	r, cancel := newRun(ctx, LawMonad, m.Name(), m.Fingerprint(), b)
	defer cancel()
	return sweepAgreements(r, sides)
}

// CheckComonadLaws samples the dual coherence laws for W with extract ε
// and duplicate δ: δ;(ε W) and δ;(W ε) must be the identity on W, and
// δ;(δ W) must agree with δ;(W δ).
func CheckComonadLaws(ctx context.Context, w *cat.Comonad, b Budget) (Result, error) {
	sides, err := comonadSides(w)
	if err != nil {
		return Result{}, fmt.Errorf("comonad %s: %w", w.Name(), err)
	}

	r, cancel := newRun(ctx, LawComonad, w.Name(), w.Fingerprint(), b)
	defer cancel()
	return sweepAgreements(r, sides)
}

// monadSides assembles the three comparisons of the monad laws. The
// operands come from the monad's own data, so failures here are machinery
// errors, never verdicts.
func monadSides(m *cat.Monad) ([]agreement, error) {
	t := m.Functor()
	unit := m.Unit()
	mult := m.Multiplication()

	etaT, err := cat.WhiskerRight(unit, t)
	if err != nil {
		return nil, fmt.Errorf("assembling (η T): %w", err)
	}
	leftUnit, err := cat.VerticalCompose(etaT, mult)
	if err != nil {
		return nil, fmt.Errorf("assembling (η T);μ: %w", err)
	}

	tEta, err := cat.WhiskerLeft(t, unit)
	if err != nil {
		return nil, fmt.Errorf("assembling (T η): %w", err)
	}
	rightUnit, err := cat.VerticalCompose(tEta, mult)
	if err != nil {
		return nil, fmt.Errorf("assembling (T η);μ: %w", err)
	}

	muT, err := cat.WhiskerRight(mult, t)
	if err != nil {
		return nil, fmt.Errorf("assembling (μ T): %w", err)
	}
	multFirst, err := cat.VerticalCompose(muT, mult)
	if err != nil {
		return nil, fmt.Errorf("assembling (μ T);μ: %w", err)
	}

	tMu, err := cat.WhiskerLeft(t, mult)
	if err != nil {
		return nil, fmt.Errorf("assembling (T μ): %w", err)
	}
	multSecond, err := cat.VerticalCompose(tMu, mult)
	if err != nil {
		return nil, fmt.Errorf("assembling (T μ);μ: %w", err)
	}

	idT := cat.IdentityTransformation(t)
	return []agreement{
		{"left unit", leftUnit, idT},
		{"right unit", rightUnit, idT},
		{"associativity", multFirst, multSecond},
	}, nil
}

// comonadSides assembles the three comparisons of the comonad laws,
// dually: every side starts from the duplicate.
func comonadSides(w *cat.Comonad) ([]agreement, error) {
	wf := w.Functor()
	extract := w.Extract()
	dup := w.Duplicate()

	epsW, err := cat.WhiskerRight(extract, wf)
	if err != nil {
		return nil, fmt.Errorf("assembling (ε W): %w", err)
	}
	leftCounit, err := cat.VerticalCompose(dup, epsW)
	if err != nil {
		return nil, fmt.Errorf("assembling δ;(ε W): %w", err)
	}

	wEps, err := cat.WhiskerLeft(wf, extract)
	if err != nil {
		return nil, fmt.Errorf("assembling (W ε): %w", err)
	}
	rightCounit, err := cat.VerticalCompose(dup, wEps)
	if err != nil {
		return nil, fmt.Errorf("assembling δ;(W ε): %w", err)
	}

	deltaW, err := cat.WhiskerRight(dup, wf)
	if err != nil {
		return nil, fmt.Errorf("assembling (δ W): %w", err)
	}
	dupFirst, err := cat.VerticalCompose(dup, deltaW)
	if err != nil {
		return nil, fmt.Errorf("assembling δ;(δ W): %w", err)
	}

	wDelta, err := cat.WhiskerLeft(wf, dup)
	if err != nil {
		return nil, fmt.Errorf("assembling (W δ): %w", err)
	}
	dupSecond, err := cat.VerticalCompose(dup, wDelta)
	if err != nil {
		return nil, fmt.Errorf("assembling δ;(W δ): %w", err)
	}

	idW := cat.IdentityTransformation(wf)
	return []agreement{
		{"left counit", leftCounit, idW},
		{"right counit", rightCounit, idW},
		{"coassociativity", dupFirst, dupSecond},
	}, nil
}

// sweepAgreements runs each comparison under the shared budget and settles
// the run.
func sweepAgreements(r *run, sides []agreement) (Result, error) {
	exhausted := true
	for _, side := range sides {
		done, err := sweepAgreement(r, side.property, side.left, side.right)
		if err != nil {
			return Result{}, err
		}
		exhausted = exhausted && done
	}
	return r.finish(exhausted), nil
}
