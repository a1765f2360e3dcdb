package laws

import (
	"context"
	"fmt"

	"github.com/roach88/qed/cat"
)

// CheckAdjunction samples both triangle identities of an adjunction F ⊣ G:
// (F η);(ε F) must be the identity on F at drawn objects of the source
// category, and (η G);(G ε) the identity on G at drawn objects of the
// target category. The whiskered composites assemble from the adjunction's
// own data, so assembly failures are machinery errors, never verdicts.
func CheckAdjunction(ctx context.Context, adj *cat.Adjunction, b Budget) (Result, error) {
	f := adj.Left()
	g := adj.Right()

	fUnit, err := cat.WhiskerLeft(f, adj.Unit())
	if err != nil {
		return Result{}, fmt.Errorf("adjunction %s: assembling (F η): %w", adj.Name(), err)
	}
	counitF, err := cat.WhiskerRight(adj.Counit(), f)
	if err != nil {
		return Result{}, fmt.Errorf("adjunction %s: assembling (ε F): %w", adj.Name(), err)
	}
	leftTri, err := cat.VerticalCompose(fUnit, counitF)
	if err != nil {
		return Result{}, fmt.Errorf("adjunction %s: stacking (F η);(ε F): %w", adj.Name(), err)
	}

	unitG, err := cat.WhiskerRight(adj.Unit(), g)
	if err != nil {
		return Result{}, fmt.Errorf("adjunction %s: assembling (η G): %w", adj.Name(), err)
	}
	gCounit, err := cat.WhiskerLeft(g, adj.Counit())
	if err != nil {
		return Result{}, fmt.Errorf("adjunction %s: assembling (G ε): %w", adj.Name(), err)
	}
	rightTri, err := cat.VerticalCompose(unitG, gCounit)
	if err != nil {
		return Result{}, fmt.Errorf("adjunction %s: stacking (η G);(G ε): %w", adj.Name(), err)
	}

	r, cancel := newRun(ctx, LawAdjunction, adj.Name(), adj.Fingerprint(), b)
	defer cancel()

	leftExhausted, err := sweepAgreement(r, "triangle identity on F",
		leftTri, cat.IdentityTransformation(f))
	if err != nil {
		return Result{}, err
	}
	rightExhausted, err := sweepAgreement(r, "triangle identity on G",
		rightTri, cat.IdentityTransformation(g))
	if err != nil {
		return Result{}, err
	}

	return r.finish(leftExhausted && rightExhausted), nil
}
