package laws

import (
	"context"
	"fmt"

	"github.com/roach88/qed/cat"
)

// CheckInterchange samples the interchange law for a compatible square of
// transformations: alpha, gamma vertically stacked over C -> D and beta,
// delta vertically stacked over D -> E. Both assemblies of
//
//	(gamma·alpha) ∗ (delta·beta)  and  (delta∗gamma)·(beta∗alpha)
//
// must agree componentwise. A quadruple that does not assemble is a caller
// error, not a verdict.
func CheckInterchange(ctx context.Context, alpha, beta, gamma, delta *cat.Transformation, b Budget) (Result, error) {
	hFirst, err := cat.HorizontalCompose(alpha, beta)
	if err != nil {
		return Result{}, fmt.Errorf("interchange: assembling %s ∗ %s: %w", beta.Name(), alpha.Name(), err)
	}
	hSecond, err := cat.HorizontalCompose(gamma, delta)
	if err != nil {
		return Result{}, fmt.Errorf("interchange: assembling %s ∗ %s: %w", delta.Name(), gamma.Name(), err)
	}
	left, err := cat.VerticalCompose(hFirst, hSecond)
	if err != nil {
		return Result{}, fmt.Errorf("interchange: stacking horizontal composites: %w", err)
	}

	vLeft, err := cat.VerticalCompose(alpha, gamma)
	if err != nil {
		return Result{}, fmt.Errorf("interchange: stacking %s under %s: %w", alpha.Name(), gamma.Name(), err)
	}
	vRight, err := cat.VerticalCompose(beta, delta)
	if err != nil {
		return Result{}, fmt.Errorf("interchange: stacking %s under %s: %w", beta.Name(), delta.Name(), err)
	}
	right, err := cat.HorizontalCompose(vLeft, vRight)
	if err != nil {
		return Result{}, fmt.Errorf("interchange: composing stacked sides: %w", err)
	}

	name := fmt.Sprintf("interchange(%s, %s, %s, %s)",
		alpha.Name(), beta.Name(), gamma.Name(), delta.Name())
	fingerprint := cat.MustDigest(cat.DomainTransformation, map[string]any{
		"kind": "interchange",
		"operands": []string{
			alpha.Fingerprint(), beta.Fingerprint(),
			gamma.Fingerprint(), delta.Fingerprint(),
		},
	})

	r, cancel := newRun(ctx, LawInterchange, name, fingerprint, b)
	defer cancel()

	exhausted, err := sweepAgreement(r, "interchange", left, right)
	if err != nil {
		return Result{}, err
	}
	return r.finish(exhausted), nil
}
