package laws

import (
	"context"
	"fmt"

	"github.com/roach88/qed/cat"
)

// run accumulates one check's evidence and turns it into a Result.
type run struct {
	ctx    context.Context
	budget Budget
	result Result
	halted bool
}

// newRun applies the budget's timeout and seeds the result. The returned
// cancel must run even on early exits.
func newRun(ctx context.Context, law Law, structure, fingerprint string, b Budget) (*run, context.CancelFunc) {
	cancel := context.CancelFunc(func() {})
	if b.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, b.Timeout)
	}
	return &run{
		ctx:    ctx,
		budget: b,
		result: Result{
			Law:         law,
			Structure:   structure,
			Fingerprint: fingerprint,
		},
	}, cancel
}

// halt reports whether the budget's context has expired. Once it trips,
// the check stops sampling and the outcome can be at best inconclusive.
func (r *run) halt() bool {
	if r.halted {
		return true
	}
	if r.ctx.Err() != nil {
		r.halted = true
	}
	return r.halted
}

// step counts one evaluated law instance.
func (r *run) step() { r.result.Samples++ }

// budgetSamples returns the per-property instance cap.
func (r *run) budgetSamples() int { return r.budget.Samples }

// violate records a counterexample.
func (r *run) violate(property, witness, expected, actual string) {
	r.result.Violations = append(r.result.Violations, Violation{
		Property: property,
		Witness:  witness,
		Expected: expected,
		Actual:   actual,
	})
}

// note appends a free-form note to the result.
func (r *run) note(format string, args ...any) {
	r.result.Notes = append(r.result.Notes, fmt.Sprintf(format, args...))
}

// finish settles the outcome. A counterexample is definitive and beats an
// expired budget; an expired budget or an empty sweep is inconclusive.
func (r *run) finish(exhaustive bool) Result {
	r.result.Exhaustive = exhaustive && !r.halted
	switch {
	case len(r.result.Violations) > 0:
		r.result.Outcome = OutcomeFailed
	case r.halted:
		r.result.Outcome = OutcomeInconclusive
		r.note("budget exhausted: %v", r.ctx.Err())
	case r.result.Samples == 0:
		r.result.Outcome = OutcomeInconclusive
		r.note("nothing to sample")
	default:
		r.result.Outcome = OutcomePassed
	}
	return r.result
}

// samplerOf fetches a category's sampler or fails the check as machinery.
func samplerOf(c *cat.Category) (cat.Sampler, error) {
	s := c.Sampler()
	if s == nil {
		return nil, fmt.Errorf("category %q has no sampler", c.Name())
	}
	return s, nil
}

// sampleObjects draws up to n objects, reporting whether the space was
// exhausted (the sampler returned fewer than asked).
func sampleObjects(ctx context.Context, c *cat.Category, n int) ([]cat.Obj, bool, error) {
	if n <= 0 {
		return nil, false, nil
	}
	s, err := samplerOf(c)
	if err != nil {
		return nil, false, err
	}
	objs, err := s.SampleObjects(ctx, n)
	if err != nil {
		return nil, false, fmt.Errorf("sampling objects of %q: %w", c.Name(), err)
	}
	return objs, len(objs) < n, nil
}

// sampleMorphisms draws up to n morphisms, reporting exhaustion the same
// way.
func sampleMorphisms(ctx context.Context, c *cat.Category, n int) ([]cat.Morphism, bool, error) {
	if n <= 0 {
		return nil, false, nil
	}
	s, err := samplerOf(c)
	if err != nil {
		return nil, false, err
	}
	mors, err := s.SampleMorphisms(ctx, n)
	if err != nil {
		return nil, false, fmt.Errorf("sampling morphisms of %q: %w", c.Name(), err)
	}
	return mors, len(mors) < n, nil
}

// sweepAgreement draws objects of the two transformations' common source
// category and requires their components to agree under the target
// category's morphism equality. Component failures and disagreements
// become violations on r; sampling failures are machinery errors.
func sweepAgreement(r *run, property string, left, right *cat.Transformation) (bool, error) {
	source := left.Source().Source()
	target := left.Source().Target()

	objs, exhausted, err := sampleObjects(r.ctx, source, r.budgetSamples())
	if err != nil {
		return false, err
	}

	for _, a := range objs {
		if r.halt() {
			break
		}
		r.step()

		lm, err := left.At(a)
		if err != nil {
			r.violate(property, fmt.Sprintf("%v", a), "left side defined", err.Error())
			continue
		}
		rm, err := right.At(a)
		if err != nil {
			r.violate(property, fmt.Sprintf("%v", a), "right side defined", err.Error())
			continue
		}
		if !target.MorEqual(lm, rm) {
			r.violate(property, fmt.Sprintf("%v", a), lm.String(), rm.String())
		}
	}

	return exhausted, nil
}

// composablePairs enumerates ordered pairs (f, g) with cod(f) = dom(g),
// up to limit. The second return is false when the cap cut enumeration
// short of the full pair space.
func composablePairs(c *cat.Category, mors []cat.Morphism, limit int) ([][2]cat.Morphism, bool) {
	var pairs [][2]cat.Morphism
	for _, f := range mors {
		for _, g := range mors {
			if !c.ObjEqual(f.Cod(), g.Dom()) {
				continue
			}
			if len(pairs) == limit {
				return pairs, false
			}
			pairs = append(pairs, [2]cat.Morphism{f, g})
		}
	}
	return pairs, true
}

// composableTriples enumerates (f, g, h) with f;g and g;h composable, up
// to limit.
func composableTriples(c *cat.Category, mors []cat.Morphism, limit int) ([][3]cat.Morphism, bool) {
	var triples [][3]cat.Morphism
	for _, f := range mors {
		for _, g := range mors {
			if !c.ObjEqual(f.Cod(), g.Dom()) {
				continue
			}
			for _, h := range mors {
				if !c.ObjEqual(g.Cod(), h.Dom()) {
					continue
				}
				if len(triples) == limit {
					return triples, false
				}
				triples = append(triples, [3]cat.Morphism{f, g, h})
			}
		}
	}
	return triples, true
}
