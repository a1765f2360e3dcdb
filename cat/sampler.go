package cat

import "context"

// Sampler enumerates a category's objects and morphisms for law checking.
//
// The algebra defines the interface; domains supply the strategy. Compiled
// finite presentations install exhaustive samplers, virtual categories
// bring seeded generators, and the verifier stays agnostic about both.
//
// Contract: returning fewer than n values declares the space exhausted.
// A sampler that cannot enumerate more must not pad with repeats, because
// the verifier promotes exhausted runs to exhaustive verdicts.
type Sampler interface {
	// SampleObjects returns up to n objects of the category.
	SampleObjects(ctx context.Context, n int) ([]Obj, error)

	// SampleMorphisms returns up to n morphisms owned by the category.
	SampleMorphisms(ctx context.Context, n int) ([]Morphism, error)
}
