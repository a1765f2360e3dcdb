package cat

import (
	"context"
	"fmt"
)

// Shared fixtures for the package tests. Two categories do most of the
// work: a thin chain poset for endpoint plumbing, and a one-object integer
// monoid, which is not thin and so can actually exhibit law violations.

const dot = "•"

// addMonoid returns the one-object category of integers under addition.
func addMonoid(name string) *Category {
	return MustNew(name, Ops{
		Identity: func(a Obj) any { return 0 },
		Compose: func(f, g Morphism) (any, error) {
			return f.Payload().(int) + g.Payload().(int), nil
		},
	})
}

// arrow mints the monoid arrow with the given payload.
func arrow(c *Category, n int) Morphism {
	return c.NewMorphism(dot, dot, n)
}

// chain returns the thin category of ordered integers: one morphism
// x -> y exactly when x <= y.
func chain(name string) *Category {
	return MustNew(name, Ops{
		Identity: func(a Obj) any { return leq(a.(int), a.(int)) },
		Compose: func(f, g Morphism) (any, error) {
			return leq(f.Dom().(int), g.Cod().(int)), nil
		},
	})
}

func leq(a, b int) string { return fmt.Sprintf("%d<=%d", a, b) }

// chainArrow mints the unique arrow a -> b of a chain.
func chainArrow(c *Category, a, b int) Morphism {
	return c.NewMorphism(a, b, leq(a, b))
}

// fixedSampler serves fixed slices. Slices may be filled in after the
// category is constructed, which breaks the construction cycle between
// category and sampler.
type fixedSampler struct {
	objs []Obj
	mors []Morphism
}

func (s *fixedSampler) SampleObjects(ctx context.Context, n int) ([]Obj, error) {
	if n > len(s.objs) {
		n = len(s.objs)
	}
	return s.objs[:n], nil
}

func (s *fixedSampler) SampleMorphisms(ctx context.Context, n int) ([]Morphism, error) {
	if n > len(s.mors) {
		n = len(s.mors)
	}
	return s.mors[:n], nil
}

// sampledAddMonoid returns the add monoid with a sampler over payloads
// -2..2 attached.
func sampledAddMonoid(name string) *Category {
	s := &fixedSampler{}
	c := MustNew(name, Ops{
		Identity: func(a Obj) any { return 0 },
		Compose: func(f, g Morphism) (any, error) {
			return f.Payload().(int) + g.Payload().(int), nil
		},
	}, WithSampler(s))
	s.objs = []Obj{dot}
	for n := -2; n <= 2; n++ {
		s.mors = append(s.mors, arrow(c, n))
	}
	return c
}

// doubling returns the endofunctor on the monoid that doubles payloads.
// It preserves identities and composition.
func doubling(c *Category) *Functor {
	return MustNewFunctor("Double", c, c,
		func(a Obj) Obj { return a },
		func(m Morphism) any { return m.Payload().(int) * 2 })
}

// shiftBy returns the endofunctor adding k to payloads. For k != 0 it
// breaks both functor laws, which is exactly what tests want it for.
func shiftBy(c *Category, k int) *Functor {
	return MustNewFunctor(fmt.Sprintf("Shift%+d", k), c, c,
		func(a Obj) Obj { return a },
		func(m Morphism) any { return m.Payload().(int) + k })
}

// constComponent returns a transformation between two monoid endofunctors
// whose single component at the dot is the arrow with payload k.
func constComponent(name string, source, target *Functor, k int) *Transformation {
	c := source.Target()
	return MustNewTransformation(name, source, target,
		func(a Obj) (Morphism, error) {
			return arrow(c, k), nil
		})
}
