package laws

import (
	"context"
	"fmt"

	"github.com/roach88/qed/cat"
)

// Package fixtures. One-object monoids carry the weight: the additive
// integer monoid for structures that obey their laws, the free monoid on
// letters (string concatenation) for structures that do not, since
// concatenation does not commute.

const dot = "•"

// fixedSampler serves fixed slices; fewer than asked declares exhaustion.
// Slices may be filled in after the category is constructed.
type fixedSampler struct {
	objs []cat.Obj
	mors []cat.Morphism
}

func (s *fixedSampler) SampleObjects(ctx context.Context, n int) ([]cat.Obj, error) {
	if n > len(s.objs) {
		n = len(s.objs)
	}
	return s.objs[:n], nil
}

func (s *fixedSampler) SampleMorphisms(ctx context.Context, n int) ([]cat.Morphism, error) {
	if n > len(s.mors) {
		n = len(s.mors)
	}
	return s.mors[:n], nil
}

// failingSampler fails every draw, for machinery-error paths.
type failingSampler struct{}

func (failingSampler) SampleObjects(ctx context.Context, n int) ([]cat.Obj, error) {
	return nil, fmt.Errorf("sampler exploded")
}

func (failingSampler) SampleMorphisms(ctx context.Context, n int) ([]cat.Morphism, error) {
	return nil, fmt.Errorf("sampler exploded")
}

// addMonoid returns the one-object category of integers under addition,
// sampled over payloads -2..2.
func addMonoid(name string) *cat.Category {
	s := &fixedSampler{}
	c := cat.MustNew(name, cat.Ops{
		Identity: func(a cat.Obj) any { return 0 },
		Compose: func(f, g cat.Morphism) (any, error) {
			return f.Payload().(int) + g.Payload().(int), nil
		},
	}, cat.WithSampler(s))
	s.objs = []cat.Obj{dot}
	for n := -2; n <= 2; n++ {
		s.mors = append(s.mors, arrow(c, n))
	}
	return c
}

// bareMonoid is addMonoid without a sampler attached.
func bareMonoid(name string) *cat.Category {
	return cat.MustNew(name, cat.Ops{
		Identity: func(a cat.Obj) any { return 0 },
		Compose: func(f, g cat.Morphism) (any, error) {
			return f.Payload().(int) + g.Payload().(int), nil
		},
	})
}

// arrow mints the additive monoid arrow with the given payload.
func arrow(c *cat.Category, n int) cat.Morphism {
	return c.NewMorphism(dot, dot, n)
}

// freeMonoid returns the one-object category of strings under
// concatenation, sampled over single letters.
func freeMonoid(name string, letters ...string) *cat.Category {
	s := &fixedSampler{}
	c := cat.MustNew(name, cat.Ops{
		Identity: func(a cat.Obj) any { return "" },
		Compose: func(f, g cat.Morphism) (any, error) {
			return f.Payload().(string) + g.Payload().(string), nil
		},
	}, cat.WithSampler(s))
	s.objs = []cat.Obj{dot}
	for _, l := range letters {
		s.mors = append(s.mors, word(c, l))
	}
	return c
}

// word mints the free monoid arrow with the given payload.
func word(c *cat.Category, s string) cat.Morphism {
	return c.NewMorphism(dot, dot, s)
}

// scale returns the endofunctor on the additive monoid multiplying
// payloads by k. It is lawful for every k.
func scale(c *cat.Category, k int) *cat.Functor {
	return cat.MustNewFunctor(fmt.Sprintf("Scale%d", k), c, c,
		func(a cat.Obj) cat.Obj { return a },
		func(m cat.Morphism) any { return m.Payload().(int) * k })
}

// shift returns the endofunctor on the additive monoid adding k to
// payloads. For k != 0 it breaks both functor laws.
func shift(c *cat.Category, k int) *cat.Functor {
	return cat.MustNewFunctor(fmt.Sprintf("Shift%+d", k), c, c,
		func(a cat.Obj) cat.Obj { return a },
		func(m cat.Morphism) any { return m.Payload().(int) + k })
}

// constInt returns the transformation between two additive monoid
// endofunctors whose single component carries payload k.
func constInt(name string, source, target *cat.Functor, k int) *cat.Transformation {
	c := source.Target()
	return cat.MustNewTransformation(name, source, target,
		func(a cat.Obj) (cat.Morphism, error) {
			return arrow(c, k), nil
		})
}

// constWord is constInt for free monoid endofunctors.
func constWord(name string, source, target *cat.Functor, s string) *cat.Transformation {
	c := source.Target()
	return cat.MustNewTransformation(name, source, target,
		func(a cat.Obj) (cat.Morphism, error) {
			return word(c, s), nil
		})
}

// trivialAdjunction assembles Id ⊣ Id on the additive monoid with a
// constant unit u and constant counit e. The triangle identities reduce
// to u + e = 0, so callers pick the verdict by picking the constants.
func trivialAdjunction(c *cat.Category, u, e int) *cat.Adjunction {
	idF := cat.IdentityFunctor(c)
	roundTrip, err := cat.ComposeFunctors(idF, idF)
	if err != nil {
		panic(err)
	}
	unit := constInt("eta", cat.IdentityFunctor(c), roundTrip, u)
	counit := constInt("eps", roundTrip, cat.IdentityFunctor(c), e)
	adj, err := cat.NewAdjunction(idF, idF, unit, counit)
	if err != nil {
		panic(err)
	}
	return adj
}
