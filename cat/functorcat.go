package cat

import (
	"context"
	"fmt"
)

// functorEqualitySamples bounds how many base objects morphism equality in
// a functor category compares components at.
const functorEqualitySamples = 16

// FunctorCategory builds the category whose objects are functors
// source -> target and whose morphism payloads are transformations between
// them. Identity is IdentityTransformation, composition is VerticalCompose.
//
// Objects must be *Functor values; anything else fails at composition time.
// Morphism equality compares components at objects drawn from the source
// category's sampler, so it is approximate on non-exhaustive samplers and
// falls back to pointer equality when the source has no sampler at all.
// Extra options (a sampler enumerating functors, capabilities) pass through
// to the constructed category.
func FunctorCategory(source, target *Category, opts ...Option) (*Category, error) {
	if source == nil || target == nil {
		return nil, fmt.Errorf("functor category: source and target categories are required")
	}

	ops := Ops{
		Identity: func(a Obj) any {
			f, ok := a.(*Functor)
			if !ok {
				return nil
			}
			return IdentityTransformation(f)
		},
		Compose: func(f, g Morphism) (any, error) {
			first, ok := f.Payload().(*Transformation)
			if !ok {
				return nil, fmt.Errorf("functor category payload must be a transformation, got %T", f.Payload())
			}
			second, ok := g.Payload().(*Transformation)
			if !ok {
				return nil, fmt.Errorf("functor category payload must be a transformation, got %T", g.Payload())
			}
			return VerticalCompose(first, second)
		},
	}

	objEqual := func(a, b Obj) bool {
		af, ok := a.(*Functor)
		if !ok {
			return false
		}
		bf, ok := b.(*Functor)
		if !ok {
			return false
		}
		return SameFunctor(af, bf)
	}

	morEqual := func(f, g Morphism) bool {
		first, ok := f.Payload().(*Transformation)
		if !ok {
			return false
		}
		second, ok := g.Payload().(*Transformation)
		if !ok {
			return false
		}
		if !SameFunctor(first.source, second.source) || !SameFunctor(first.target, second.target) {
			return false
		}
		s := source.Sampler()
		if s == nil {
			return first == second
		}
		objs, err := s.SampleObjects(context.Background(), functorEqualitySamples)
		if err != nil {
			return false
		}
		for _, a := range objs {
			ma, err := first.At(a)
			if err != nil {
				return false
			}
			mb, err := second.At(a)
			if err != nil {
				return false
			}
			if !target.MorEqual(ma, mb) {
				return false
			}
		}
		return true
	}

	digest := MustDigest(DomainFunctorCategory, map[string]any{
		"source": source.fingerprint,
		"target": target.fingerprint,
	})

	base := []Option{
		WithObjEqual(objEqual),
		WithMorEqual(morEqual),
		WithDigest(digest),
	}
	return New(
		fmt.Sprintf("[%s, %s]", source.name, target.name),
		ops,
		append(base, opts...)...)
}
