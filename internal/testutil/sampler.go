// Package testutil provides deterministic samplers for categories built in
// tests. Law verification draws its evidence from a category's sampler, so
// tests control verdicts entirely by controlling what these return.
package testutil

import (
	"context"
	"math/rand"
	"sync"

	"github.com/roach88/qed/cat"
)

// FixedSampler returns explicit slices in declaration order. Returning the
// whole slice for a larger request declares the space exhausted, which is
// how finite test categories earn exhaustive verdicts.
type FixedSampler struct {
	Objects   []cat.Obj
	Morphisms []cat.Morphism

	// Cycle wraps short slices around to fill every request, so the
	// sampler never declares its space exhausted. Use it to model an
	// infinite category with finitely many test values.
	Cycle bool
}

func (s *FixedSampler) SampleObjects(ctx context.Context, n int) ([]cat.Obj, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.Cycle || len(s.Objects) == 0 {
		if n > len(s.Objects) {
			n = len(s.Objects)
		}
		return s.Objects[:n], nil
	}
	out := make([]cat.Obj, n)
	for i := range out {
		out[i] = s.Objects[i%len(s.Objects)]
	}
	return out, nil
}

func (s *FixedSampler) SampleMorphisms(ctx context.Context, n int) ([]cat.Morphism, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !s.Cycle || len(s.Morphisms) == 0 {
		if n > len(s.Morphisms) {
			n = len(s.Morphisms)
		}
		return s.Morphisms[:n], nil
	}
	out := make([]cat.Morphism, n)
	for i := range out {
		out[i] = s.Morphisms[i%len(s.Morphisms)]
	}
	return out, nil
}

// SeededSampler draws from generator functions through a seeded source, so
// repeated runs see the same pseudo-random evidence. It always fills the
// request and therefore never declares its space exhausted.
//
// All methods are safe for concurrent use; draws are serialized, so the
// sequence of samples is deterministic even under concurrent checks only
// when the callers themselves run in a fixed order.
type SeededSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
	obj func(r *rand.Rand) cat.Obj
	mor func(r *rand.Rand) cat.Morphism
}

// NewSeededSampler builds a sampler over the two generators. Either
// generator may be nil; the corresponding Sample call then returns nothing,
// which reads as an exhausted empty space.
func NewSeededSampler(seed int64, obj func(r *rand.Rand) cat.Obj, mor func(r *rand.Rand) cat.Morphism) *SeededSampler {
	return &SeededSampler{
		rng: rand.New(rand.NewSource(seed)),
		obj: obj,
		mor: mor,
	}
}

func (s *SeededSampler) SampleObjects(ctx context.Context, n int) ([]cat.Obj, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.obj == nil {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]cat.Obj, n)
	for i := range out {
		out[i] = s.obj(s.rng)
	}
	return out, nil
}

func (s *SeededSampler) SampleMorphisms(ctx context.Context, n int) ([]cat.Morphism, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.mor == nil {
		return nil, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]cat.Morphism, n)
	for i := range out {
		out[i] = s.mor(s.rng)
	}
	return out, nil
}
