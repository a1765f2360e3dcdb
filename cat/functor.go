package cat

import "fmt"

// ObjMap maps objects of a source category to objects of a target category.
type ObjMap func(a Obj) Obj

// MorMap maps a source morphism to the payload of its image. The functor
// machinery derives the image's endpoints from the object map, so
// F(f): F(a) -> F(b) holds by construction and cannot be misstated.
type MorMap func(m Morphism) any

// Functor is a structure-preserving map between two categories.
//
// Like Category, a Functor is a handle. Equality of functors is structural
// on the composition spine (see SameFunctor); whether a functor actually
// preserves identities and composition is the laws package's concern.
type Functor struct {
	name       string
	source     *Category
	target     *Category
	objMap     ObjMap
	morPayload MorMap

	// spine lists the leaf functors in application order. An identity
	// functor has an empty spine; composites concatenate. Keeping the
	// flattened form makes structural equality associative and
	// identity-neutral, which is what lets derived monad and comonad
	// boundaries line up without extensional comparison.
	spine []*Functor

	fingerprint string
}

// NewFunctor constructs a functor from object and morphism maps.
// Construction validates shape only: totality and compatibility of the maps
// are trusted, preservation laws are checked by sampling.
func NewFunctor(name string, source, target *Category, objects ObjMap, morphisms MorMap) (*Functor, error) {
	if name == "" {
		return nil, fmt.Errorf("functor name must not be empty")
	}
	if source == nil || target == nil {
		return nil, fmt.Errorf("functor %q: source and target categories are required", name)
	}
	if objects == nil {
		return nil, fmt.Errorf("functor %q: object map is required", name)
	}
	if morphisms == nil {
		return nil, fmt.Errorf("functor %q: morphism map is required", name)
	}

	f := &Functor{
		name:       name,
		source:     source,
		target:     target,
		objMap:     objects,
		morPayload: morphisms,
	}
	f.spine = []*Functor{f}
	f.fingerprint = leafFunctorFingerprint(name, source.fingerprint, target.fingerprint)
	return f, nil
}

// MustNewFunctor is like NewFunctor but panics on error. Use only in tests
// or when inputs are known to be valid.
func MustNewFunctor(name string, source, target *Category, objects ObjMap, morphisms MorMap) *Functor {
	f, err := NewFunctor(name, source, target, objects, morphisms)
	if err != nil {
		panic(err)
	}
	return f
}

// IdentityFunctor returns the identity functor on a category.
func IdentityFunctor(c *Category) *Functor {
	return &Functor{
		name:        fmt.Sprintf("Id(%s)", c.name),
		source:      c,
		target:      c,
		fingerprint: spineFunctorFingerprint(c.fingerprint, c.fingerprint, nil),
	}
}

// ComposeFunctors returns the composite that applies f first, then g.
// The rendered name follows classical notation: composing F then G prints
// as "G∘F". Fails with IncompatibleCategories unless f's target is g's
// source by identity.
func ComposeFunctors(f, g *Functor) (*Functor, error) {
	if f == nil || g == nil {
		return nil, fmt.Errorf("compose functors: both operands are required")
	}
	if f.target != g.source {
		return nil, NewIncompatibleCategoriesError(
			fmt.Sprintf("cannot compose functor %s out of %s with functor %s out of %s",
				f.name, f.target.name, g.name, g.source.name),
			f.target, g.source)
	}

	spine := make([]*Functor, 0, len(f.spine)+len(g.spine))
	spine = append(spine, f.spine...)
	spine = append(spine, g.spine...)

	spineFPs := make([]string, len(spine))
	for i, leaf := range spine {
		spineFPs[i] = leaf.fingerprint
	}

	return &Functor{
		name:        fmt.Sprintf("%s∘%s", g.name, f.name),
		source:      f.source,
		target:      g.target,
		spine:       spine,
		fingerprint: spineFunctorFingerprint(f.source.fingerprint, g.target.fingerprint, spineFPs),
	}, nil
}

// Name returns the functor's display name.
func (f *Functor) Name() string { return f.name }

// Source returns the source category.
func (f *Functor) Source() *Category { return f.source }

// Target returns the target category.
func (f *Functor) Target() *Category { return f.target }

// Fingerprint returns the functor's content-addressed identity.
func (f *Functor) Fingerprint() string { return f.fingerprint }

// ApplyObj maps an object through the functor.
func (f *Functor) ApplyObj(a Obj) Obj {
	for _, leaf := range f.spine {
		a = leaf.objMap(a)
	}
	return a
}

// ApplyMor maps a morphism through the functor. The image's endpoints come
// from the object map; the payload comes from the morphism map. Fails with
// IncompatibleCategories when m belongs to a different category.
func (f *Functor) ApplyMor(m Morphism) (Morphism, error) {
	if m.owner != f.source {
		return Morphism{}, NewForeignMorphismError(f.source, m)
	}
	for _, leaf := range f.spine {
		m = Morphism{
			dom:     leaf.objMap(m.dom),
			cod:     leaf.objMap(m.cod),
			payload: leaf.morPayload(m),
			owner:   leaf.target,
		}
	}
	return m, nil
}

// Apply dispatches on the kind of x: a Morphism goes through ApplyMor,
// anything else is treated as an object. Domains whose objects are
// themselves Morphism values must call ApplyObj directly.
func (f *Functor) Apply(x any) (any, error) {
	switch v := x.(type) {
	case Morphism:
		return f.ApplyMor(v)
	default:
		return f.ApplyObj(v), nil
	}
}

// SameFunctor reports structural equality of two functors: identical
// endpoints and identical composition spines, leafwise by identity.
// Associativity of composition and identity functors are invisible to it:
// F∘(G∘H) equals (F∘G)∘H, and Id-padding never changes the answer.
func SameFunctor(a, b *Functor) bool {
	if a == b {
		return a != nil
	}
	if a == nil || b == nil {
		return false
	}
	if a.source != b.source || a.target != b.target {
		return false
	}
	if len(a.spine) != len(b.spine) {
		return false
	}
	for i := range a.spine {
		if a.spine[i] != b.spine[i] {
			return false
		}
	}
	return true
}
