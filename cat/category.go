package cat

import (
	"fmt"
	"reflect"
)

// Ops supplies a domain's composition structure. Both functions operate on
// payloads; endpoint bookkeeping stays with the Category.
type Ops struct {
	// Identity returns the payload of the identity morphism at an object.
	// Identities are total: every object has one.
	Identity func(a Obj) any

	// Compose returns the payload of f-then-g for a pair the category has
	// already verified to be endpoint-compatible. Domains with partial
	// composition may return an error; it surfaces as a composition
	// mismatch to the caller.
	Compose func(f, g Morphism) (any, error)
}

// Category is a composition structure over opaque objects and morphisms.
//
// A Category is a handle: identity is pointer identity, and two categories
// built from the same data are still different categories. Domains hold the
// handle and mint morphisms through it. All fields are fixed at construction.
type Category struct {
	name        string
	ops         Ops
	objEqual    func(a, b Obj) bool
	morEqual    func(f, g Morphism) bool
	caps        CapabilitySet
	sampler     Sampler
	fingerprint string
}

// Option configures a Category at construction.
type Option func(*Category)

// WithObjEqual overrides object equality. The default is reflect.DeepEqual,
// structural where decidable.
func WithObjEqual(eq func(a, b Obj) bool) Option {
	return func(c *Category) { c.objEqual = eq }
}

// WithMorEqual overrides morphism equality. The override is consulted only
// for two morphisms the category owns and takes over both endpoint and
// payload comparison. The default compares endpoints by the category's
// object equality and payloads by reflect.DeepEqual.
func WithMorEqual(eq func(f, g Morphism) bool) Option {
	return func(c *Category) { c.morEqual = eq }
}

// WithSampler attaches the sampling strategy law checks will draw from.
// Categories without a sampler construct and compose fine but cannot be
// verified.
func WithSampler(s Sampler) Option {
	return func(c *Category) { c.sampler = s }
}

// WithCapabilities declares optional structure the category carries.
func WithCapabilities(caps ...Capability) Option {
	return func(c *Category) { c.caps = NewCapabilitySet(caps...) }
}

// WithDigest folds an external content digest into the category's
// fingerprint. Compiled presentations use this to make fingerprints track
// the presented data, not just the name.
func WithDigest(digest string) Option {
	return func(c *Category) { c.fingerprint = digest }
}

// New constructs a category from a domain's composition structure.
// Construction validates shape only; associativity and identity laws are
// the laws package's concern.
func New(name string, ops Ops, opts ...Option) (*Category, error) {
	if name == "" {
		return nil, fmt.Errorf("category name must not be empty")
	}
	if ops.Identity == nil {
		return nil, fmt.Errorf("category %q: Ops.Identity is required", name)
	}
	if ops.Compose == nil {
		return nil, fmt.Errorf("category %q: Ops.Compose is required", name)
	}

	c := &Category{
		name: name,
		ops:  ops,
		objEqual: func(a, b Obj) bool {
			return reflect.DeepEqual(a, b)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.morEqual == nil {
		c.morEqual = func(f, g Morphism) bool {
			return c.objEqual(f.dom, g.dom) &&
				c.objEqual(f.cod, g.cod) &&
				reflect.DeepEqual(f.payload, g.payload)
		}
	}

	// WithDigest seeds the fingerprint with presented content; the final
	// fingerprint always covers name and capabilities as well.
	c.fingerprint = categoryFingerprint(c.name, c.caps, c.fingerprint)
	return c, nil
}

// MustNew is like New but panics on error. Use only in tests or when inputs
// are known to be valid.
func MustNew(name string, ops Ops, opts ...Option) *Category {
	c, err := New(name, ops, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the category's display name.
func (c *Category) Name() string { return c.name }

// Capabilities returns the declared capability set.
func (c *Category) Capabilities() CapabilitySet { return c.caps }

// Sampler returns the attached sampling strategy, nil when absent.
func (c *Category) Sampler() Sampler { return c.sampler }

// Fingerprint returns the category's content-addressed identity.
func (c *Category) Fingerprint() string { return c.fingerprint }

// ObjEqual reports whether two objects are equal in this category.
func (c *Category) ObjEqual(a, b Obj) bool { return c.objEqual(a, b) }

// MorEqual reports whether two morphisms are equal in this category.
// Morphisms owned by another (or no) category are never equal here.
func (c *Category) MorEqual(f, g Morphism) bool {
	if f.owner != c || g.owner != c {
		return false
	}
	return c.morEqual(f, g)
}

// Owns reports whether m was minted by this category.
func (c *Category) Owns(m Morphism) bool { return m.owner == c }

// NewMorphism mints a raw arrow of this category. Dom, cod, and payload are
// the domain's responsibility; the category only tags ownership.
func (c *Category) NewMorphism(dom, cod Obj, payload any) Morphism {
	return Morphism{dom: dom, cod: cod, payload: payload, owner: c}
}

// Identity returns the identity morphism at an object.
func (c *Category) Identity(a Obj) Morphism {
	return Morphism{dom: a, cod: a, payload: c.ops.Identity(a), owner: c}
}

// Compose returns f-then-g. It fails with IncompatibleCategories when
// either morphism belongs elsewhere and CompositionMismatch when cod(f)
// does not equal dom(g) under the category's object equality.
func (c *Category) Compose(f, g Morphism) (Morphism, error) {
	if f.owner != c {
		return Morphism{}, NewForeignMorphismError(c, f)
	}
	if g.owner != c {
		return Morphism{}, NewForeignMorphismError(c, g)
	}
	if !c.objEqual(f.cod, g.dom) {
		return Morphism{}, NewCompositionMismatchError(c, f, g)
	}
	payload, err := c.ops.Compose(f, g)
	if err != nil {
		return Morphism{}, NewCompositionRejectedError(c, f, g, err)
	}
	return Morphism{dom: f.dom, cod: g.cod, payload: payload, owner: c}, nil
}
