package cat

import "fmt"

// Adjunction packages two functors F: C -> D and G: D -> C together with a
// unit Id(C) => G∘F and a counit F∘G => Id(D).
//
// Construction checks the unit and counit against the functor composites
// structurally and nothing else: the triangle identities are sampled by the
// laws package, and an adjunction that fails them still constructs. There
// is deliberately no verified bit on the value; verified status is the
// ledger's business, keyed by fingerprint.
type Adjunction struct {
	left        *Functor
	right       *Functor
	unit        *Transformation
	counit      *Transformation
	fingerprint string
}

// NewAdjunction assembles an adjunction candidate F ⊣ G.
// Fails with IncompatibleCategories when G does not run opposite F, and
// with FunctorMismatch when the unit or counit endpoints are not the
// identity functors and composites they must be.
func NewAdjunction(left, right *Functor, unit, counit *Transformation) (*Adjunction, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("adjunction: left and right functors are required")
	}
	if unit == nil || counit == nil {
		return nil, fmt.Errorf("adjunction: unit and counit are required")
	}

	c := left.source
	d := left.target
	if right.source != d || right.target != c {
		return nil, NewIncompatibleCategoriesError(
			fmt.Sprintf("adjunction needs %s: %s -> %s to run opposite %s: %s -> %s",
				right.name, right.source.name, right.target.name,
				left.name, c.name, d.name),
			right.source, d)
	}

	// Shape checks lean on spine equality, so the caller's composites may
	// be associated any way they like as long as the leaves line up.
	roundTrip, err := ComposeFunctors(left, right)
	if err != nil {
		return nil, err
	}
	if !SameFunctor(unit.source, IdentityFunctor(c)) {
		return nil, NewFunctorMismatchError(
			fmt.Sprintf("unit %s must start at the identity functor on %s, starts at %s",
				unit.name, c.name, unit.source.name),
			unit.source, nil)
	}
	if !SameFunctor(unit.target, roundTrip) {
		return nil, NewFunctorMismatchError(
			fmt.Sprintf("unit %s must end at %s, ends at %s",
				unit.name, roundTrip.name, unit.target.name),
			unit.target, roundTrip)
	}

	coRoundTrip, err := ComposeFunctors(right, left)
	if err != nil {
		return nil, err
	}
	if !SameFunctor(counit.source, coRoundTrip) {
		return nil, NewFunctorMismatchError(
			fmt.Sprintf("counit %s must start at %s, starts at %s",
				counit.name, coRoundTrip.name, counit.source.name),
			counit.source, coRoundTrip)
	}
	if !SameFunctor(counit.target, IdentityFunctor(d)) {
		return nil, NewFunctorMismatchError(
			fmt.Sprintf("counit %s must end at the identity functor on %s, ends at %s",
				counit.name, d.name, counit.target.name),
			counit.target, nil)
	}

	return &Adjunction{
		left:   left,
		right:  right,
		unit:   unit,
		counit: counit,
		fingerprint: adjunctionFingerprint(
			left.fingerprint, right.fingerprint,
			unit.fingerprint, counit.fingerprint),
	}, nil
}

// Left returns the left adjoint F.
func (a *Adjunction) Left() *Functor { return a.left }

// Right returns the right adjoint G.
func (a *Adjunction) Right() *Functor { return a.right }

// Unit returns the unit Id(C) => G∘F.
func (a *Adjunction) Unit() *Transformation { return a.unit }

// Counit returns the counit F∘G => Id(D).
func (a *Adjunction) Counit() *Transformation { return a.counit }

// Name renders the adjunction as "F ⊣ G".
func (a *Adjunction) Name() string {
	return fmt.Sprintf("%s ⊣ %s", a.left.name, a.right.name)
}

// Fingerprint returns the adjunction's content-addressed identity.
func (a *Adjunction) Fingerprint() string { return a.fingerprint }
