package cat

import "fmt"

// Monad is an endofunctor T with a unit Id => T and a multiplication
// T∘T => T. Like every structure here it carries no claim about its laws.
type Monad struct {
	functor        *Functor
	unit           *Transformation
	multiplication *Transformation
	fingerprint    string
}

// NewMonad assembles a monad candidate from an endofunctor, a unit, and a
// multiplication. Fails with IncompatibleCategories when t is not an
// endofunctor and FunctorMismatch when the unit does not run Id => T or
// the multiplication does not run T∘T => T by spine equality.
func NewMonad(t *Functor, unit, multiplication *Transformation) (*Monad, error) {
	if t == nil || unit == nil || multiplication == nil {
		return nil, fmt.Errorf("monad: functor, unit, and multiplication are required")
	}
	c := t.Source()
	if t.Target() != c {
		return nil, NewIncompatibleCategoriesError(
			fmt.Sprintf("monad functor %s must be an endofunctor", t.Name()),
			c, t.Target())
	}
	if !SameFunctor(unit.Source(), IdentityFunctor(c)) || !SameFunctor(unit.Target(), t) {
		return nil, NewFunctorMismatchError(
			fmt.Sprintf("monad unit %s must run Id(%s) => %s", unit.Name(), c.Name(), t.Name()),
			unit.Source(), unit.Target())
	}
	tt, err := ComposeFunctors(t, t)
	if err != nil {
		return nil, err
	}
	if !SameFunctor(multiplication.Source(), tt) || !SameFunctor(multiplication.Target(), t) {
		return nil, NewFunctorMismatchError(
			fmt.Sprintf("monad multiplication %s must run %s => %s",
				multiplication.Name(), tt.Name(), t.Name()),
			multiplication.Source(), multiplication.Target())
	}
	return &Monad{
		functor:        t,
		unit:           unit,
		multiplication: multiplication,
		fingerprint: monadFingerprint(DomainMonad,
			t.Fingerprint(), unit.Fingerprint(), multiplication.Fingerprint()),
	}, nil
}

// Functor returns the underlying endofunctor T.
func (m *Monad) Functor() *Functor { return m.functor }

// Name renders the monad after its endofunctor.
func (m *Monad) Name() string { return fmt.Sprintf("Monad(%s)", m.functor.name) }

// Unit returns the unit Id => T.
func (m *Monad) Unit() *Transformation { return m.unit }

// Multiplication returns the multiplication T∘T => T.
func (m *Monad) Multiplication() *Transformation { return m.multiplication }

// Fingerprint returns the monad's content-addressed identity.
func (m *Monad) Fingerprint() string { return m.fingerprint }

// Comonad is an endofunctor W with an extract W => Id and a duplicate
// W => W∘W.
type Comonad struct {
	functor     *Functor
	extract     *Transformation
	duplicate   *Transformation
	fingerprint string
}

// NewComonad assembles a comonad candidate, dually to NewMonad: the
// extract must run W => Id and the duplicate W => W∘W by spine equality.
func NewComonad(w *Functor, extract, duplicate *Transformation) (*Comonad, error) {
	if w == nil || extract == nil || duplicate == nil {
		return nil, fmt.Errorf("comonad: functor, extract, and duplicate are required")
	}
	d := w.Source()
	if w.Target() != d {
		return nil, NewIncompatibleCategoriesError(
			fmt.Sprintf("comonad functor %s must be an endofunctor", w.Name()),
			d, w.Target())
	}
	if !SameFunctor(extract.Source(), w) || !SameFunctor(extract.Target(), IdentityFunctor(d)) {
		return nil, NewFunctorMismatchError(
			fmt.Sprintf("comonad extract %s must run %s => Id(%s)", extract.Name(), w.Name(), d.Name()),
			extract.Source(), extract.Target())
	}
	ww, err := ComposeFunctors(w, w)
	if err != nil {
		return nil, err
	}
	if !SameFunctor(duplicate.Source(), w) || !SameFunctor(duplicate.Target(), ww) {
		return nil, NewFunctorMismatchError(
			fmt.Sprintf("comonad duplicate %s must run %s => %s",
				duplicate.Name(), w.Name(), ww.Name()),
			duplicate.Source(), duplicate.Target())
	}
	return &Comonad{
		functor:   w,
		extract:   extract,
		duplicate: duplicate,
		fingerprint: monadFingerprint(DomainComonad,
			w.Fingerprint(), extract.Fingerprint(), duplicate.Fingerprint()),
	}, nil
}

// Functor returns the underlying endofunctor W.
func (w *Comonad) Functor() *Functor { return w.functor }

// Name renders the comonad after its endofunctor.
func (w *Comonad) Name() string { return fmt.Sprintf("Comonad(%s)", w.functor.name) }

// Extract returns the counit W => Id.
func (w *Comonad) Extract() *Transformation { return w.extract }

// Duplicate returns the comultiplication W => W∘W.
func (w *Comonad) Duplicate() *Transformation { return w.duplicate }

// Fingerprint returns the comonad's content-addressed identity.
func (w *Comonad) Fingerprint() string { return w.fingerprint }

// DeriveMonad builds the monad an adjunction F ⊣ G induces on the source
// category: T = G∘F, unit the adjunction's unit, multiplication the counit
// whiskered into the middle of T∘T, G(ε F): G∘F∘G∘F => G∘F.
func DeriveMonad(adj *Adjunction) (*Monad, error) {
	t, err := ComposeFunctors(adj.left, adj.right)
	if err != nil {
		return nil, err
	}
	inner, err := WhiskerRight(adj.counit, adj.left)
	if err != nil {
		return nil, err
	}
	mult, err := WhiskerLeft(adj.right, inner)
	if err != nil {
		return nil, err
	}
	return &Monad{
		functor:        t,
		unit:           adj.unit,
		multiplication: mult,
		fingerprint: monadFingerprint(DomainMonad,
			t.fingerprint, adj.unit.fingerprint, mult.fingerprint),
	}, nil
}

// DeriveComonad builds the comonad the same adjunction induces on the
// target category: W = F∘G, extract the counit, duplicate the unit
// whiskered into the middle of W∘W, F(η G): F∘G => F∘G∘F∘G.
func DeriveComonad(adj *Adjunction) (*Comonad, error) {
	w, err := ComposeFunctors(adj.right, adj.left)
	if err != nil {
		return nil, err
	}
	inner, err := WhiskerRight(adj.unit, adj.right)
	if err != nil {
		return nil, err
	}
	dup, err := WhiskerLeft(adj.left, inner)
	if err != nil {
		return nil, err
	}
	return &Comonad{
		functor:   w,
		extract:   adj.counit,
		duplicate: dup,
		fingerprint: monadFingerprint(DomainComonad,
			w.fingerprint, adj.counit.fingerprint, dup.fingerprint),
	}, nil
}
