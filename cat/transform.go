package cat

import "fmt"

// ComponentFunc produces the component morphism of a transformation at an
// object of the source category. Implementations may fail for objects they
// do not know; the failure surfaces from At.
type ComponentFunc func(a Obj) (Morphism, error)

// Transformation is a natural transformation candidate between two parallel
// functors: a component morphism in the target category for every object of
// the source category.
//
// Construction checks that the functors are parallel, nothing more.
// Naturality of the components is checked only by sampling; a
// Transformation that fails its squares is still a well-formed value.
type Transformation struct {
	name        string
	source      *Functor
	target      *Functor
	component   ComponentFunc
	fingerprint string
}

// NewTransformation constructs a transformation between parallel functors.
// Fails with FunctorMismatch when source and target do not share both
// categories by identity.
func NewTransformation(name string, source, target *Functor, component ComponentFunc) (*Transformation, error) {
	if name == "" {
		return nil, fmt.Errorf("transformation name must not be empty")
	}
	if source == nil || target == nil {
		return nil, fmt.Errorf("transformation %q: source and target functors are required", name)
	}
	if component == nil {
		return nil, fmt.Errorf("transformation %q: component function is required", name)
	}
	if source.source != target.source || source.target != target.target {
		return nil, NewFunctorMismatchError(
			fmt.Sprintf("transformation %q requires parallel functors: %s runs %s -> %s, %s runs %s -> %s",
				name,
				source.name, source.source.name, source.target.name,
				target.name, target.source.name, target.target.name),
			source, target)
	}
	return newTransformation(name, source, target, component), nil
}

// newTransformation builds without the parallelism check, for composites
// whose endpoints are correct by construction.
func newTransformation(name string, source, target *Functor, component ComponentFunc) *Transformation {
	return &Transformation{
		name:        name,
		source:      source,
		target:      target,
		component:   component,
		fingerprint: transformationFingerprint(name, source.fingerprint, target.fingerprint),
	}
}

// MustNewTransformation is like NewTransformation but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustNewTransformation(name string, source, target *Functor, component ComponentFunc) *Transformation {
	t, err := NewTransformation(name, source, target, component)
	if err != nil {
		panic(err)
	}
	return t
}

// IdentityTransformation returns the identity transformation on a functor:
// the component at every object is the target category's identity at F(a).
func IdentityTransformation(f *Functor) *Transformation {
	return newTransformation(
		fmt.Sprintf("id(%s)", f.name),
		f, f,
		func(a Obj) (Morphism, error) {
			return f.target.Identity(f.ApplyObj(a)), nil
		})
}

// Name returns the transformation's display name.
func (t *Transformation) Name() string { return t.name }

// Source returns the source functor.
func (t *Transformation) Source() *Functor { return t.source }

// Target returns the target functor.
func (t *Transformation) Target() *Functor { return t.target }

// Fingerprint returns the transformation's content-addressed identity.
func (t *Transformation) Fingerprint() string { return t.fingerprint }

// At returns the component morphism at an object. The component must live
// in the target category and run F(a) -> G(a) under that category's object
// equality; ill-fitting components are structural errors at lookup time.
func (t *Transformation) At(a Obj) (Morphism, error) {
	m, err := t.component(a)
	if err != nil {
		return Morphism{}, fmt.Errorf("component of %s at %v: %w", t.name, a, err)
	}
	d := t.source.target
	if m.owner != d {
		return Morphism{}, NewForeignMorphismError(d, m)
	}
	wantDom := t.source.ApplyObj(a)
	wantCod := t.target.ApplyObj(a)
	if !d.ObjEqual(m.dom, wantDom) || !d.ObjEqual(m.cod, wantCod) {
		return Morphism{}, &StructuralError{
			Code:     ErrCodeCompositionMismatch,
			Message:  fmt.Sprintf("component of %s at %v must run %v -> %v, got %s", t.name, a, wantDom, wantCod, m),
			Category: d.name,
		}
	}
	return m, nil
}

// VerticalCompose returns the componentwise composite of alpha then beta:
// for alpha: F => G and beta: G => H the result runs F => H with components
// Compose(alpha_a, beta_a). Fails with NotComposable unless alpha's target
// functor and beta's source functor are structurally the same.
func VerticalCompose(alpha, beta *Transformation) (*Transformation, error) {
	if alpha == nil || beta == nil {
		return nil, fmt.Errorf("vertical compose: both operands are required")
	}
	if !SameFunctor(alpha.target, beta.source) {
		return nil, NewNotComposableError(
			fmt.Sprintf("vertical composition needs %s to end where %s begins: %s vs %s",
				alpha.name, beta.name, alpha.target.name, beta.source.name),
			alpha.name, beta.name)
	}

	d := alpha.source.target
	return newTransformation(
		fmt.Sprintf("%s·%s", beta.name, alpha.name),
		alpha.source, beta.target,
		func(a Obj) (Morphism, error) {
			first, err := alpha.At(a)
			if err != nil {
				return Morphism{}, err
			}
			second, err := beta.At(a)
			if err != nil {
				return Morphism{}, err
			}
			return d.Compose(first, second)
		}), nil
}

// HorizontalCompose composes side by side: for alpha: F => G over C -> D
// and beta: H => K over D -> E the result runs H∘F => K∘G over C -> E with
// component Compose(H(alpha_a), beta_{G(a)}) at each object a. Fails with
// NotComposable unless the middle category matches by identity.
func HorizontalCompose(alpha, beta *Transformation) (*Transformation, error) {
	if alpha == nil || beta == nil {
		return nil, fmt.Errorf("horizontal compose: both operands are required")
	}
	if alpha.source.target != beta.source.source {
		return nil, NewNotComposableError(
			fmt.Sprintf("horizontal composition needs %s to live over the category %s begins in: %s vs %s",
				alpha.name, beta.name, alpha.source.target.name, beta.source.source.name),
			alpha.name, beta.name)
	}

	// Boundary checks passed, so the functor composites cannot fail.
	source, err := ComposeFunctors(alpha.source, beta.source)
	if err != nil {
		return nil, err
	}
	target, err := ComposeFunctors(alpha.target, beta.target)
	if err != nil {
		return nil, err
	}

	e := beta.source.target
	return newTransformation(
		fmt.Sprintf("%s∗%s", beta.name, alpha.name),
		source, target,
		func(a Obj) (Morphism, error) {
			fa, err := alpha.At(a)
			if err != nil {
				return Morphism{}, err
			}
			left, err := beta.source.ApplyMor(fa)
			if err != nil {
				return Morphism{}, err
			}
			right, err := beta.At(alpha.target.ApplyObj(a))
			if err != nil {
				return Morphism{}, err
			}
			return e.Compose(left, right)
		}), nil
}

// WhiskerLeft post-composes a functor onto a transformation: for
// alpha: G => H over C -> D and f: D -> E the result runs
// f∘G => f∘H over C -> E with component f(alpha_a). Fails with
// NotComposable unless f begins where alpha's functors end.
func WhiskerLeft(f *Functor, alpha *Transformation) (*Transformation, error) {
	if f == nil || alpha == nil {
		return nil, fmt.Errorf("whisker left: functor and transformation are required")
	}
	if alpha.source.target != f.source {
		return nil, NewNotComposableError(
			fmt.Sprintf("left whiskering needs %s to begin where %s lives: %s vs %s",
				f.name, alpha.name, f.source.name, alpha.source.target.name),
			f.name, alpha.name)
	}

	source, err := ComposeFunctors(alpha.source, f)
	if err != nil {
		return nil, err
	}
	target, err := ComposeFunctors(alpha.target, f)
	if err != nil {
		return nil, err
	}

	return newTransformation(
		fmt.Sprintf("(%s %s)", f.name, alpha.name),
		source, target,
		func(a Obj) (Morphism, error) {
			m, err := alpha.At(a)
			if err != nil {
				return Morphism{}, err
			}
			return f.ApplyMor(m)
		}), nil
}

// WhiskerRight pre-composes a functor into a transformation: for
// alpha: G => H over C -> D and f: B -> C the result runs
// G∘f => H∘f over B -> D with component alpha_{f(b)}. Fails with
// NotComposable unless f ends where alpha's functors begin.
func WhiskerRight(alpha *Transformation, f *Functor) (*Transformation, error) {
	if alpha == nil || f == nil {
		return nil, fmt.Errorf("whisker right: transformation and functor are required")
	}
	if f.target != alpha.source.source {
		return nil, NewNotComposableError(
			fmt.Sprintf("right whiskering needs %s to end where %s lives: %s vs %s",
				f.name, alpha.name, f.target.name, alpha.source.source.name),
			alpha.name, f.name)
	}

	source, err := ComposeFunctors(f, alpha.source)
	if err != nil {
		return nil, err
	}
	target, err := ComposeFunctors(f, alpha.target)
	if err != nil {
		return nil, err
	}

	return newTransformation(
		fmt.Sprintf("(%s %s)", alpha.name, f.name),
		source, target,
		func(b Obj) (Morphism, error) {
			return alpha.At(f.ApplyObj(b))
		}), nil
}
