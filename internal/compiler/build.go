package compiler

import (
	"context"
	"fmt"
	"sort"

	"github.com/roach88/qed/cat"
)

// Category pairs a built cat.Category with its presentation, keeping the
// arrow table addressable by name.
type Category struct {
	spec   *CategorySpec
	handle *cat.Category
}

// Spec returns the presentation the category was built from.
func (c *Category) Spec() *CategorySpec { return c.spec }

// Handle returns the built category.
func (c *Category) Handle() *cat.Category { return c.handle }

// Arrow mints the morphism for an arrow reference, including the reserved
// identity form.
func (c *Category) Arrow(ref string) (cat.Morphism, error) {
	a, ok := c.spec.ResolveArrow(ref)
	if !ok {
		return cat.Morphism{}, fmt.Errorf("category %q has no arrow %q", c.spec.Name, ref)
	}
	return c.handle.NewMorphism(a.Dom, a.Cod, ref), nil
}

// Library holds every structure a presentation built, addressable by the
// names the presentation used.
type Library struct {
	categories      map[string]*Category
	functors        map[string]*cat.Functor
	transformations map[string]*cat.Transformation
	adjunctions     map[string]*cat.Adjunction
	spec            *LibrarySpec
}

// Spec returns the library's presentation.
func (l *Library) Spec() *LibrarySpec { return l.spec }

// Category looks up a built category by name.
func (l *Library) Category(name string) (*Category, error) {
	c, ok := l.categories[name]
	if !ok {
		return nil, fmt.Errorf("library has no category %q", name)
	}
	return c, nil
}

// Functor looks up a built functor by name.
func (l *Library) Functor(name string) (*cat.Functor, error) {
	f, ok := l.functors[name]
	if !ok {
		return nil, fmt.Errorf("library has no functor %q", name)
	}
	return f, nil
}

// Transformation looks up a built transformation by name.
func (l *Library) Transformation(name string) (*cat.Transformation, error) {
	t, ok := l.transformations[name]
	if !ok {
		return nil, fmt.Errorf("library has no transformation %q", name)
	}
	return t, nil
}

// Adjunction looks up a built adjunction by name.
func (l *Library) Adjunction(name string) (*cat.Adjunction, error) {
	a, ok := l.adjunctions[name]
	if !ok {
		return nil, fmt.Errorf("library has no adjunction %q", name)
	}
	return a, nil
}

// CategoryNames returns the built category names, sorted.
func (l *Library) CategoryNames() []string { return sortedKeys(l.categories) }

// FunctorNames returns the built functor names, sorted.
func (l *Library) FunctorNames() []string { return sortedKeys(l.functors) }

// TransformationNames returns the built transformation names, sorted.
func (l *Library) TransformationNames() []string { return sortedKeys(l.transformations) }

// AdjunctionNames returns the built adjunction names, sorted.
func (l *Library) AdjunctionNames() []string { return sortedKeys(l.adjunctions) }

// Build validates a library spec and constructs the cat values it
// describes. Presented categories come out with exhaustive deterministic
// samplers and the finite-objects capability, so every law check against
// them can reach exhaustive verdicts.
func Build(spec *LibrarySpec) (*Library, error) {
	if errs := Validate(spec); len(errs) > 0 {
		return nil, fmt.Errorf("invalid presentation (%d errors): %w", len(errs), errs[0])
	}

	b := &builder{
		spec: spec,
		lib: &Library{
			categories:      make(map[string]*Category),
			functors:        make(map[string]*cat.Functor),
			transformations: make(map[string]*cat.Transformation),
			adjunctions:     make(map[string]*cat.Adjunction),
			spec:            spec,
		},
		byHandle: make(map[*cat.Category]*Category),
	}

	for _, name := range sortedKeys(spec.Categories) {
		if err := b.buildCategory(spec.Categories[name]); err != nil {
			return nil, err
		}
	}
	for _, name := range sortedKeys(spec.Functors) {
		if _, err := b.buildFunctor(name); err != nil {
			return nil, err
		}
	}
	for _, name := range sortedKeys(spec.Transformations) {
		if err := b.buildTransformation(spec.Transformations[name]); err != nil {
			return nil, err
		}
	}
	for _, name := range sortedKeys(spec.Adjunctions) {
		if err := b.buildAdjunction(spec.Adjunctions[name]); err != nil {
			return nil, err
		}
	}

	return b.lib, nil
}

type builder struct {
	spec     *LibrarySpec
	lib      *Library
	byHandle map[*cat.Category]*Category
}

func (b *builder) buildCategory(spec *CategorySpec) error {
	digest, err := spec.Digest()
	if err != nil {
		return fmt.Errorf("digesting category %q: %w", spec.Name, err)
	}

	caps := make([]cat.Capability, 0, len(spec.Capabilities)+1)
	caps = append(caps, cat.CapFiniteObjects)
	for _, name := range spec.Capabilities {
		c, err := cat.ParseCapability(name)
		if err != nil {
			return fmt.Errorf("category %q: %w", spec.Name, err)
		}
		if c != cat.CapFiniteObjects {
			caps = append(caps, c)
		}
	}

	sampler := &tableSampler{}
	handle, err := cat.New(spec.Name, tableOps(spec),
		cat.WithSampler(sampler),
		cat.WithCapabilities(caps...),
		cat.WithDigest(digest))
	if err != nil {
		return fmt.Errorf("building category %q: %w", spec.Name, err)
	}
	sampler.fill(spec, handle)

	compiled := &Category{spec: spec, handle: handle}
	b.lib.categories[spec.Name] = compiled
	b.byHandle[handle] = compiled
	return nil
}

// tableOps turns a composition table into category operations. Payloads
// are arrow references; identities compose implicitly, everything else
// goes through the table. A missing entry surfaces as a composition
// mismatch, which is the right verdict for a partial presentation.
func tableOps(spec *CategorySpec) cat.Ops {
	return cat.Ops{
		Identity: func(a cat.Obj) any {
			s, ok := a.(string)
			if !ok {
				return nil
			}
			return identityArrow(s)
		},
		Compose: func(f, g cat.Morphism) (any, error) {
			fp, ok := f.Payload().(string)
			if !ok {
				return nil, fmt.Errorf("payload %v is not an arrow reference", f.Payload())
			}
			gp, ok := g.Payload().(string)
			if !ok {
				return nil, fmt.Errorf("payload %v is not an arrow reference", g.Payload())
			}
			if _, ok := parseIdentityArrow(fp); ok {
				return gp, nil
			}
			if _, ok := parseIdentityArrow(gp); ok {
				return fp, nil
			}
			h, ok := spec.Compose[fp][gp]
			if !ok {
				return nil, fmt.Errorf("composition table has no entry for (%s, %s)", fp, gp)
			}
			return h, nil
		},
	}
}

// tableSampler enumerates a presented category exhaustively and
// deterministically: objects sorted, then identity arrows in object order
// followed by declared arrows in name order. It is filled after category
// construction to break the cycle between category and sampler.
type tableSampler struct {
	objs []cat.Obj
	mors []cat.Morphism
}

func (s *tableSampler) fill(spec *CategorySpec, handle *cat.Category) {
	objects := append([]string(nil), spec.Objects...)
	sort.Strings(objects)
	for _, o := range objects {
		s.objs = append(s.objs, o)
		s.mors = append(s.mors, handle.Identity(o))
	}
	for _, name := range spec.ArrowNames() {
		a := spec.Arrows[name]
		s.mors = append(s.mors, handle.NewMorphism(a.Dom, a.Cod, name))
	}
}

func (s *tableSampler) SampleObjects(ctx context.Context, n int) ([]cat.Obj, error) {
	if n > len(s.objs) {
		n = len(s.objs)
	}
	return s.objs[:n], nil
}

func (s *tableSampler) SampleMorphisms(ctx context.Context, n int) ([]cat.Morphism, error) {
	if n > len(s.mors) {
		n = len(s.mors)
	}
	return s.mors[:n], nil
}

func (b *builder) buildFunctor(name string) (*cat.Functor, error) {
	if f, ok := b.lib.functors[name]; ok {
		return f, nil
	}
	spec, ok := b.spec.Functors[name]
	if !ok {
		return nil, fmt.Errorf("unknown functor %q", name)
	}

	var f *cat.Functor
	switch spec.Kind() {
	case FunctorIdentity:
		c, err := b.lib.Category(spec.Identity)
		if err != nil {
			return nil, err
		}
		f = cat.IdentityFunctor(c.handle)

	case FunctorComposite:
		var err error
		for _, part := range spec.Compose {
			// Validation rejects cycles, so this recursion terminates.
			g, err2 := b.buildFunctor(part)
			if err2 != nil {
				return nil, err2
			}
			if f == nil {
				f = g
				continue
			}
			f, err = cat.ComposeFunctors(f, g)
			if err != nil {
				return nil, fmt.Errorf("building functor %q: %w", name, err)
			}
		}

	default:
		source, err := b.lib.Category(spec.Source)
		if err != nil {
			return nil, err
		}
		target, err := b.lib.Category(spec.Target)
		if err != nil {
			return nil, err
		}
		f, err = cat.NewFunctor(name, source.handle, target.handle,
			tableObjMap(spec), tableMorMap(spec))
		if err != nil {
			return nil, fmt.Errorf("building functor %q: %w", name, err)
		}
	}

	b.lib.functors[name] = f
	return f, nil
}

// tableObjMap evaluates a presented object map. Objects outside the
// presentation pass through unchanged; validation guarantees totality on
// the presented ones.
func tableObjMap(spec *FunctorSpec) cat.ObjMap {
	return func(a cat.Obj) cat.Obj {
		s, ok := a.(string)
		if !ok {
			return a
		}
		if img, ok := spec.Objects[s]; ok {
			return img
		}
		return a
	}
}

// tableMorMap evaluates a presented arrow map on payloads. Identity
// arrows map to the identity at the image object.
func tableMorMap(spec *FunctorSpec) cat.MorMap {
	objMap := tableObjMap(spec)
	return func(m cat.Morphism) any {
		p, ok := m.Payload().(string)
		if !ok {
			return m.Payload()
		}
		if obj, ok := parseIdentityArrow(p); ok {
			img, _ := objMap(obj).(string)
			return identityArrow(img)
		}
		if img, ok := spec.Arrows[p]; ok {
			return img
		}
		return p
	}
}

func (b *builder) buildTransformation(spec *TransformationSpec) error {
	source, err := b.buildFunctor(spec.Source)
	if err != nil {
		return err
	}
	target, err := b.buildFunctor(spec.Target)
	if err != nil {
		return err
	}
	targetCat, ok := b.byHandle[source.Target()]
	if !ok {
		return fmt.Errorf("transformation %q: target category of %q was not built here", spec.Name, spec.Source)
	}

	components := spec.Components
	t, err := cat.NewTransformation(spec.Name, source, target,
		func(a cat.Obj) (cat.Morphism, error) {
			s, ok := a.(string)
			if !ok {
				return cat.Morphism{}, fmt.Errorf("object %v is not a presented object", a)
			}
			ref, ok := components[s]
			if !ok {
				return cat.Morphism{}, fmt.Errorf("no component at object %q", s)
			}
			return targetCat.Arrow(ref)
		})
	if err != nil {
		return fmt.Errorf("building transformation %q: %w", spec.Name, err)
	}

	b.lib.transformations[spec.Name] = t
	return nil
}

func (b *builder) buildAdjunction(spec *AdjunctionSpec) error {
	left, err := b.buildFunctor(spec.Left)
	if err != nil {
		return err
	}
	right, err := b.buildFunctor(spec.Right)
	if err != nil {
		return err
	}
	unit, err := b.lib.Transformation(spec.Unit)
	if err != nil {
		return fmt.Errorf("adjunction %q: %w", spec.Name, err)
	}
	counit, err := b.lib.Transformation(spec.Counit)
	if err != nil {
		return fmt.Errorf("adjunction %q: %w", spec.Name, err)
	}

	adj, err := cat.NewAdjunction(left, right, unit, counit)
	if err != nil {
		return fmt.Errorf("building adjunction %q: %w", spec.Name, err)
	}

	b.lib.adjunctions[spec.Name] = adj
	return nil
}
