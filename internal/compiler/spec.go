package compiler

import (
	"sort"
	"strings"

	"github.com/roach88/qed/cat"
)

// DomainPresentation is the digest domain for presented category content.
// The digest folds into the built category's fingerprint, so fingerprints
// track the presented data, not just the name.
const DomainPresentation = "qed/presentation/v1"

// identityArrow renders the reserved reference for the identity arrow at a
// named object. Presentations use it wherever an arrow reference may be an
// identity: composition results, functor arrow images, transformation
// components.
func identityArrow(object string) string {
	return "id(" + object + ")"
}

// parseIdentityArrow recognizes the reserved identity form and returns the
// object name inside it.
func parseIdentityArrow(ref string) (string, bool) {
	if strings.HasPrefix(ref, "id(") && strings.HasSuffix(ref, ")") {
		return ref[3 : len(ref)-1], true
	}
	return "", false
}

// ArrowSpec declares one named arrow of a presented category.
type ArrowSpec struct {
	Dom string `json:"dom"`
	Cod string `json:"cod"`
}

// CategorySpec is the declarative skeleton of a finite category: objects,
// named arrows, and a composition table over non-identity arrows.
// Identity arrows are implicit, one per object, addressed as "id(<object>)".
type CategorySpec struct {
	Name         string
	Objects      []string
	Arrows       map[string]ArrowSpec
	Compose      map[string]map[string]string
	Capabilities []string
}

// HasObject reports whether the object is declared.
func (s *CategorySpec) HasObject(name string) bool {
	for _, o := range s.Objects {
		if o == name {
			return true
		}
	}
	return false
}

// ResolveArrow returns the endpoints of an arrow reference: a declared
// arrow name or the reserved identity form.
func (s *CategorySpec) ResolveArrow(ref string) (ArrowSpec, bool) {
	if obj, ok := parseIdentityArrow(ref); ok {
		if !s.HasObject(obj) {
			return ArrowSpec{}, false
		}
		return ArrowSpec{Dom: obj, Cod: obj}, true
	}
	a, ok := s.Arrows[ref]
	return a, ok
}

// ArrowNames returns the declared arrow names, sorted.
func (s *CategorySpec) ArrowNames() []string {
	names := make([]string, 0, len(s.Arrows))
	for name := range s.Arrows {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CanonicalMap renders the spec for digesting and display: strings and
// sorted structures only.
func (s *CategorySpec) CanonicalMap() map[string]any {
	objects := append([]string(nil), s.Objects...)
	sort.Strings(objects)

	arrows := make(map[string]any, len(s.Arrows))
	for name, a := range s.Arrows {
		arrows[name] = map[string]any{"dom": a.Dom, "cod": a.Cod}
	}

	compose := make(map[string]any, len(s.Compose))
	for f, row := range s.Compose {
		inner := make(map[string]any, len(row))
		for g, h := range row {
			inner[g] = h
		}
		compose[f] = inner
	}

	caps := append([]string(nil), s.Capabilities...)
	sort.Strings(caps)

	return map[string]any{
		"kind":         "category",
		"name":         s.Name,
		"objects":      objects,
		"arrows":       arrows,
		"compose":      compose,
		"capabilities": caps,
	}
}

// Digest returns the content digest of the presented category.
func (s *CategorySpec) Digest() (string, error) {
	return cat.Digest(DomainPresentation, s.CanonicalMap())
}

// FunctorKind distinguishes the three presentation forms of a functor.
type FunctorKind int

const (
	// FunctorExplicit lists object and arrow images directly.
	FunctorExplicit FunctorKind = iota
	// FunctorIdentity names a category and means its identity functor.
	FunctorIdentity
	// FunctorComposite names earlier functors in application order.
	FunctorComposite
)

// FunctorSpec is the declarative skeleton of a presented functor, in one
// of three forms. Exactly one form's fields are set; Kind tells which.
type FunctorSpec struct {
	Name string

	// Explicit form.
	Source  string
	Target  string
	Objects map[string]string
	Arrows  map[string]string

	// Identity form: the category name.
	Identity string

	// Composite form: functor names in application order.
	Compose []string
}

// Kind reports which presentation form the spec uses.
func (s *FunctorSpec) Kind() FunctorKind {
	switch {
	case s.Identity != "":
		return FunctorIdentity
	case len(s.Compose) > 0:
		return FunctorComposite
	default:
		return FunctorExplicit
	}
}

// CanonicalMap renders the spec for display.
func (s *FunctorSpec) CanonicalMap() map[string]any {
	m := map[string]any{
		"kind": "functor",
		"name": s.Name,
	}
	switch s.Kind() {
	case FunctorIdentity:
		m["identity"] = s.Identity
	case FunctorComposite:
		m["compose"] = append([]string(nil), s.Compose...)
	default:
		objects := make(map[string]any, len(s.Objects))
		for k, v := range s.Objects {
			objects[k] = v
		}
		arrows := make(map[string]any, len(s.Arrows))
		for k, v := range s.Arrows {
			arrows[k] = v
		}
		m["source"] = s.Source
		m["target"] = s.Target
		m["objects"] = objects
		m["arrows"] = arrows
	}
	return m
}

// TransformationSpec assigns a target-category arrow to each object of the
// source category of two parallel presented functors.
type TransformationSpec struct {
	Name       string
	Source     string
	Target     string
	Components map[string]string
}

// CanonicalMap renders the spec for display.
func (s *TransformationSpec) CanonicalMap() map[string]any {
	components := make(map[string]any, len(s.Components))
	for k, v := range s.Components {
		components[k] = v
	}
	return map[string]any{
		"kind":       "transformation",
		"name":       s.Name,
		"source":     s.Source,
		"target":     s.Target,
		"components": components,
	}
}

// AdjunctionSpec names the four parts of a presented adjunction.
type AdjunctionSpec struct {
	Name   string
	Left   string
	Right  string
	Unit   string
	Counit string
}

// CanonicalMap renders the spec for display.
func (s *AdjunctionSpec) CanonicalMap() map[string]any {
	return map[string]any{
		"kind":   "adjunction",
		"name":   s.Name,
		"left":   s.Left,
		"right":  s.Right,
		"unit":   s.Unit,
		"counit": s.Counit,
	}
}

// LibrarySpec collects every spec a presentation package declares.
type LibrarySpec struct {
	Categories      map[string]*CategorySpec
	Functors        map[string]*FunctorSpec
	Transformations map[string]*TransformationSpec
	Adjunctions     map[string]*AdjunctionSpec
}

// NewLibrarySpec returns an empty library spec.
func NewLibrarySpec() *LibrarySpec {
	return &LibrarySpec{
		Categories:      make(map[string]*CategorySpec),
		Functors:        make(map[string]*FunctorSpec),
		Transformations: make(map[string]*TransformationSpec),
		Adjunctions:     make(map[string]*AdjunctionSpec),
	}
}

// Empty reports whether the presentation declared nothing at all.
func (s *LibrarySpec) Empty() bool {
	return len(s.Categories) == 0 && len(s.Functors) == 0 &&
		len(s.Transformations) == 0 && len(s.Adjunctions) == 0
}

// CanonicalMap renders the whole library skeleton, sorted by kind and
// name, for canonical JSON display (the show command, golden files).
func (s *LibrarySpec) CanonicalMap() map[string]any {
	categories := make(map[string]any, len(s.Categories))
	for name, c := range s.Categories {
		categories[name] = c.CanonicalMap()
	}
	functors := make(map[string]any, len(s.Functors))
	for name, f := range s.Functors {
		functors[name] = f.CanonicalMap()
	}
	transformations := make(map[string]any, len(s.Transformations))
	for name, t := range s.Transformations {
		transformations[name] = t.CanonicalMap()
	}
	adjunctions := make(map[string]any, len(s.Adjunctions))
	for name, a := range s.Adjunctions {
		adjunctions[name] = a.CanonicalMap()
	}
	return map[string]any{
		"categories":      categories,
		"functors":        functors,
		"transformations": transformations,
		"adjunctions":     adjunctions,
	}
}

// sortedKeys returns the map's keys in sorted order, for deterministic
// iteration wherever output order matters.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
