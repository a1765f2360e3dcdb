package cat

import "fmt"

// Obj is an object of some category. Objects are opaque domain values; the
// algebra never inspects them beyond the owning category's object equality.
type Obj any

// Morphism is an arrow of a category: a domain object, a codomain object,
// and an opaque payload carrying the domain's data for the arrow.
//
// Morphisms are immutable values minted only by their owning category
// (NewMorphism, Identity, Compose) or by functor application. The zero
// Morphism belongs to no category and is rejected by every operation.
type Morphism struct {
	dom     Obj
	cod     Obj
	payload any
	owner   *Category
}

// Dom returns the domain object.
func (m Morphism) Dom() Obj { return m.dom }

// Cod returns the codomain object.
func (m Morphism) Cod() Obj { return m.cod }

// Payload returns the domain's opaque data for the arrow.
func (m Morphism) Payload() any { return m.payload }

// Category returns the owning category, nil for the zero Morphism.
func (m Morphism) Category() *Category { return m.owner }

// IsZero reports whether m is the zero Morphism.
func (m Morphism) IsZero() bool { return m.owner == nil }

// String renders the morphism for diagnostics and witnesses.
func (m Morphism) String() string {
	if m.owner == nil {
		return "<zero morphism>"
	}
	return fmt.Sprintf("%v: %v -> %v", m.payload, m.dom, m.cod)
}
