// Package cat provides the categorical core of qed: categories, functors,
// natural transformations, and adjunctions over opaque domain values.
//
// The package is the foundational layer. Every other package imports cat;
// cat imports nothing else in the module. Construction is explicit and
// value-oriented: categories are built with New and passed around as
// handles, there is no process-global registry of anything.
//
// Key design constraints:
//   - Composition is diagrammatic everywhere: Compose(f, g) is f-then-g,
//     ComposeFunctors(F, G) applies F first. Classical notation appears only
//     in rendered names (the composite of F then G prints as "G∘F").
//   - Construction checks shape, never laws. A Category with a broken
//     composition table and a Functor that fails to preserve composition
//     both construct fine; the laws package exists to catch them.
//   - Structural errors (StructuralError) are caller errors, reported
//     eagerly and never retried. Law violations are data, not errors.
//   - Values are immutable after construction. Morphism is a value type;
//     Category, Functor, Transformation, and Adjunction are shared handles
//     whose identity is pointer identity.
//   - Fingerprints use RFC 8785 canonical JSON and domain-separated
//     SHA-256, so identity is stable across processes and restarts.
//   - NO float types in anything canonical - use int64 for numbers.
//
// 2-cell notation used in rendered names: "β·α" for vertical composition,
// "β∗α" for horizontal composition, "(F α)" and "(α F)" for whiskering.
package cat
