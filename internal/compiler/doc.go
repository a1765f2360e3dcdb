// Package compiler turns declarative CUE presentations into cat values.
//
// A presentation describes finite structures by name: a category lists its
// objects, arrows, and composition table; a functor maps names to names; a
// transformation assigns an arrow to each object. The compiler runs in
// three stages, each with its own error type:
//
//	CompileCategory etc.  CUE value -> spec       (CompileError, CUE positions)
//	Validate              spec cross-checks       (ValidationError, aggregated)
//	Build                 specs -> cat values     (Library)
//
// Validation is structural only: references resolve, maps are total,
// endpoints line up. Whether the presented composition table is associative
// or a presented functor preserves it stays with the laws package; compiled
// categories carry exhaustive samplers exactly so those checks can reach
// every case.
//
// The output Library is an explicit value. There is no registry of
// presentations anywhere; callers hold the Library they compiled.
package compiler
