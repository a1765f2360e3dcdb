package cat

import (
	"errors"
	"fmt"
)

// StructuralError represents a shape mismatch detected while assembling
// categorical structures.
//
// Structural mismatches include:
//   - Composition mismatch: cod(f) and dom(g) disagree under the category's
//     object equality
//   - Functor mismatch: transformation or adjunction endpoints disagree on
//     the functors involved
//   - Incompatible categories: an operation mixes values from different
//     categories without a connecting functor
//   - Not composable: two transformations do not share the required boundary
//
// These are caller errors: raised eagerly at assembly time, never retried,
// and never recorded as law violations. When a law check trips over a
// structural defect inside the structure under test, the laws package
// converts it into a violation; the error type itself stays out of results.
type StructuralError struct {
	// Code identifies the mismatch category.
	Code StructuralErrorCode

	// Message is a human-readable description.
	Message string

	// Category names the category in whose context the mismatch occurred.
	Category string

	// Left and Right name the operands for binary operations.
	Left  string
	Right string

	// Details contains additional context.
	Details map[string]string
}

// StructuralErrorCode categorizes structural errors.
type StructuralErrorCode string

const (
	// ErrCodeCompositionMismatch indicates cod(f) != dom(g) under the
	// category's object equality, or a partial composition rejecting a pair.
	ErrCodeCompositionMismatch StructuralErrorCode = "COMPOSITION_MISMATCH"

	// ErrCodeFunctorMismatch indicates functor endpoints that do not line up
	// (transformation over mismatched functors, adjunction unit/counit over
	// the wrong composites).
	ErrCodeFunctorMismatch StructuralErrorCode = "FUNCTOR_MISMATCH"

	// ErrCodeIncompatibleCategories indicates an operation across two
	// categories without a connecting functor.
	ErrCodeIncompatibleCategories StructuralErrorCode = "INCOMPATIBLE_CATEGORIES"

	// ErrCodeNotComposable indicates transformations whose boundary functors
	// do not match for the requested composition.
	ErrCodeNotComposable StructuralErrorCode = "NOT_COMPOSABLE"
)

// Error implements the error interface.
func (e *StructuralError) Error() string {
	if e.Left != "" && e.Right != "" {
		return fmt.Sprintf("%s: %s (left=%s, right=%s)", e.Code, e.Message, e.Left, e.Right)
	}
	if e.Category != "" {
		return fmt.Sprintf("%s: %s (category=%s)", e.Code, e.Message, e.Category)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCompositionMismatch returns true if the error is a composition mismatch.
// Uses errors.As to handle wrapped errors.
func IsCompositionMismatch(err error) bool {
	return hasCode(err, ErrCodeCompositionMismatch)
}

// IsFunctorMismatch returns true if the error is a functor endpoint mismatch.
// Uses errors.As to handle wrapped errors.
func IsFunctorMismatch(err error) bool {
	return hasCode(err, ErrCodeFunctorMismatch)
}

// IsIncompatibleCategories returns true if the error is a cross-category
// operation error. Uses errors.As to handle wrapped errors.
func IsIncompatibleCategories(err error) bool {
	return hasCode(err, ErrCodeIncompatibleCategories)
}

// IsNotComposable returns true if the error is a transformation boundary
// mismatch. Uses errors.As to handle wrapped errors.
func IsNotComposable(err error) bool {
	return hasCode(err, ErrCodeNotComposable)
}

// IsStructural returns true if the error is any StructuralError.
func IsStructural(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}

func hasCode(err error, code StructuralErrorCode) bool {
	var se *StructuralError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// NewCompositionMismatchError creates a StructuralError for a pair of
// morphisms whose endpoints do not meet.
func NewCompositionMismatchError(c *Category, f, g Morphism) *StructuralError {
	return &StructuralError{
		Code:     ErrCodeCompositionMismatch,
		Message:  fmt.Sprintf("cod of left morphism %v does not equal dom of right morphism %v", f.cod, g.dom),
		Category: c.name,
		Left:     f.String(),
		Right:    g.String(),
	}
}

// NewCompositionRejectedError creates a StructuralError for a composition
// the owning category's domain logic refused.
func NewCompositionRejectedError(c *Category, f, g Morphism, cause error) *StructuralError {
	return &StructuralError{
		Code:     ErrCodeCompositionMismatch,
		Message:  fmt.Sprintf("composition rejected: %v", cause),
		Category: c.name,
		Left:     f.String(),
		Right:    g.String(),
	}
}

// NewForeignMorphismError creates a StructuralError for a morphism used
// outside its owning category.
func NewForeignMorphismError(c *Category, m Morphism) *StructuralError {
	owner := "none"
	if m.owner != nil {
		owner = m.owner.name
	}
	return &StructuralError{
		Code:     ErrCodeIncompatibleCategories,
		Message:  "morphism does not belong to this category",
		Category: c.name,
		Details:  map[string]string{"owner": owner, "morphism": m.String()},
	}
}

// NewFunctorMismatchError creates a StructuralError for functor endpoints
// that do not line up.
func NewFunctorMismatchError(message string, left, right *Functor) *StructuralError {
	e := &StructuralError{
		Code:    ErrCodeFunctorMismatch,
		Message: message,
	}
	if left != nil {
		e.Left = left.name
	}
	if right != nil {
		e.Right = right.name
	}
	return e
}

// NewIncompatibleCategoriesError creates a StructuralError for an operation
// spanning two categories.
func NewIncompatibleCategoriesError(message string, left, right *Category) *StructuralError {
	e := &StructuralError{
		Code:    ErrCodeIncompatibleCategories,
		Message: message,
	}
	if left != nil {
		e.Left = left.name
	}
	if right != nil {
		e.Right = right.name
	}
	return e
}

// NewNotComposableError creates a StructuralError for transformations whose
// boundary functors do not match.
func NewNotComposableError(message, left, right string) *StructuralError {
	return &StructuralError{
		Code:    ErrCodeNotComposable,
		Message: message,
		Left:    left,
		Right:   right,
	}
}
