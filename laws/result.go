package laws

import "fmt"

// Law identifies which family of laws a check covered.
type Law string

const (
	LawCategory    Law = "category"
	LawFunctor     Law = "functor"
	LawNaturality  Law = "naturality"
	LawInterchange Law = "interchange"
	LawAdjunction  Law = "adjunction"
	LawMonad       Law = "monad"
	LawComonad     Law = "comonad"
)

// Outcome is a three-valued verdict.
type Outcome string

const (
	OutcomePassed       Outcome = "passed"
	OutcomeFailed       Outcome = "failed"
	OutcomeInconclusive Outcome = "inconclusive"
)

// Violation is one counterexample: the property that broke, the witnessing
// data, and both sides of the failed comparison rendered for humans.
type Violation struct {
	Property string `json:"property"`
	Witness  string `json:"witness"`
	Expected string `json:"expected,omitempty"`
	Actual   string `json:"actual,omitempty"`
}

// String renders the violation on one line.
func (v Violation) String() string {
	s := fmt.Sprintf("%s violated at %s", v.Property, v.Witness)
	if v.Expected != "" || v.Actual != "" {
		s += fmt.Sprintf(": expected %s, got %s", v.Expected, v.Actual)
	}
	return s
}

// Result is the outcome of one law check over one structure.
type Result struct {
	Law         Law         `json:"law"`
	Structure   string      `json:"structure"`
	Fingerprint string      `json:"fingerprint"`
	Outcome     Outcome     `json:"outcome"`
	Samples     int         `json:"samples"`
	Exhaustive  bool        `json:"exhaustive"`
	Violations  []Violation `json:"violations,omitempty"`
	Notes       []string    `json:"notes,omitempty"`
}

// Passed reports a passed outcome.
func (r Result) Passed() bool { return r.Outcome == OutcomePassed }

// Failed reports a failed outcome.
func (r Result) Failed() bool { return r.Outcome == OutcomeFailed }

// Inconclusive reports an inconclusive outcome.
func (r Result) Inconclusive() bool { return r.Outcome == OutcomeInconclusive }

// CanonicalMap renders the result as canonical-JSON-ready data: strings,
// ints, and bools only, suitable for hashing and golden comparison.
func (r Result) CanonicalMap() map[string]any {
	violations := make([]any, len(r.Violations))
	for i, v := range r.Violations {
		violations[i] = map[string]any{
			"property": v.Property,
			"witness":  v.Witness,
			"expected": v.Expected,
			"actual":   v.Actual,
		}
	}
	notes := make([]any, len(r.Notes))
	for i, n := range r.Notes {
		notes[i] = n
	}
	return map[string]any{
		"law":         string(r.Law),
		"structure":   r.Structure,
		"fingerprint": r.Fingerprint,
		"outcome":     string(r.Outcome),
		"samples":     r.Samples,
		"exhaustive":  r.Exhaustive,
		"violations":  violations,
		"notes":       notes,
	}
}
