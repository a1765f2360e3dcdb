package suite

import (
	"strings"
	"time"

	"github.com/roach88/qed/laws"
)

// Suite is a declarative verification suite.
type Suite struct {
	// Name uniquely identifies this suite.
	Name string `yaml:"name"`

	// Description explains what this suite verifies.
	Description string `yaml:"description"`

	// Specs lists paths to CUE presentation files to compile and build.
	// Paths are relative to the suite file location.
	Specs []string `yaml:"specs"`

	// Budget bounds every check in the suite. Omitted fields fall back to
	// the laws defaults.
	Budget *BudgetSpec `yaml:"budget,omitempty"`

	// Checks lists the law checks to run, in report order.
	Checks []Check `yaml:"checks"`
}

// BudgetSpec is the YAML form of a check budget.
type BudgetSpec struct {
	Samples int           `yaml:"samples,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// toBudget converts to a laws.Budget, filling defaults.
func (b *BudgetSpec) toBudget() laws.Budget {
	budget := laws.DefaultBudget()
	if b == nil {
		return budget
	}
	if b.Samples > 0 {
		budget.Samples = b.Samples
	}
	if b.Timeout > 0 {
		budget.Timeout = b.Timeout
	}
	return budget
}

// Check names one law and the structure(s) to check it against. Exactly
// one target field is set, matching the law:
//
//	category      -> category
//	functor       -> functor
//	naturality    -> transformation
//	interchange   -> transformations (four: the two vertical pairs)
//	adjunction    -> adjunction
//	monad         -> adjunction (the monad the adjunction induces)
//	comonad       -> adjunction (dual)
type Check struct {
	Law             string   `yaml:"law"`
	Category        string   `yaml:"category,omitempty"`
	Functor         string   `yaml:"functor,omitempty"`
	Transformation  string   `yaml:"transformation,omitempty"`
	Transformations []string `yaml:"transformations,omitempty"`
	Adjunction      string   `yaml:"adjunction,omitempty"`
}

// Target returns the referenced name(s) for display.
func (c Check) Target() string {
	switch {
	case c.Category != "":
		return c.Category
	case c.Functor != "":
		return c.Functor
	case c.Transformation != "":
		return c.Transformation
	case len(c.Transformations) > 0:
		return strings.Join(c.Transformations, ", ")
	default:
		return c.Adjunction
	}
}

// CheckReport pairs a check with its result.
type CheckReport struct {
	Law    string      `json:"law"`
	Target string      `json:"target"`
	Result laws.Result `json:"result"`
}

// Report is the outcome of one suite run. Checks appear in suite order.
type Report struct {
	Suite   string        `json:"suite"`
	Outcome laws.Outcome  `json:"outcome"`
	Checks  []CheckReport `json:"checks"`
}

// Passed reports whether every check passed.
func (r *Report) Passed() bool { return r.Outcome == laws.OutcomePassed }

// CanonicalMap renders the report as canonical-JSON-ready data for golden
// comparison and hashing.
func (r *Report) CanonicalMap() map[string]any {
	checks := make([]any, len(r.Checks))
	for i, c := range r.Checks {
		checks[i] = map[string]any{
			"law":    c.Law,
			"target": c.Target,
			"result": c.Result.CanonicalMap(),
		}
	}
	return map[string]any{
		"suite":   r.Suite,
		"outcome": string(r.Outcome),
		"checks":  checks,
	}
}

// aggregateOutcome settles the suite verdict: any failure fails the
// suite, otherwise any inconclusive check leaves it inconclusive.
func aggregateOutcome(checks []CheckReport) laws.Outcome {
	outcome := laws.OutcomePassed
	for _, c := range checks {
		switch c.Result.Outcome {
		case laws.OutcomeFailed:
			return laws.OutcomeFailed
		case laws.OutcomeInconclusive:
			outcome = laws.OutcomeInconclusive
		}
	}
	return outcome
}
