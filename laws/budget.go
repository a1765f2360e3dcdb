package laws

import "time"

// DefaultSamples is the per-property instance budget used when callers do
// not say otherwise.
const DefaultSamples = 32

// Budget bounds a single law check.
//
// Samples caps how many law instances each property evaluates: objects for
// pointwise laws, composable pairs and triples for the composition laws.
// Timeout bounds wall time; zero means the context alone decides. A check
// that runs out of either finishes inconclusive, never silently passed.
type Budget struct {
	Samples int
	Timeout time.Duration
}

// DefaultBudget returns the standard budget: DefaultSamples instances, no
// timeout.
func DefaultBudget() Budget {
	return Budget{Samples: DefaultSamples}
}
