// Package laws verifies categorical laws by sampling.
//
// Construction in the cat package checks shape only; this package supplies
// the evidence. Each Check* function draws objects and morphisms from the
// relevant categories' samplers, evaluates the law on every drawn instance,
// and returns a Result whose outcome is one of three verdicts:
//
//   - passed: every sampled instance held. Exhaustive results cover the
//     whole space (the sampler ran out before the budget did); anything
//     else is sampled evidence, not a proof.
//   - failed: at least one counterexample, recorded as Violations with the
//     witnessing objects and morphisms rendered into the report.
//   - inconclusive: the budget or context expired, or there was nothing to
//     sample. Inconclusive is never promoted to passed.
//
// Violations are data, not errors. The Go error return of a check is
// reserved for machinery failures: a category with no sampler, a sampler
// that fails, or check arguments that do not even assemble. Structural
// defects inside the structure under test (an ill-fitting component hit
// mid-sweep, a composition the domain rejects) are what verification hunts,
// so they come back as violations too.
//
// Verified status lives outside the structures. Record results in a Ledger
// (or the durable store) and ask it; nothing in cat ever answers "is this
// adjunction verified".
package laws
