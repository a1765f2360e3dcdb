// Package suite runs declarative law suites: YAML files that name CUE
// presentations and the law checks to run against the structures they
// build.
//
// A suite compiles its presentations into a compiler.Library, resolves
// each check against it, and runs the checks through the laws package in
// parallel with bounded concurrency. Results land in an index-addressed
// slice, so report order is input order regardless of scheduling. Law
// violations are data in the report; anything that prevents a check from
// running at all (unknown names, missing samplers) is a Go error.
//
// Reports render to canonical JSON for golden comparison and can be
// persisted into the store as a run of verdicts.
package suite
