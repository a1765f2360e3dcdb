package store

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// validIdentifier matches valid SQL identifiers, including the table
// qualifier. Identifiers cannot be parameterized, so this whitelist is the
// injection barrier; values always go through ? placeholders.
var validIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*$`)

// Filter narrows History queries. Empty fields match everything.
type Filter struct {
	Law         string
	Outcome     string
	Structure   string
	Fingerprint string
	Suite       string
	RunID       string
}

// columns maps filter fields to the qualified columns they constrain.
func (f Filter) columns() map[string]string {
	return map[string]string{
		"v.law":         f.Law,
		"v.outcome":     f.Outcome,
		"v.structure":   f.Structure,
		"v.fingerprint": f.Fingerprint,
		"r.suite":       f.Suite,
		"v.run_id":      f.RunID,
	}
}

// whereClause builds a parameterized conjunction over the set fields.
// Columns are sorted for deterministic SQL; values are never interpolated.
func (f Filter) whereClause() (string, []any, error) {
	cols := f.columns()

	keys := make([]string, 0, len(cols))
	for col, val := range cols {
		if val == "" {
			continue
		}
		keys = append(keys, col)
	}
	if len(keys) == 0 {
		return "", nil, nil
	}
	sort.Strings(keys)

	clauses := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, col := range keys {
		if !validIdentifier.MatchString(col) {
			return "", nil, fmt.Errorf("invalid column name %q", col)
		}
		clauses = append(clauses, col+" = ?")
		args = append(args, cols[col])
	}

	return strings.Join(clauses, " AND "), args, nil
}
