package laws

import (
	"testing"

	"github.com/roach88/qed/cat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViolationStringNamesWitness(t *testing.T) {
	v := Violation{
		Property: "left identity",
		Witness:  "3: • -> •",
		Expected: "3: • -> •",
		Actual:   "-3: • -> •",
	}
	s := v.String()
	assert.Contains(t, s, "left identity violated at 3: • -> •")
	assert.Contains(t, s, "expected 3: • -> •")

	bare := Violation{Property: "associativity", Witness: "(f, g, h)"}
	assert.Equal(t, "associativity violated at (f, g, h)", bare.String())
}

func TestResultCanonicalMapMarshals(t *testing.T) {
	r := Result{
		Law:         LawCategory,
		Structure:   "Add",
		Fingerprint: "abc123",
		Outcome:     OutcomeFailed,
		Samples:     7,
		Exhaustive:  true,
		Violations:  []Violation{{Property: "associativity", Witness: "(f, g, h)"}},
		Notes:       []string{"note"},
	}

	b, err := cat.MarshalCanonical(r.CanonicalMap())
	require.NoError(t, err)
	assert.Contains(t, string(b), `"outcome":"failed"`)
	assert.Contains(t, string(b), `"samples":7`)
}
