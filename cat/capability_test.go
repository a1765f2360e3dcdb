package cat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapabilitySetMembership(t *testing.T) {
	s := NewCapabilitySet(CapProducts, CapTerminal)

	assert.True(t, s.Has(CapProducts))
	assert.True(t, s.Has(CapTerminal))
	assert.False(t, s.Has(CapExponentials))
	assert.False(t, s.Has(CapFiniteObjects))
}

func TestCapabilitySetListIsSorted(t *testing.T) {
	s := NewCapabilitySet(CapTraced, CapFiniteObjects, CapProducts)

	assert.Equal(t, []Capability{CapFiniteObjects, CapProducts, CapTraced}, s.List())
	assert.Equal(t, []string{"finite-objects", "products", "traced"}, s.Strings())
}

func TestCapabilitySetString(t *testing.T) {
	assert.Equal(t, "{}", NewCapabilitySet().String())
	assert.Equal(t, "{products, terminal}", NewCapabilitySet(CapTerminal, CapProducts).String())
}

func TestParseCapability(t *testing.T) {
	for _, c := range []Capability{
		CapFiniteObjects, CapProducts, CapExponentials,
		CapTerminal, CapInitial, CapTraced,
	} {
		parsed, err := ParseCapability(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

func TestParseCapabilityRejectsUnknownNames(t *testing.T) {
	// The capability set is closed: unknown names are errors, not new tags.
	_, err := ParseCapability("monoidal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "monoidal")
}
