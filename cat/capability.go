package cat

import (
	"fmt"
	"sort"
)

// Capability marks optional structure a category carries. Operations that
// need extra structure dispatch on capability presence, never on the name
// of the category.
type Capability int

const (
	// CapFiniteObjects marks a category whose object space is finite and
	// fully enumerable by its sampler.
	CapFiniteObjects Capability = iota + 1

	// CapProducts marks a category with all binary products.
	CapProducts

	// CapExponentials marks a cartesian closed category.
	CapExponentials

	// CapTerminal marks a category with a terminal object.
	CapTerminal

	// CapInitial marks a category with an initial object.
	CapInitial

	// CapTraced marks a traced monoidal structure.
	CapTraced
)

var capabilityNames = map[Capability]string{
	CapFiniteObjects: "finite-objects",
	CapProducts:      "products",
	CapExponentials:  "exponentials",
	CapTerminal:      "terminal",
	CapInitial:       "initial",
	CapTraced:        "traced",
}

// String returns the stable name of the capability.
func (c Capability) String() string {
	if name, ok := capabilityNames[c]; ok {
		return name
	}
	return fmt.Sprintf("capability(%d)", int(c))
}

// ParseCapability resolves a stable capability name. Unknown names are an
// error, not a new capability: the set is closed.
func ParseCapability(name string) (Capability, error) {
	for c, n := range capabilityNames {
		if n == name {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown capability %q", name)
}

// CapabilitySet is an immutable set of capabilities.
type CapabilitySet uint32

// NewCapabilitySet builds a set from individual capabilities.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	var s CapabilitySet
	for _, c := range caps {
		s |= 1 << uint(c)
	}
	return s
}

// Has reports whether the set contains c.
func (s CapabilitySet) Has(c Capability) bool {
	return s&(1<<uint(c)) != 0
}

// List returns the contained capabilities in declaration order.
func (s CapabilitySet) List() []Capability {
	var caps []Capability
	for c := range capabilityNames {
		if s.Has(c) {
			caps = append(caps, c)
		}
	}
	sort.Slice(caps, func(i, j int) bool { return caps[i] < caps[j] })
	return caps
}

// Strings returns the stable names of the contained capabilities, sorted.
// Used for canonical fingerprint skeletons.
func (s CapabilitySet) Strings() []string {
	caps := s.List()
	names := make([]string, len(caps))
	for i, c := range caps {
		names[i] = c.String()
	}
	return names
}

// String renders the set for diagnostics.
func (s CapabilitySet) String() string {
	names := s.Strings()
	if len(names) == 0 {
		return "{}"
	}
	out := "{"
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out + "}"
}
