package cat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidatesInputs(t *testing.T) {
	ops := Ops{
		Identity: func(a Obj) any { return nil },
		Compose:  func(f, g Morphism) (any, error) { return nil, nil },
	}

	_, err := New("", ops)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")

	_, err = New("NoIdentity", Ops{Compose: ops.Compose})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Identity")

	_, err = New("NoCompose", Ops{Identity: ops.Identity})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Compose")
}

func TestComposeChainsArrows(t *testing.T) {
	c := chain("Chain")
	f := chainArrow(c, 0, 1)
	g := chainArrow(c, 1, 2)

	fg, err := c.Compose(f, g)
	require.NoError(t, err)
	assert.Equal(t, 0, fg.Dom())
	assert.Equal(t, 2, fg.Cod())
	assert.Equal(t, leq(0, 2), fg.Payload())
	assert.True(t, c.Owns(fg))
}

func TestComposeRejectsMismatchedEndpoints(t *testing.T) {
	// f: 0 -> 1 then g: 1 -> 2 composes; the flipped order must not.
	c := chain("Chain")
	f := chainArrow(c, 0, 1)
	g := chainArrow(c, 1, 2)

	_, err := c.Compose(g, f)
	require.Error(t, err)
	assert.True(t, IsCompositionMismatch(err))
	assert.False(t, IsNotComposable(err))
}

func TestComposeRejectsForeignMorphism(t *testing.T) {
	c := chain("Left")
	d := chain("Right")
	f := chainArrow(c, 0, 1)
	g := chainArrow(d, 1, 2)

	_, err := c.Compose(f, g)
	require.Error(t, err)
	assert.True(t, IsIncompatibleCategories(err))
}

func TestComposeRejectsZeroMorphism(t *testing.T) {
	c := chain("Chain")
	f := chainArrow(c, 0, 1)

	_, err := c.Compose(f, Morphism{})
	require.Error(t, err)
	assert.True(t, IsIncompatibleCategories(err))

	_, err = c.Compose(Morphism{}, f)
	require.Error(t, err)
	assert.True(t, IsIncompatibleCategories(err))
}

func TestComposeSurfacesDomainRejection(t *testing.T) {
	// A partial composition: the domain refuses payload sums over 10.
	c := MustNew("Capped", Ops{
		Identity: func(a Obj) any { return 0 },
		Compose: func(f, g Morphism) (any, error) {
			sum := f.Payload().(int) + g.Payload().(int)
			if sum > 10 {
				return nil, assert.AnError
			}
			return sum, nil
		},
	})

	small, err := c.Compose(arrow(c, 2), arrow(c, 3))
	require.NoError(t, err)
	assert.Equal(t, 5, small.Payload())

	_, err = c.Compose(arrow(c, 7), arrow(c, 8))
	require.Error(t, err)
	assert.True(t, IsCompositionMismatch(err))
}

func TestIdentityEndpoints(t *testing.T) {
	c := addMonoid("Add")
	id := c.Identity(dot)

	assert.Equal(t, dot, id.Dom())
	assert.Equal(t, dot, id.Cod())
	assert.Equal(t, 0, id.Payload())
	assert.True(t, c.Owns(id))
}

func TestIdentityCancelsInComposition(t *testing.T) {
	c := addMonoid("Add")
	f := arrow(c, 7)

	left, err := c.Compose(c.Identity(dot), f)
	require.NoError(t, err)
	right, err := c.Compose(f, c.Identity(dot))
	require.NoError(t, err)

	assert.True(t, c.MorEqual(left, f))
	assert.True(t, c.MorEqual(right, f))
}

func TestMorEqualDefaults(t *testing.T) {
	c := addMonoid("Add")
	d := addMonoid("Add")

	assert.True(t, c.MorEqual(arrow(c, 3), arrow(c, 3)))
	assert.False(t, c.MorEqual(arrow(c, 3), arrow(c, 4)))

	// Equality never crosses categories, even identically-built ones.
	assert.False(t, c.MorEqual(arrow(c, 3), arrow(d, 3)))
	assert.False(t, c.MorEqual(arrow(c, 3), Morphism{}))
}

func TestWithObjEqualOverride(t *testing.T) {
	// Objects equal mod 2; 1 -> 3 then 5 -> 7 becomes composable.
	c := MustNew("Mod2", Ops{
		Identity: func(a Obj) any { return "id" },
		Compose:  func(f, g Morphism) (any, error) { return "composite", nil },
	}, WithObjEqual(func(a, b Obj) bool {
		return a.(int)%2 == b.(int)%2
	}))

	f := c.NewMorphism(1, 3, "f")
	g := c.NewMorphism(5, 7, "g")

	fg, err := c.Compose(f, g)
	require.NoError(t, err)
	assert.Equal(t, 1, fg.Dom())
	assert.Equal(t, 7, fg.Cod())
}

func TestWithMorEqualOverride(t *testing.T) {
	// Payloads compared mod 10.
	c := MustNew("Mod10", Ops{
		Identity: func(a Obj) any { return 0 },
		Compose: func(f, g Morphism) (any, error) {
			return f.Payload().(int) + g.Payload().(int), nil
		},
	}, WithMorEqual(func(f, g Morphism) bool {
		return f.Payload().(int)%10 == g.Payload().(int)%10
	}))

	assert.True(t, c.MorEqual(arrow(c, 3), arrow(c, 13)))
	assert.False(t, c.MorEqual(arrow(c, 3), arrow(c, 4)))
}

func TestCategoryFingerprintIsStable(t *testing.T) {
	a := addMonoid("Add")
	b := addMonoid("Add")
	other := addMonoid("Mul")

	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "same skeleton, same fingerprint")
	assert.NotEqual(t, a.Fingerprint(), other.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64, "SHA-256 hex is 64 characters")
}

func TestCategoryFingerprintCoversCapabilitiesAndDigest(t *testing.T) {
	ops := Ops{
		Identity: func(a Obj) any { return 0 },
		Compose:  func(f, g Morphism) (any, error) { return 0, nil },
	}

	plain := MustNew("C", ops)
	capable := MustNew("C", ops, WithCapabilities(CapFiniteObjects, CapTerminal))
	digested := MustNew("C", ops, WithDigest("abc123"))

	assert.NotEqual(t, plain.Fingerprint(), capable.Fingerprint())
	assert.NotEqual(t, plain.Fingerprint(), digested.Fingerprint())
	assert.NotEqual(t, capable.Fingerprint(), digested.Fingerprint())
}

func TestCategoryAccessors(t *testing.T) {
	s := &fixedSampler{}
	c := MustNew("Acc", Ops{
		Identity: func(a Obj) any { return 0 },
		Compose:  func(f, g Morphism) (any, error) { return 0, nil },
	}, WithSampler(s), WithCapabilities(CapProducts))

	assert.Equal(t, "Acc", c.Name())
	assert.Same(t, Sampler(s), c.Sampler())
	assert.True(t, c.Capabilities().Has(CapProducts))
	assert.False(t, c.Capabilities().Has(CapTraced))
}

func TestZeroMorphismIsRecognizable(t *testing.T) {
	var m Morphism
	assert.True(t, m.IsZero())
	assert.Nil(t, m.Category())
	assert.Equal(t, "<zero morphism>", m.String())

	c := chain("Chain")
	assert.False(t, chainArrow(c, 0, 1).IsZero())
}
