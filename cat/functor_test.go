package cat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gap returns the functor from the chain into the add monoid sending every
// object to the dot and the arrow a <= b to the payload b-a. It preserves
// identities and composition.
func gap(source, target *Category) *Functor {
	return MustNewFunctor("Gap", source, target,
		func(a Obj) Obj { return dot },
		func(m Morphism) any { return m.Cod().(int) - m.Dom().(int) })
}

func TestNewFunctorValidatesInputs(t *testing.T) {
	c := addMonoid("Add")
	objs := func(a Obj) Obj { return a }
	mors := func(m Morphism) any { return m.Payload() }

	_, err := NewFunctor("", c, c, objs, mors)
	require.Error(t, err)

	_, err = NewFunctor("F", nil, c, objs, mors)
	require.Error(t, err)

	_, err = NewFunctor("F", c, nil, objs, mors)
	require.Error(t, err)

	_, err = NewFunctor("F", c, c, nil, mors)
	require.Error(t, err)

	_, err = NewFunctor("F", c, c, objs, nil)
	require.Error(t, err)
}

func TestIdentityFunctorIsTransparent(t *testing.T) {
	c := chain("Chain")
	id := IdentityFunctor(c)

	assert.Equal(t, "Id(Chain)", id.Name())
	assert.Same(t, c, id.Source())
	assert.Same(t, c, id.Target())
	assert.Equal(t, 3, id.ApplyObj(3))

	f := chainArrow(c, 1, 2)
	img, err := id.ApplyMor(f)
	require.NoError(t, err)
	assert.True(t, c.MorEqual(f, img))
}

func TestApplyMorDerivesEndpoints(t *testing.T) {
	c := chain("Chain")
	d := addMonoid("Add")
	g := gap(c, d)

	img, err := g.ApplyMor(chainArrow(c, 1, 4))
	require.NoError(t, err)

	assert.Equal(t, dot, img.Dom())
	assert.Equal(t, dot, img.Cod())
	assert.Equal(t, 3, img.Payload())
	assert.True(t, d.Owns(img), "image must live in the target category")
}

func TestApplyMorRejectsForeignMorphism(t *testing.T) {
	c := chain("Chain")
	d := addMonoid("Add")
	g := gap(c, d)

	_, err := g.ApplyMor(arrow(d, 1))
	require.Error(t, err)
	assert.True(t, IsIncompatibleCategories(err))
}

func TestApplyDispatchesOnKind(t *testing.T) {
	c := chain("Chain")
	d := addMonoid("Add")
	g := gap(c, d)

	obj, err := g.Apply(5)
	require.NoError(t, err)
	assert.Equal(t, dot, obj)

	mor, err := g.Apply(chainArrow(c, 0, 2))
	require.NoError(t, err)
	img, ok := mor.(Morphism)
	require.True(t, ok)
	assert.Equal(t, 2, img.Payload())
}

func TestComposeFunctorsAppliesLeftFirst(t *testing.T) {
	c := chain("Chain")
	d := addMonoid("Add")
	g := gap(c, d)
	double := doubling(d)

	composite, err := ComposeFunctors(g, double)
	require.NoError(t, err)

	assert.Equal(t, "Double∘Gap", composite.Name())
	assert.Same(t, c, composite.Source())
	assert.Same(t, d, composite.Target())

	img, err := composite.ApplyMor(chainArrow(c, 1, 4))
	require.NoError(t, err)
	assert.Equal(t, 6, img.Payload(), "Gap then Double: (4-1)*2")
}

func TestComposeFunctorsRejectsMismatchedBoundary(t *testing.T) {
	c := chain("Chain")
	d := addMonoid("Add")
	g := gap(c, d)

	_, err := ComposeFunctors(doubling(d), g)
	require.Error(t, err)
	assert.True(t, IsIncompatibleCategories(err))
}

func TestSameFunctorOnLeaves(t *testing.T) {
	c := addMonoid("Add")
	f := doubling(c)
	g := doubling(c)

	assert.True(t, SameFunctor(f, f))
	assert.False(t, SameFunctor(f, g), "structurally equal leaves are still distinct functors")
	assert.False(t, SameFunctor(f, nil))
	assert.False(t, SameFunctor(nil, nil))
}

func TestSameFunctorIgnoresAssociation(t *testing.T) {
	c := addMonoid("Add")
	f := doubling(c)
	g := shiftBy(c, 1)
	h := shiftBy(c, 2)

	fg, err := ComposeFunctors(f, g)
	require.NoError(t, err)
	left, err := ComposeFunctors(fg, h)
	require.NoError(t, err)

	gh, err := ComposeFunctors(g, h)
	require.NoError(t, err)
	right, err := ComposeFunctors(f, gh)
	require.NoError(t, err)

	assert.True(t, SameFunctor(left, right), "(f;g);h must equal f;(g;h)")
	assert.Equal(t, left.Fingerprint(), right.Fingerprint())
}

func TestSameFunctorErasesIdentities(t *testing.T) {
	c := addMonoid("Add")
	f := doubling(c)

	padded, err := ComposeFunctors(f, IdentityFunctor(c))
	require.NoError(t, err)
	assert.True(t, SameFunctor(f, padded))

	padded, err = ComposeFunctors(IdentityFunctor(c), f)
	require.NoError(t, err)
	assert.True(t, SameFunctor(f, padded))
}

func TestSameFunctorOnIdentities(t *testing.T) {
	c := addMonoid("Add")
	d := addMonoid("Add")

	assert.True(t, SameFunctor(IdentityFunctor(c), IdentityFunctor(c)))
	assert.False(t, SameFunctor(IdentityFunctor(c), IdentityFunctor(d)),
		"identity functors on different categories differ even when the categories look alike")
}

func TestFunctorFingerprintTracksStructure(t *testing.T) {
	c := addMonoid("Add")
	f := doubling(c)
	g := shiftBy(c, 1)

	assert.NotEqual(t, f.Fingerprint(), g.Fingerprint())

	fg, err := ComposeFunctors(f, g)
	require.NoError(t, err)
	gf, err := ComposeFunctors(g, f)
	require.NoError(t, err)
	assert.NotEqual(t, fg.Fingerprint(), gf.Fingerprint(), "composition order matters")

	id1 := IdentityFunctor(c)
	id2 := IdentityFunctor(c)
	assert.Equal(t, id1.Fingerprint(), id2.Fingerprint())
}
