package elide_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paritytech/bcts-sub004/digest"
	"github.com/paritytech/bcts-sub004/envelope"
	"github.com/paritytech/bcts-sub004/envelope/elide"
)

func buildTree(t *testing.T) (envelope.Envelope, envelope.Envelope, envelope.Envelope) {
	t.Helper()
	subject, err := envelope.NewLeaf("subject")
	require.NoError(t, err)
	a1, err := envelope.NewAssertion("a", 1)
	require.NoError(t, err)
	a2, err := envelope.NewAssertion("b", 2)
	require.NoError(t, err)
	node, err := subject.AddAssertionEnvelope(a1)
	require.NoError(t, err)
	node, err = node.AddAssertionEnvelope(a2)
	require.NoError(t, err)
	return node, a1, a2
}

func TestElideRemovingObscuresTargetOnly(t *testing.T) {
	node, a1, a2 := buildTree(t)
	out, err := elide.ElideRemoving(node, digest.NewSet(a1.Digest()), elide.Elide())
	require.NoError(t, err)
	assert.True(t, out.Equal(node))

	assertions := out.Assertions()
	var sawElided, sawPlain bool
	for _, a := range assertions {
		if a.Digest().Equal(a1.Digest()) && a.IsElided() {
			sawElided = true
		}
		if a.Digest().Equal(a2.Digest()) && a.Equal(a2) && !a.IsElided() {
			sawPlain = true
		}
	}
	assert.True(t, sawElided)
	assert.True(t, sawPlain)
}

func TestElideRevealingKeepsOnlyTargetsAndAncestors(t *testing.T) {
	node, a1, _ := buildTree(t)
	out, err := elide.ElideRevealing(node, digest.NewSet(a1.Digest()), elide.Elide())
	require.NoError(t, err)
	assert.True(t, out.Equal(node))

	assertions := out.Assertions()
	require.Len(t, assertions, 2)
	for _, a := range assertions {
		if a.Digest().Equal(a1.Digest()) {
			assert.False(t, a.IsElided())
		} else {
			assert.True(t, a.IsElided())
		}
	}
}

func TestElideRemovingWithEncryptAction(t *testing.T) {
	node, a1, _ := buildTree(t)
	var key [32]byte
	for i := range key {
		key[i] = byte(i)
	}
	out, err := elide.ElideRemoving(node, digest.NewSet(a1.Digest()), elide.EncryptWith(key))
	require.NoError(t, err)

	assertions := out.Assertions()
	found := false
	for _, a := range assertions {
		if a.Digest().Equal(a1.Digest()) {
			assert.True(t, a.IsEncrypted())
			found = true
		}
	}
	assert.True(t, found)
}

func TestUnelideRestoresOriginal(t *testing.T) {
	original, err := envelope.NewLeaf("secret")
	require.NoError(t, err)
	elided := envelope.NewElided(original.Digest())

	restored, err := elide.Unelide(elided, original)
	require.NoError(t, err)
	assert.True(t, restored.Equal(original))
	assert.False(t, restored.IsElided())
}

func TestUnelideRejectsMismatchedDigest(t *testing.T) {
	original, err := envelope.NewLeaf("secret")
	require.NoError(t, err)
	other, err := envelope.NewLeaf("different")
	require.NoError(t, err)
	elided := envelope.NewElided(original.Digest())

	_, err = elide.Unelide(elided, other)
	assert.ErrorIs(t, err, elide.ErrDigestMismatch)
}

func TestUnelideRejectsNonElided(t *testing.T) {
	e, err := envelope.NewLeaf("x")
	require.NoError(t, err)
	_, err = elide.Unelide(e, e)
	assert.ErrorIs(t, err, elide.ErrNotElided)
}

func TestRevealRoundTrip(t *testing.T) {
	node, a1, _ := buildTree(t)
	elided, err := elide.ElideRemoving(node, digest.NewSet(a1.Digest()), elide.Elide())
	require.NoError(t, err)

	revealed, err := elide.Reveal(elided, map[digest.Digest]envelope.Envelope{a1.Digest(): a1})
	require.NoError(t, err)
	assert.True(t, revealed.Equal(node))

	assertions := revealed.Assertions()
	found := false
	for _, a := range assertions {
		if a.Digest().Equal(a1.Digest()) {
			assert.False(t, a.IsElided())
			found = true
		}
	}
	assert.True(t, found)
}

func TestRevealLeavesUnmatchedElisionsAlone(t *testing.T) {
	node, a1, a2 := buildTree(t)
	elided, err := elide.ElideRemoving(node, digest.NewSet(a1.Digest(), a2.Digest()), elide.Elide())
	require.NoError(t, err)

	revealed, err := elide.Reveal(elided, map[digest.Digest]envelope.Envelope{a1.Digest(): a1})
	require.NoError(t, err)

	for _, a := range revealed.Assertions() {
		if a.Digest().Equal(a2.Digest()) {
			assert.True(t, a.IsElided())
		}
	}
}
