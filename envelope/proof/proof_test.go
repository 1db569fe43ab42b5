package proof_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paritytech/bcts-sub004/digest"
	"github.com/paritytech/bcts-sub004/envelope"
	"github.com/paritytech/bcts-sub004/envelope/proof"
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

func TestProveAndConfirmContainsTarget(t *testing.T) {
	node, a1, _ := buildTree(t)
	p, err := proof.ProveContainsTarget(node, a1.Digest())
	require.NoError(t, err)
	assert.Equal(t, node.Digest(), p.Root)

	ok, err := proof.ConfirmContainsTarget(node.Digest(), p, a1.Digest())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProveAndConfirmContainsSet(t *testing.T) {
	node, a1, a2 := buildTree(t)
	set := digest.NewSet(a1.Digest(), a2.Digest())
	p, err := proof.ProveContainsSet(node, set)
	require.NoError(t, err)

	ok, err := proof.ConfirmContainsSet(node.Digest(), p, set)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConfirmRejectsWrongRoot(t *testing.T) {
	node, a1, _ := buildTree(t)
	p, err := proof.ProveContainsTarget(node, a1.Digest())
	require.NoError(t, err)

	wrongRoot, err := envelope.NewLeaf("not the root")
	require.NoError(t, err)

	_, err = proof.ConfirmContainsTarget(wrongRoot.Digest(), p, a1.Digest())
	assert.ErrorIs(t, err, proof.ErrRootMismatch)
}

func TestConfirmRejectsMissingTarget(t *testing.T) {
	node, a1, _ := buildTree(t)
	p, err := proof.ProveContainsTarget(node, a1.Digest())
	require.NoError(t, err)

	absent, err := envelope.NewLeaf("never present")
	require.NoError(t, err)

	_, err = proof.ConfirmContainsTarget(node.Digest(), p, absent.Digest())
	assert.ErrorIs(t, err, proof.ErrTargetNotFound)
}

func TestProofEnvelopeObscuresNonTargets(t *testing.T) {
	node, a1, a2 := buildTree(t)
	p, err := proof.ProveContainsTarget(node, a1.Digest())
	require.NoError(t, err)

	var sawA2Elided bool
	for _, a := range p.Envelope.Assertions() {
		if a.Digest().Equal(a2.Digest()) {
			sawA2Elided = a.IsElided()
		}
	}
	assert.True(t, sawA2Elided)
}

func TestProofEnvelopeObscuresTargetItself(t *testing.T) {
	node, a1, _ := buildTree(t)
	p, err := proof.ProveContainsTarget(node, a1.Digest())
	require.NoError(t, err)

	var sawA1, a1Elided bool
	for _, a := range p.Envelope.Assertions() {
		if a.Digest().Equal(a1.Digest()) {
			sawA1 = true
			a1Elided = a.IsElided()
		}
	}
	require.True(t, sawA1, "proof envelope must still carry the target's digest")
	assert.True(t, a1Elided, "the target's content must be hidden, not just its neighbours'")

	ok, err := proof.ConfirmContainsTarget(node.Digest(), p, a1.Digest())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestProveContainsSetRejectsAbsentTarget(t *testing.T) {
	node, _, _ := buildTree(t)
	absent, err := envelope.NewLeaf("never present")
	require.NoError(t, err)

	_, err = proof.ProveContainsTarget(node, absent.Digest())
	assert.ErrorIs(t, err, proof.ErrNoProof)

	a1, err := envelope.NewAssertion("a", 1)
	require.NoError(t, err)
	_, err = proof.ProveContainsSet(node, digest.NewSet(a1.Digest(), absent.Digest()))
	assert.ErrorIs(t, err, proof.ErrNoProof)
}
