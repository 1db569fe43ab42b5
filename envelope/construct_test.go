package envelope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paritytech/bcts-sub004/digest"
	"github.com/paritytech/bcts-sub004/envelope"
)

func TestNewLeafDeterministic(t *testing.T) {
	a, err := envelope.NewLeaf("hello")
	require.NoError(t, err)
	b, err := envelope.NewLeaf("hello")
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
	assert.True(t, a.IsLeaf())
}

func TestLeafValueRoundTrip(t *testing.T) {
	e, err := envelope.NewLeaf(42)
	require.NoError(t, err)

	var v int
	require.NoError(t, e.LeafValue(&v))
	assert.Equal(t, 42, v)
}

func TestLeafValueOnNonLeafFails(t *testing.T) {
	subject, err := envelope.NewLeaf("subject")
	require.NoError(t, err)
	node, err := subject.AddAssertion("note", "x")
	require.NoError(t, err)

	var v string
	assert.ErrorIs(t, node.LeafValue(&v), envelope.ErrNotLeaf)
}

func TestFromSubjectIdentityForEnvelopes(t *testing.T) {
	e, err := envelope.NewLeaf("x")
	require.NoError(t, err)
	got, err := envelope.FromSubject(e)
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestNewAssertionPredicateObject(t *testing.T) {
	a, err := envelope.NewAssertion("knows", "Alice")
	require.NoError(t, err)
	require.True(t, a.IsAssertion())

	pred, err := a.Predicate()
	require.NoError(t, err)
	var predVal string
	require.NoError(t, pred.LeafValue(&predVal))
	assert.Equal(t, "knows", predVal)

	obj, err := a.Object()
	require.NoError(t, err)
	var objVal string
	require.NoError(t, obj.LeafValue(&objVal))
	assert.Equal(t, "Alice", objVal)
}

func TestWrapUnwrapRoundTrip(t *testing.T) {
	inner, err := envelope.NewLeaf("payload")
	require.NoError(t, err)
	wrapped := inner.Wrap()
	assert.True(t, wrapped.IsWrapped())
	assert.False(t, wrapped.Equal(inner))

	out, err := wrapped.Unwrap()
	require.NoError(t, err)
	assert.True(t, out.Equal(inner))
}

func TestUnwrapNonWrappedFails(t *testing.T) {
	e, err := envelope.NewLeaf("x")
	require.NoError(t, err)
	_, err = e.Unwrap()
	assert.ErrorIs(t, err, envelope.ErrNotWrapped)
}

func TestKnownValueRoundTrip(t *testing.T) {
	kv := envelope.NewKnownValue(7)
	assert.True(t, kv.IsKnownValue())
	n, err := kv.KnownValue()
	require.NoError(t, err)
	assert.Equal(t, uint64(7), n)
}

func TestElidedPreservesDigest(t *testing.T) {
	original, err := envelope.NewLeaf("secret")
	require.NoError(t, err)
	elided := envelope.NewElided(original.Digest())
	assert.True(t, elided.Equal(original))
	assert.True(t, elided.IsElided())
	assert.True(t, elided.IsObscured())

	d, err := elided.ElidedDigest()
	require.NoError(t, err)
	assert.Equal(t, original.Digest(), d)
}

func TestNewEncryptedRejectsZeroAAD(t *testing.T) {
	_, err := envelope.NewEncrypted(envelope.EncryptedMessage{})
	assert.ErrorIs(t, err, envelope.ErrMissingDigest)
}

func TestNewCompressedRejectsZeroDigest(t *testing.T) {
	_, err := envelope.NewCompressed(envelope.CompressedMessage{})
	assert.ErrorIs(t, err, envelope.ErrMissingDigest)
}

func TestSubjectIsTotal(t *testing.T) {
	leaf, err := envelope.NewLeaf("x")
	require.NoError(t, err)
	assert.True(t, leaf.Subject().Equal(leaf))

	node, err := leaf.AddAssertion("note", "y")
	require.NoError(t, err)
	assert.True(t, node.Subject().Equal(leaf))
}

func TestNodeOrdersAssertionsByDigest(t *testing.T) {
	subject, err := envelope.NewLeaf("subject")
	require.NoError(t, err)

	a1, err := envelope.NewAssertion("a", 1)
	require.NoError(t, err)
	a2, err := envelope.NewAssertion("b", 2)
	require.NoError(t, err)
	a3, err := envelope.NewAssertion("c", 3)
	require.NoError(t, err)

	node, err := subject.AddAssertionEnvelope(a1)
	require.NoError(t, err)
	node, err = node.AddAssertionEnvelope(a2)
	require.NoError(t, err)
	node, err = node.AddAssertionEnvelope(a3)
	require.NoError(t, err)

	assertions := node.Assertions()
	require.Len(t, assertions, 3)
	for i := 1; i < len(assertions); i++ {
		assert.True(t, digest.Less(assertions[i-1].Digest(), assertions[i].Digest()))
	}
}

func TestAddAssertionDedupesByDigest(t *testing.T) {
	subject, err := envelope.NewLeaf("subject")
	require.NoError(t, err)
	node, err := subject.AddAssertion("note", "x")
	require.NoError(t, err)
	node2, err := node.AddAssertion("note", "x")
	require.NoError(t, err)
	assert.True(t, node.Equal(node2))
	assert.Len(t, node2.Assertions(), 1)
}

func TestAddAssertionRejectsInvalidAssertionEnvelope(t *testing.T) {
	subject, err := envelope.NewLeaf("subject")
	require.NoError(t, err)
	notAnAssertion, err := envelope.NewLeaf("oops")
	require.NoError(t, err)
	_, err = subject.AddAssertionEnvelope(notAnAssertion)
	assert.ErrorIs(t, err, envelope.ErrInvalidAssertion)
}
