package envelope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paritytech/bcts-sub004/envelope"
)

func TestWalkVisitsSelfSubjectAndAssertions(t *testing.T) {
	subject, err := envelope.NewLeaf("subject")
	require.NoError(t, err)
	node, err := subject.AddAssertion("note", "x")
	require.NoError(t, err)

	var visited []string
	_, _, err = node.Walk(nil, func(env envelope.Envelope, depth, childIndex int, state any) (envelope.Envelope, any, error) {
		visited = append(visited, env.Digest().Hex())
		return env, state, nil
	})
	require.NoError(t, err)

	all := node.CollectDigests()
	assert.Len(t, visited, len(all))
	assert.Contains(t, visited, node.Digest().Hex())
	assert.Contains(t, visited, subject.Digest().Hex())
}

func TestWalkLeavesOnlySkipsNodes(t *testing.T) {
	subject, err := envelope.NewLeaf("subject")
	require.NoError(t, err)
	node, err := subject.AddAssertion("note", "x")
	require.NoError(t, err)

	var sawNode bool
	_, _, err = node.Walk(nil, func(env envelope.Envelope, depth, childIndex int, state any) (envelope.Envelope, any, error) {
		if env.IsNode() {
			sawNode = true
		}
		return env, state, nil
	}, envelope.LeavesOnly())
	require.NoError(t, err)
	assert.False(t, sawNode)
}

func TestWalkSubstitutionStopsDescent(t *testing.T) {
	subject, err := envelope.NewLeaf("subject")
	require.NoError(t, err)
	a, err := envelope.NewAssertion("note", "secret")
	require.NoError(t, err)
	node, err := subject.AddAssertionEnvelope(a)
	require.NoError(t, err)

	pred, err := a.Predicate()
	require.NoError(t, err)
	obj, err := a.Object()
	require.NoError(t, err)

	var visited []string
	out, _, err := node.Walk(nil, func(env envelope.Envelope, depth, childIndex int, state any) (envelope.Envelope, any, error) {
		visited = append(visited, env.Digest().Hex())
		if env.Digest().Equal(a.Digest()) {
			return envelope.NewElided(env.Digest()), state, nil
		}
		return env, state, nil
	})
	require.NoError(t, err)
	assert.NotContains(t, visited, pred.Digest().Hex())
	assert.NotContains(t, visited, obj.Digest().Hex())

	got := out.Assertions()
	require.Len(t, got, 1)
	assert.True(t, got[0].IsElided())
	assert.True(t, got[0].Equal(a))
}

func TestWalkPropagatesVisitError(t *testing.T) {
	e, err := envelope.NewLeaf("x")
	require.NoError(t, err)
	boom := assert.AnError
	_, _, err = e.Walk(nil, func(env envelope.Envelope, depth, childIndex int, state any) (envelope.Envelope, any, error) {
		return envelope.Envelope{}, state, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestWalkThreadsState(t *testing.T) {
	subject, err := envelope.NewLeaf("subject")
	require.NoError(t, err)
	node, err := subject.AddAssertion("note", "x")
	require.NoError(t, err)
	node, err = node.AddAssertion("note2", "y")
	require.NoError(t, err)

	_, final, err := node.Walk(0, func(env envelope.Envelope, depth, childIndex int, state any) (envelope.Envelope, any, error) {
		return env, state.(int) + 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, node.ElementsCount(), final.(int))
}

func TestCollectDigestsIncludesEveryNode(t *testing.T) {
	subject, err := envelope.NewLeaf("subject")
	require.NoError(t, err)
	a, err := envelope.NewAssertion("note", "x")
	require.NoError(t, err)
	node, err := subject.AddAssertionEnvelope(a)
	require.NoError(t, err)

	digests := node.CollectDigests()
	assert.Contains(t, digests, node.Digest())
	assert.Contains(t, digests, subject.Digest())
	assert.Contains(t, digests, a.Digest())
}
