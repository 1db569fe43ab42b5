package compress_test

import (
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paritytech/bcts-sub004/envelope"
	"github.com/paritytech/bcts-sub004/envelope/compress"
)

func TestCompressDecompressEnvelopeRoundTrip(t *testing.T) {
	e, err := envelope.NewLeaf("a fairly repetitive fairly repetitive fairly repetitive string")
	require.NoError(t, err)

	compressed, err := compress.CompressEnvelope(e, flate.DefaultCompression)
	require.NoError(t, err)
	assert.True(t, compressed.IsCompressed())
	assert.True(t, compressed.Equal(e))

	out, err := compress.DecompressEnvelope(compressed)
	require.NoError(t, err)
	assert.True(t, out.Equal(e))
}

func TestCompressEnvelopeAlreadyCompressedIsUnchanged(t *testing.T) {
	e, err := envelope.NewLeaf("x")
	require.NoError(t, err)
	compressed, err := compress.CompressEnvelope(e, flate.DefaultCompression)
	require.NoError(t, err)

	again, err := compress.CompressEnvelope(compressed, flate.DefaultCompression)
	require.NoError(t, err)
	assert.True(t, again.Equal(compressed))
	assert.True(t, again.IsCompressed())
}

func TestCompressEnvelopeRejectsElided(t *testing.T) {
	e, err := envelope.NewLeaf("x")
	require.NoError(t, err)
	elided := envelope.NewElided(e.Digest())

	_, err = compress.CompressEnvelope(elided, flate.DefaultCompression)
	assert.ErrorIs(t, err, compress.ErrCannotCompressElided)
}

func TestDecompressEnvelopeRejectsNonCompressed(t *testing.T) {
	e, err := envelope.NewLeaf("x")
	require.NoError(t, err)
	_, err = compress.DecompressEnvelope(e)
	assert.ErrorIs(t, err, compress.ErrNotCompressed)
}

func TestCompressSubjectRoundTrip(t *testing.T) {
	subject, err := envelope.NewLeaf("subject payload subject payload subject payload")
	require.NoError(t, err)
	node, err := subject.AddAssertion("note", "visible")
	require.NoError(t, err)

	compressed, err := compress.CompressSubject(node, flate.DefaultCompression)
	require.NoError(t, err)
	assert.True(t, compressed.Subject().IsCompressed())
	assert.True(t, compressed.Equal(node))

	out, err := compress.DecompressSubject(compressed)
	require.NoError(t, err)
	assert.True(t, out.Equal(node))
}
