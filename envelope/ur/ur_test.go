package ur_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paritytech/bcts-sub004/envelope"
	"github.com/paritytech/bcts-sub004/envelope/ur"
)

func TestBytewordsMinimalRoundTrip(t *testing.T) {
	data := []byte{0, 1, 2, 254, 255, 42, 128}
	encoded := ur.EncodeMinimal(data)
	decoded, err := ur.DecodeMinimal(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestBytewordsFullRoundTrip(t *testing.T) {
	data := []byte{0, 1, 2, 254, 255, 42, 128}
	encoded := ur.EncodeFull(data)
	decoded, err := ur.DecodeFull(encoded)
	require.NoError(t, err)
	assert.Equal(t, data, decoded)
}

func TestBytewordsCoverEveryByteValue(t *testing.T) {
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	encoded := ur.EncodeMinimal(all)
	decoded, err := ur.DecodeMinimal(encoded)
	require.NoError(t, err)
	assert.Equal(t, all, decoded)
}

func TestDecodeMinimalRejectsOddLength(t *testing.T) {
	_, err := ur.DecodeMinimal("a")
	assert.ErrorIs(t, err, ur.ErrOddLength)
}

func TestDecodeMinimalRejectsUnknownWord(t *testing.T) {
	_, err := ur.DecodeMinimal("zz")
	assert.ErrorIs(t, err, ur.ErrUnknownWord)
}

func TestEncodeDecodeChecksumRoundTrip(t *testing.T) {
	payload := []byte("hello world")
	s := ur.Encode(payload)
	assert.True(t, strings.HasPrefix(s, "ur:envelope/"))

	out, err := ur.Decode(s)
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestDecodeRejectsBadScheme(t *testing.T) {
	_, err := ur.Decode("notur:envelope/abcd")
	assert.ErrorIs(t, err, ur.ErrBadScheme)
}

func TestDecodeRejectsWrongType(t *testing.T) {
	_, err := ur.Decode("ur:other/abcd")
	assert.ErrorIs(t, err, ur.ErrBadType)
}

func TestDecodeRejectsCorruptChecksum(t *testing.T) {
	s := ur.Encode([]byte("hello"))
	corrupted := s[:len(s)-2] + "zz"
	_, err := ur.Decode(corrupted)
	assert.Error(t, err)
}

func TestEnvelopeURRoundTrip(t *testing.T) {
	subject, err := envelope.NewLeaf("subject")
	require.NoError(t, err)
	node, err := subject.AddAssertion("knows", "Alice")
	require.NoError(t, err)

	uri, err := ur.UR(node)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "ur:envelope/"))

	out, err := ur.FromUR(uri)
	require.NoError(t, err)
	assert.True(t, out.Equal(node))
}
