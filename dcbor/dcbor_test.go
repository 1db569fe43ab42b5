package dcbor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paritytech/bcts-sub004/dcbor"
)

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	type payload struct {
		A int
		B string
	}
	in := payload{A: 7, B: "x"}
	bin, err := dcbor.Marshal(in)
	require.NoError(t, err)

	var out payload
	require.NoError(t, dcbor.Unmarshal(bin, &out))
	assert.Equal(t, in, out)
}

func TestMarshalIsDeterministicForMaps(t *testing.T) {
	m1 := map[string]int{"b": 2, "a": 1, "c": 3}
	m2 := map[string]int{"c": 3, "b": 2, "a": 1}

	bin1, err := dcbor.Marshal(m1)
	require.NoError(t, err)
	bin2, err := dcbor.Marshal(m2)
	require.NoError(t, err)
	assert.Equal(t, bin1, bin2)
}

func TestRawTagRoundTrip(t *testing.T) {
	content, err := dcbor.Marshal("hello")
	require.NoError(t, err)
	tagged, err := dcbor.Marshal(dcbor.NewRawTag(100, dcbor.RawMessage(content)))
	require.NoError(t, err)

	decoded, err := dcbor.DecodeTag(tagged)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), decoded.Number)

	var s string
	require.NoError(t, dcbor.Unmarshal(decoded.Content, &s))
	assert.Equal(t, "hello", s)
}

func TestDecodeTagRejectsNonTag(t *testing.T) {
	bin, err := dcbor.Marshal(42)
	require.NoError(t, err)
	_, err = dcbor.DecodeTag(bin)
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		v    any
		want dcbor.Kind
	}{
		{"uint", 7, dcbor.KindUnsignedInt},
		{"bytes", []byte{1, 2, 3}, dcbor.KindByteString},
		{"array", []int{1, 2}, dcbor.KindArray},
		{"map", map[string]int{"a": 1}, dcbor.KindMap},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			bin, err := dcbor.Marshal(c.v)
			require.NoError(t, err)
			kind, err := dcbor.Classify(bin)
			require.NoError(t, err)
			assert.Equal(t, c.want, kind)
		})
	}
}

func TestClassifyTag(t *testing.T) {
	content, err := dcbor.Marshal(1)
	require.NoError(t, err)
	bin, err := dcbor.Marshal(dcbor.NewRawTag(5, dcbor.RawMessage(content)))
	require.NoError(t, err)
	kind, err := dcbor.Classify(bin)
	require.NoError(t, err)
	assert.Equal(t, dcbor.KindTag, kind)
}

func TestClassifyRejectsEmptyInput(t *testing.T) {
	_, err := dcbor.Classify(nil)
	assert.Error(t, err)
}
