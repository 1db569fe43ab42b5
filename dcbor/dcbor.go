// Package dcbor is the deterministic CBOR collaborator named in spec.md
// §6.3: a thin layer over github.com/fxamacker/cbor/v2 configured for
// canonical, deterministic output (core CBOR encoding per RFC 8949 §4.2.1 —
// definite lengths, canonical map key ordering, shortest-form integers).
// This mirrors the teacher's own massifs/cborcodec.go, which wraps the same
// library with a matching deterministic EncOptions/DecOptions pair.
package dcbor

import (
	"errors"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// ErrNotDeterministic names input outside the deterministic subset. No
// function in this package returns it: Unmarshal rejects indefinite lengths
// and duplicate map keys with the underlying library's errors, and does not
// check map key ordering or integer width.
var ErrNotDeterministic = errors.New("dcbor: input is not canonical deterministic CBOR")

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = newEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("dcbor: invalid encoding options: %v", err))
	}
	decMode, err = newDecOptions().DecMode()
	if err != nil {
		panic(fmt.Sprintf("dcbor: invalid decoding options: %v", err))
	}
}

func newEncOptions() cbor.EncOptions {
	return cbor.EncOptions{
		Sort:        cbor.SortCanonical,
		Time:        cbor.TimeRFC3339,
		ShortestFloat: cbor.ShortestFloat16,
		NaNConvert:  cbor.NaNConvert7e00,
		InfConvert:  cbor.InfConvertFloat16,
		IndefLength: cbor.IndefLengthForbidden,
		TagsMd:      cbor.TagsAllowed,
	}
}

func newDecOptions() cbor.DecOptions {
	return cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
		TagsMd:      cbor.TagsAllowed,
	}
}

// Marshal encodes v to deterministic canonical CBOR.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes deterministic canonical CBOR into v.
func Unmarshal(data []byte, v any) error {
	return decMode.Unmarshal(data, v)
}

// RawMessage is an uninterpreted CBOR data item, used to defer decoding of
// envelope substructure the way the core needs to inspect the leading item
// before deciding which envelope case it represents.
type RawMessage = cbor.RawMessage

// NewRawTag builds a CBOR tag wrapping the given already-encoded content.
func NewRawTag(number uint64, content RawMessage) cbor.RawTag {
	return cbor.RawTag{Number: number, Content: content}
}

// DecodeTag decodes the leading item of data as a tag, returning its number
// and raw content. Returns an error if the leading item is not a tag.
func DecodeTag(data []byte) (cbor.RawTag, error) {
	var t cbor.RawTag
	if err := decMode.Unmarshal(data, &t); err != nil {
		return cbor.RawTag{}, err
	}
	return t, nil
}

// Kind classifies the leading CBOR data item without fully decoding it,
// used by the codec (C5) to discriminate which envelope case a byte string
// represents (spec.md §4.1).
type Kind int

const (
	KindInvalid Kind = iota
	KindTag
	KindByteString
	KindArray
	KindMap
	KindUnsignedInt
)

// Classify inspects the leading major type of data.
func Classify(data []byte) (Kind, error) {
	if len(data) == 0 {
		return KindInvalid, errors.New("dcbor: empty input")
	}
	major := data[0] >> 5
	switch major {
	case 0:
		return KindUnsignedInt, nil
	case 2:
		return KindByteString, nil
	case 4:
		return KindArray, nil
	case 5:
		return KindMap, nil
	case 6:
		return KindTag, nil
	default:
		return KindInvalid, fmt.Errorf("dcbor: unsupported leading major type %d", major)
	}
}

// EncMode exposes the configured deterministic encode mode for callers (such
// as the COSE-adjacent signing helpers a host application might layer on
// top) that need direct access to fxamacker/cbor's EncMode/DecMode, mirroring
// how massifs/cose.newDefaultSignOptions plumbs its own EncOptions/DecOptions
// straight through to cbor.EncMode()/DecMode().
func EncMode() cbor.EncMode { return encMode }

// DecMode exposes the configured deterministic decode mode.
func DecMode() cbor.DecMode { return decMode }
