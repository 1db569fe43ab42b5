package envelope

import (
	"encoding/binary"
	"fmt"
	"io"
)

// This file implements the minimal structural CBOR scanning the codec
// needs but the dCBOR collaborator's reflection-based Marshal/Unmarshal
// cannot do directly: splitting a single-entry map's key item from its
// value item without decoding either into a Go value (their key type is an
// arbitrary nested envelope encoding, which cannot be a Go map key).
//
// Only definite-length items are handled, matching the deterministic
// decode options configured in package dcbor (indefinite length forbidden).

// cborArgument reads the initial byte's major type is irrelevant here;
// it returns the header length (1 + however many following bytes encode
// the additional-information argument) and the argument's value.
func cborArgument(data []byte) (headerLen int, arg uint64, err error) {
	if len(data) == 0 {
		return 0, 0, io.ErrUnexpectedEOF
	}
	ai := data[0] & 0x1F
	switch {
	case ai < 24:
		return 1, uint64(ai), nil
	case ai == 24:
		if len(data) < 2 {
			return 0, 0, io.ErrUnexpectedEOF
		}
		return 2, uint64(data[1]), nil
	case ai == 25:
		if len(data) < 3 {
			return 0, 0, io.ErrUnexpectedEOF
		}
		return 3, uint64(binary.BigEndian.Uint16(data[1:3])), nil
	case ai == 26:
		if len(data) < 5 {
			return 0, 0, io.ErrUnexpectedEOF
		}
		return 5, uint64(binary.BigEndian.Uint32(data[1:5])), nil
	case ai == 27:
		if len(data) < 9 {
			return 0, 0, io.ErrUnexpectedEOF
		}
		return 9, binary.BigEndian.Uint64(data[1:9]), nil
	default:
		return 0, 0, fmt.Errorf("envelope: indefinite-length CBOR item not supported")
	}
}

// cborItemLen returns the byte length of the single complete CBOR data
// item at the start of data.
func cborItemLen(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, io.ErrUnexpectedEOF
	}
	major := data[0] >> 5
	headerLen, arg, err := cborArgument(data)
	if err != nil {
		return 0, err
	}

	switch major {
	case 0, 1: // unsigned / negative integer
		return headerLen, nil
	case 2, 3: // byte string / text string
		total := headerLen + int(arg)
		if total > len(data) {
			return 0, io.ErrUnexpectedEOF
		}
		return total, nil
	case 4: // array
		total := headerLen
		rest := data[headerLen:]
		for i := uint64(0); i < arg; i++ {
			l, err := cborItemLen(rest)
			if err != nil {
				return 0, err
			}
			total += l
			rest = rest[l:]
		}
		return total, nil
	case 5: // map: arg pairs, 2*arg items
		total := headerLen
		rest := data[headerLen:]
		for i := uint64(0); i < arg*2; i++ {
			l, err := cborItemLen(rest)
			if err != nil {
				return 0, err
			}
			total += l
			rest = rest[l:]
		}
		return total, nil
	case 6: // tag: header + one wrapped item
		l, err := cborItemLen(data[headerLen:])
		if err != nil {
			return 0, err
		}
		return headerLen + l, nil
	case 7: // simple value / float: argument bytes are the payload itself
		return headerLen, nil
	default:
		return 0, fmt.Errorf("envelope: unsupported CBOR major type %d", major)
	}
}

// splitMapSingleEntry parses a CBOR map with exactly one key/value pair,
// returning the raw bytes of the key item and the value item. Any other
// map size is ErrInvalidFormat (spec.md §4.1: assertion's untagged form is
// a single-entry mapping).
func splitMapSingleEntry(data []byte) (key, value []byte, err error) {
	if len(data) == 0 || data[0]>>5 != 5 {
		return nil, nil, ErrInvalidFormat
	}
	headerLen, count, err := cborArgument(data)
	if err != nil {
		return nil, nil, ErrInvalidFormat
	}
	if count != 1 {
		return nil, nil, ErrInvalidFormat
	}
	rest := data[headerLen:]
	keyLen, err := cborItemLen(rest)
	if err != nil {
		return nil, nil, ErrInvalidFormat
	}
	key = rest[:keyLen]
	rest = rest[keyLen:]
	valLen, err := cborItemLen(rest)
	if err != nil {
		return nil, nil, ErrInvalidFormat
	}
	value = rest[:valLen]
	if len(rest) != valLen {
		return nil, nil, ErrInvalidFormat
	}
	return key, value, nil
}
