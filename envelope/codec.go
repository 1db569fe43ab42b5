// This file implements the binary codec (C5, spec.md §4.1/§6.1): the
// deterministic dCBOR tagged and untagged encodings of each case, and
// their inverse decode. Tag numbers must agree with the published
// registry named in spec.md §6.1; this rewrite picks concrete values
// (see DESIGN.md) since no registry is vendored into the retrieval pack.
package envelope

import (
	"github.com/paritytech/bcts-sub004/dcbor"
	"github.com/paritytech/bcts-sub004/digest"
)

// Tag numbers used on the wire. TagLeaf and TagEncodedCBOR both identify
// a leaf per spec.md §9(a): the encoder always emits TagLeaf; the decoder
// accepts either for backward compatibility, matching the source's two
// historical leaf tags.
const (
	TagEnvelope    uint64 = 200
	TagLeaf        uint64 = 204
	TagEncodedCBOR uint64 = 24
	TagEncrypted   uint64 = 201
	TagCompressed  uint64 = 202
)

type encryptedWire struct {
	_          struct{} `cbor:",toarray"`
	Ciphertext []byte
	Nonce      []byte
	Tag        []byte
	AAD        []byte
}

type compressedWire struct {
	_       struct{} `cbor:",toarray"`
	Deflate []byte
	Digest  []byte
}

// TaggedBinary encodes e in the tagged wire form: the envelope tag wrapping
// the untagged form. Encoding always emits the tagged form (spec.md §4.1).
func (e Envelope) TaggedBinary() ([]byte, error) {
	inner, err := e.UntaggedBinary()
	if err != nil {
		return nil, err
	}
	return dcbor.Marshal(dcbor.NewRawTag(TagEnvelope, dcbor.RawMessage(inner)))
}

// UntaggedBinary encodes e in its bare, untagged wire form (spec.md §4.1).
func (e Envelope) UntaggedBinary() ([]byte, error) {
	switch c := e.c.(type) {
	case *leafCase:
		content, err := dcbor.Marshal(c.cbor)
		if err != nil {
			return nil, err
		}
		return dcbor.Marshal(dcbor.NewRawTag(TagLeaf, dcbor.RawMessage(content)))

	case *nodeCase:
		items := make([]dcbor.RawMessage, 0, len(c.assertions)+1)
		subjBytes, err := c.subject.UntaggedBinary()
		if err != nil {
			return nil, err
		}
		items = append(items, dcbor.RawMessage(subjBytes))
		for _, a := range c.assertions {
			ab, err := a.UntaggedBinary()
			if err != nil {
				return nil, err
			}
			items = append(items, dcbor.RawMessage(ab))
		}
		return dcbor.Marshal(items)

	case *wrappedCase:
		// A wrapped envelope's untagged form IS the tagged form of its
		// inner envelope (spec.md §4.1's wrapped row).
		return c.inner.TaggedBinary()

	case *assertionCase:
		predBytes, err := c.predicate.UntaggedBinary()
		if err != nil {
			return nil, err
		}
		objBytes, err := c.object.UntaggedBinary()
		if err != nil {
			return nil, err
		}
		out := make([]byte, 0, 1+len(predBytes)+len(objBytes))
		out = append(out, 0xA1) // definite-length map, 1 entry
		out = append(out, predBytes...)
		out = append(out, objBytes...)
		return out, nil

	case *knownValueCase:
		return dcbor.Marshal(c.value)

	case *elidedCase:
		return dcbor.Marshal(c.d.Bytes())

	case *encryptedCase:
		wire := encryptedWire{
			Ciphertext: c.msg.Ciphertext,
			Nonce:      append([]byte{}, c.msg.Nonce[:]...),
			Tag:        append([]byte{}, c.msg.Tag[:]...),
			AAD:        c.msg.AAD.Bytes(),
		}
		content, err := dcbor.Marshal(wire)
		if err != nil {
			return nil, err
		}
		return dcbor.Marshal(dcbor.NewRawTag(TagEncrypted, dcbor.RawMessage(content)))

	case *compressedCase:
		wire := compressedWire{
			Deflate: c.blob.Deflate,
			Digest:  c.blob.Digest.Bytes(),
		}
		content, err := dcbor.Marshal(wire)
		if err != nil {
			return nil, err
		}
		return dcbor.Marshal(dcbor.NewRawTag(TagCompressed, dcbor.RawMessage(content)))

	default:
		return nil, ErrInvalidFormat
	}
}

// FromTaggedBinary decodes the tagged wire form. The outermost envelope tag
// is the transport marker, not a Wrapped-producing tag: stripping exactly
// one before dispatch is what distinguishes "this is envelope e" from "this
// is Wrapped(e)" at the top level (the latter carries the tag twice).
// Untagged input is also accepted at the top level (spec.md §6.1).
func FromTaggedBinary(data []byte) (Envelope, error) {
	kind, err := dcbor.Classify(data)
	if err != nil {
		return Envelope{}, ErrInvalidFormat
	}
	if kind == dcbor.KindTag {
		tag, terr := dcbor.DecodeTag(data)
		if terr == nil && tag.Number == TagEnvelope {
			return decodeItem(tag.Content)
		}
	}
	return decodeItem(data)
}

// FromUntaggedBinary decodes the untagged wire form (spec.md §4.1).
func FromUntaggedBinary(data []byte) (Envelope, error) {
	return decodeItem(data)
}

func decodeItem(data []byte) (Envelope, error) {
	kind, err := dcbor.Classify(data)
	if err != nil {
		return Envelope{}, ErrInvalidFormat
	}

	switch kind {
	case dcbor.KindTag:
		tag, err := dcbor.DecodeTag(data)
		if err != nil {
			return Envelope{}, ErrInvalidFormat
		}
		switch tag.Number {
		case TagEnvelope:
			inner, err := decodeItem(tag.Content)
			if err != nil {
				return Envelope{}, err
			}
			return NewWrapped(inner), nil
		case TagLeaf, TagEncodedCBOR:
			var raw []byte
			if err := dcbor.Unmarshal(tag.Content, &raw); err != nil {
				return Envelope{}, ErrInvalidFormat
			}
			return newLeafFromCanonicalCBOR(raw), nil
		case TagEncrypted:
			return decodeEncrypted(tag.Content)
		case TagCompressed:
			return decodeCompressed(tag.Content)
		default:
			return Envelope{}, ErrInvalidFormat
		}

	case dcbor.KindByteString:
		var raw []byte
		if err := dcbor.Unmarshal(data, &raw); err != nil {
			return Envelope{}, ErrInvalidFormat
		}
		d, err := digest.FromBytes(raw)
		if err != nil {
			return Envelope{}, ErrInvalidFormat
		}
		return NewElided(d), nil

	case dcbor.KindArray:
		var items []dcbor.RawMessage
		if err := dcbor.Unmarshal(data, &items); err != nil {
			return Envelope{}, ErrInvalidFormat
		}
		if len(items) < 2 {
			return Envelope{}, ErrInvalidFormat
		}
		subject, err := decodeItem(items[0])
		if err != nil {
			return Envelope{}, err
		}
		assertions := make([]Envelope, 0, len(items)-1)
		for _, raw := range items[1:] {
			a, err := decodeItem(raw)
			if err != nil {
				return Envelope{}, err
			}
			assertions = append(assertions, a)
		}
		return nodeFromDecodedChildren(subject, assertions)

	case dcbor.KindMap:
		keyBytes, valBytes, err := splitMapSingleEntry(data)
		if err != nil {
			return Envelope{}, err
		}
		predicate, err := decodeItem(keyBytes)
		if err != nil {
			return Envelope{}, err
		}
		object, err := decodeItem(valBytes)
		if err != nil {
			return Envelope{}, err
		}
		return newAssertionEnvelope(predicate, object), nil

	case dcbor.KindUnsignedInt:
		var n uint64
		if err := dcbor.Unmarshal(data, &n); err != nil {
			return Envelope{}, ErrInvalidFormat
		}
		return NewKnownValue(n), nil

	default:
		return Envelope{}, ErrInvalidFormat
	}
}

// nodeFromDecodedChildren validates and rebuilds a Node from its decoded
// subject and assertion list, enforcing ascending-digest order and the
// assertion-or-obscured invariant exactly rather than silently repairing
// them (spec.md §4.1: "violations are InvalidFormat").
func nodeFromDecodedChildren(subject Envelope, assertions []Envelope) (Envelope, error) {
	seen := make(map[digest.Digest]struct{}, len(assertions))
	var prev digest.Digest
	for i, a := range assertions {
		if !isAssertionOrObscured(a) {
			return Envelope{}, ErrInvalidFormat
		}
		d := a.Digest()
		if _, dup := seen[d]; dup {
			return Envelope{}, ErrInvalidFormat
		}
		seen[d] = struct{}{}
		if i > 0 && !digest.Less(prev, d) {
			return Envelope{}, ErrInvalidFormat
		}
		prev = d
	}

	children := make([]digest.Digest, 0, len(assertions)+1)
	children = append(children, subject.Digest())
	for _, a := range assertions {
		children = append(children, a.Digest())
	}

	return Envelope{c: &nodeCase{
		subject:    subject,
		assertions: assertions,
		d:          digest.FromChildren(children...),
	}}, nil
}

func decodeEncrypted(content []byte) (Envelope, error) {
	var wire encryptedWire
	if err := dcbor.Unmarshal(content, &wire); err != nil {
		return Envelope{}, ErrInvalidFormat
	}
	aad, err := digest.FromBytes(wire.AAD)
	if err != nil {
		return Envelope{}, ErrInvalidFormat
	}
	msg := EncryptedMessage{Ciphertext: wire.Ciphertext, AAD: aad}
	if len(wire.Nonce) != len(msg.Nonce) || len(wire.Tag) != len(msg.Tag) {
		return Envelope{}, ErrInvalidFormat
	}
	copy(msg.Nonce[:], wire.Nonce)
	copy(msg.Tag[:], wire.Tag)
	return NewEncrypted(msg)
}

func decodeCompressed(content []byte) (Envelope, error) {
	var wire compressedWire
	if err := dcbor.Unmarshal(content, &wire); err != nil {
		return Envelope{}, ErrInvalidFormat
	}
	d, err := digest.FromBytes(wire.Digest)
	if err != nil {
		return Envelope{}, ErrInvalidFormat
	}
	return NewCompressed(CompressedMessage{Deflate: wire.Deflate, Digest: d})
}
