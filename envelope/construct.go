package envelope

import (
	"sort"

	"github.com/paritytech/bcts-sub004/dcbor"
	"github.com/paritytech/bcts-sub004/digest"
)

// NewLeaf wraps an arbitrary Go value as a leaf envelope. The value is
// canonicalized through the dCBOR collaborator; its digest is the SHA-256
// image of those canonical bytes (spec.md §3.4). Booleans, integers, text,
// byte strings, and any other dCBOR-marshalable value are accepted.
func NewLeaf(value any) (Envelope, error) {
	raw, err := dcbor.Marshal(value)
	if err != nil {
		return Envelope{}, err
	}
	return newLeafFromCanonicalCBOR(raw), nil
}

func newLeafFromCanonicalCBOR(raw []byte) Envelope {
	cp := make([]byte, len(raw))
	copy(cp, raw)
	return Envelope{c: &leafCase{cbor: cp, d: digest.FromImage(cp)}}
}

// FromSubject promotes a bare value into the subject position of an
// envelope: if value is already an Envelope, it is returned unchanged
// (identity); otherwise it is wrapped as a leaf (spec.md §4.2).
func FromSubject(value any) (Envelope, error) {
	if e, ok := value.(Envelope); ok {
		return e, nil
	}
	return NewLeaf(value)
}

// MustFromSubject is FromSubject but panics on error; convenient for
// constructing literal envelopes from known-good Go values in tests and
// example code.
func MustFromSubject(value any) Envelope {
	e, err := FromSubject(value)
	if err != nil {
		panic(err)
	}
	return e
}

// LeafValue decodes the leaf's canonical dCBOR bytes into v (a pointer),
// the same way json.Unmarshal does. Returns ErrNotLeaf if e is not a leaf.
func (e Envelope) LeafValue(v any) error {
	lc, ok := e.c.(*leafCase)
	if !ok {
		return ErrNotLeaf
	}
	return dcbor.Unmarshal(lc.cbor, v)
}

// LeafCBOR returns the leaf's canonical dCBOR bytes. Returns ErrNotLeaf if e
// is not a leaf.
func (e Envelope) LeafCBOR() ([]byte, error) {
	lc, ok := e.c.(*leafCase)
	if !ok {
		return nil, ErrNotLeaf
	}
	out := make([]byte, len(lc.cbor))
	copy(out, lc.cbor)
	return out, nil
}

// NewAssertion builds an assertion envelope from a predicate and object
// value, promoting either side through FromSubject if it is not already an
// envelope.
func NewAssertion(predicate, object any) (Envelope, error) {
	p, err := FromSubject(predicate)
	if err != nil {
		return Envelope{}, err
	}
	o, err := FromSubject(object)
	if err != nil {
		return Envelope{}, err
	}
	return newAssertionEnvelope(p, o), nil
}

func newAssertionEnvelope(predicate, object Envelope) Envelope {
	d := digest.FromChildren(predicate.Digest(), object.Digest())
	return Envelope{c: &assertionCase{predicate: predicate, object: object, d: d}}
}

// Predicate returns the predicate side of an assertion envelope.
func (e Envelope) Predicate() (Envelope, error) {
	ac, ok := e.c.(*assertionCase)
	if !ok {
		return Envelope{}, ErrNotAssertion
	}
	return ac.predicate, nil
}

// Object returns the object side of an assertion envelope.
func (e Envelope) Object() (Envelope, error) {
	ac, ok := e.c.(*assertionCase)
	if !ok {
		return Envelope{}, ErrNotAssertion
	}
	return ac.object, nil
}

// NewWrapped builds a fresh wrapped envelope around inner.
func NewWrapped(inner Envelope) Envelope {
	d := digest.FromChildren(inner.Digest())
	return Envelope{c: &wrappedCase{inner: inner, d: d}}
}

// Wrap is the method form of NewWrapped (spec.md §4.12): it always produces
// a fresh wrapped case around the receiver, even if the receiver is already
// wrapped.
func (e Envelope) Wrap() Envelope { return NewWrapped(e) }

// TryUnwrap returns the inner envelope of e's subject when that subject is
// a wrapped case, or ErrNotWrapped. Assertions on e itself are not carried
// into the result.
func (e Envelope) TryUnwrap() (Envelope, error) {
	wc, ok := e.Subject().c.(*wrappedCase)
	if !ok {
		return Envelope{}, ErrNotWrapped
	}
	return wc.inner, nil
}

// Unwrap is an alias for TryUnwrap (spec.md §4.12).
func (e Envelope) Unwrap() (Envelope, error) { return e.TryUnwrap() }

// NewKnownValue builds a known-value envelope from a raw uint64 code.
func NewKnownValue(n uint64) Envelope {
	raw, err := dcbor.Marshal(n)
	if err != nil {
		// n is a uint64; marshaling a uint64 cannot fail under the
		// deterministic encoder.
		panic(err)
	}
	return Envelope{c: &knownValueCase{value: n, d: digest.FromImage(raw)}}
}

// KnownValue returns the numeric code of a known-value envelope, or
// ErrNotKnownValue.
func (e Envelope) KnownValue() (uint64, error) {
	kc, ok := e.c.(*knownValueCase)
	if !ok {
		return 0, ErrNotKnownValue
	}
	return kc.value, nil
}

// NewElided builds an elided envelope carrying the digest of the content it
// replaced. The digest is required: an elided envelope with no digest
// cannot exist (spec.md §3.5 invariant 1).
func NewElided(d digest.Digest) Envelope {
	return Envelope{c: &elidedCase{d: d}}
}

// ElidedDigest returns the preserved digest of an elided envelope, or
// ErrInvalidFormat if e is not elided.
func (e Envelope) ElidedDigest() (digest.Digest, error) {
	ec, ok := e.c.(*elidedCase)
	if !ok {
		return digest.Zero, ErrInvalidFormat
	}
	return ec.d, nil
}

// NewEncrypted builds an encrypted envelope from a fully formed
// EncryptedMessage. msg.AAD must already carry the digest of the plaintext
// it replaces; constructing one with a zero AAD is rejected so that no
// encrypted envelope can silently lose its digest-preservation invariant.
func NewEncrypted(msg EncryptedMessage) (Envelope, error) {
	if msg.AAD.IsZero() {
		return Envelope{}, ErrMissingDigest
	}
	return Envelope{c: &encryptedCase{msg: msg}}, nil
}

// Encrypted returns the EncryptedMessage carried by e, or ErrInvalidFormat.
func (e Envelope) Encrypted() (EncryptedMessage, error) {
	ec, ok := e.c.(*encryptedCase)
	if !ok {
		return EncryptedMessage{}, ErrInvalidFormat
	}
	return ec.msg, nil
}

// NewCompressed builds a compressed envelope from a fully formed
// CompressedMessage. blob.Digest must already carry the pre-compression
// digest; this rewrite always requires it (spec.md §9(c)).
func NewCompressed(blob CompressedMessage) (Envelope, error) {
	if blob.Digest.IsZero() {
		return Envelope{}, ErrMissingDigest
	}
	return Envelope{c: &compressedCase{blob: blob}}, nil
}

// Compressed returns the CompressedMessage carried by e, or ErrInvalidFormat.
func (e Envelope) Compressed() (CompressedMessage, error) {
	cc, ok := e.c.(*compressedCase)
	if !ok {
		return CompressedMessage{}, ErrInvalidFormat
	}
	return cc.blob, nil
}

// isAssertionOrObscured reports whether e may legally appear inside a
// node's assertion set (spec.md §3.5 invariant 4): a true assertion, or
// one of the three obscured cases standing in for one.
func isAssertionOrObscured(e Envelope) bool {
	switch e.Kind() {
	case KindAssertion, KindElided, KindEncrypted, KindCompressed:
		return true
	default:
		return false
	}
}

// nodeWithSortedAssertions is the sole privileged constructor for the Node
// case (spec.md §4.2). AddAssertionEnvelope, RemoveAssertion, ReplaceSubject
// and Walk funnel through here so the ascending-digest ordering and the
// assertion-or-obscured invariant can never be bypassed. The binary decoder
// does not: nodeFromDecodedChildren rejects mis-ordered or duplicate
// assertions instead of sorting and deduplicating them.
func nodeWithSortedAssertions(subject Envelope, assertions []Envelope) (Envelope, error) {
	if len(assertions) == 0 {
		return Envelope{}, ErrEmptyAssertions
	}
	for _, a := range assertions {
		if !isAssertionOrObscured(a) {
			return Envelope{}, ErrInvalidAssertion
		}
	}

	deduped := dedupByDigest(assertions)
	sort.Slice(deduped, func(i, j int) bool {
		return digest.Less(deduped[i].Digest(), deduped[j].Digest())
	})

	children := make([]digest.Digest, 0, len(deduped)+1)
	children = append(children, subject.Digest())
	for _, a := range deduped {
		children = append(children, a.Digest())
	}

	return Envelope{c: &nodeCase{
		subject:    subject,
		assertions: deduped,
		d:          digest.FromChildren(children...),
	}}, nil
}

func dedupByDigest(in []Envelope) []Envelope {
	seen := make(map[digest.Digest]struct{}, len(in))
	out := make([]Envelope, 0, len(in))
	for _, e := range in {
		d := e.Digest()
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, e)
	}
	return out
}

// Subject returns the subject of e: for a node, its stored subject; for
// every other case, e itself (spec.md §3.5 invariant 5 - total, no error).
func (e Envelope) Subject() Envelope {
	if nc, ok := e.c.(*nodeCase); ok {
		return nc.subject
	}
	return e
}

// Assertions returns the assertions of e in ascending-digest order, or nil
// if e is not a node.
func (e Envelope) Assertions() []Envelope {
	nc, ok := e.c.(*nodeCase)
	if !ok {
		return nil
	}
	out := make([]Envelope, len(nc.assertions))
	copy(out, nc.assertions)
	return out
}

// HasAssertions reports whether e carries any assertions.
func (e Envelope) HasAssertions() bool {
	return len(e.Assertions()) > 0
}
