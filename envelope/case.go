package envelope

import (
	"github.com/paritytech/bcts-sub004/digest"
)

// Kind discriminates the eight structural variants of an Envelope
// (spec.md §3.4).
type Kind int

const (
	KindLeaf Kind = iota
	KindNode
	KindWrapped
	KindAssertion
	KindKnownValue
	KindElided
	KindEncrypted
	KindCompressed
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindNode:
		return "node"
	case KindWrapped:
		return "wrapped"
	case KindAssertion:
		return "assertion"
	case KindKnownValue:
		return "known-value"
	case KindElided:
		return "elided"
	case KindEncrypted:
		return "encrypted"
	case KindCompressed:
		return "compressed"
	default:
		return "invalid"
	}
}

// caseValue is implemented by each of the eight concrete case structs.
// Digest is memoized at construction time - every factory in this package
// computes it once and it never changes afterward, so reads never race.
type caseValue interface {
	kind() Kind
	digest() digest.Digest
}

// Envelope is the immutable, case-discriminated value described in
// spec.md §3.3. The zero Envelope is not valid; always obtain one from a
// constructor in this package.
type Envelope struct {
	c caseValue
}

// Digest returns the envelope's digest. Total for every case.
func (e Envelope) Digest() digest.Digest {
	if e.c == nil {
		return digest.Zero
	}
	return e.c.digest()
}

// Kind returns the envelope's case discriminant.
func (e Envelope) Kind() Kind {
	if e.c == nil {
		return -1
	}
	return e.c.kind()
}

// IsValid reports whether the envelope was produced by a constructor in
// this package (as opposed to the zero value).
func (e Envelope) IsValid() bool { return e.c != nil }

func (e Envelope) IsLeaf() bool       { return e.Kind() == KindLeaf }
func (e Envelope) IsNode() bool       { return e.Kind() == KindNode }
func (e Envelope) IsWrapped() bool    { return e.Kind() == KindWrapped }
func (e Envelope) IsAssertion() bool  { return e.Kind() == KindAssertion }
func (e Envelope) IsKnownValue() bool { return e.Kind() == KindKnownValue }
func (e Envelope) IsElided() bool     { return e.Kind() == KindElided }
func (e Envelope) IsEncrypted() bool  { return e.Kind() == KindEncrypted }
func (e Envelope) IsCompressed() bool { return e.Kind() == KindCompressed }

// IsObscured reports whether e is one of the three digest-preserving
// replacement cases (elided, encrypted, compressed).
func (e Envelope) IsObscured() bool {
	switch e.Kind() {
	case KindElided, KindEncrypted, KindCompressed:
		return true
	default:
		return false
	}
}

// Equal reports whether two envelopes carry the same digest. Per spec.md
// §3.5 invariant 6, equal digests imply byte-identical encodings, so digest
// equality is the envelope's notion of value equality.
func (e Envelope) Equal(other Envelope) bool {
	return e.Digest().Equal(other.Digest())
}

// --- leaf ---

type leafCase struct {
	cbor []byte // canonical dCBOR encoding of the wrapped value
	d    digest.Digest
}

func (l *leafCase) kind() Kind           { return KindLeaf }
func (l *leafCase) digest() digest.Digest { return l.d }

// --- node ---

type nodeCase struct {
	subject    Envelope
	assertions []Envelope // ascending by digest, deduplicated
	d          digest.Digest
}

func (n *nodeCase) kind() Kind           { return KindNode }
func (n *nodeCase) digest() digest.Digest { return n.d }

// --- wrapped ---

type wrappedCase struct {
	inner Envelope
	d     digest.Digest
}

func (w *wrappedCase) kind() Kind           { return KindWrapped }
func (w *wrappedCase) digest() digest.Digest { return w.d }

// --- assertion ---

type assertionCase struct {
	predicate Envelope
	object    Envelope
	d         digest.Digest
}

func (a *assertionCase) kind() Kind           { return KindAssertion }
func (a *assertionCase) digest() digest.Digest { return a.d }

// --- known value ---

type knownValueCase struct {
	value uint64
	d     digest.Digest
}

func (k *knownValueCase) kind() Kind           { return KindKnownValue }
func (k *knownValueCase) digest() digest.Digest { return k.d }

// --- elided ---

type elidedCase struct {
	d digest.Digest // the digest of the envelope this replaced
}

func (el *elidedCase) kind() Kind           { return KindElided }
func (el *elidedCase) digest() digest.Digest { return el.d }

// --- encrypted ---

// EncryptedMessage is the ciphertext record carried by an Encrypted case
// (spec.md §3.4/§4.7). AAD is the digest of the plaintext it replaced, used
// both as authenticated associated data and as the envelope's digest.
type EncryptedMessage struct {
	Ciphertext []byte
	Nonce      [12]byte
	Tag        [16]byte
	AAD        digest.Digest
}

type encryptedCase struct {
	msg EncryptedMessage
}

func (en *encryptedCase) kind() Kind           { return KindEncrypted }
func (en *encryptedCase) digest() digest.Digest { return en.msg.AAD }

// --- compressed ---

// CompressedMessage is the DEFLATE record carried by a Compressed case
// (spec.md §3.4/§4.9). Digest is always populated: this rewrite never emits
// the no-digest wire form spec.md §9(c) flags as a latent bug in the source.
type CompressedMessage struct {
	Deflate []byte
	Digest  digest.Digest
}

type compressedCase struct {
	blob CompressedMessage
}

func (co *compressedCase) kind() Kind           { return KindCompressed }
func (co *compressedCase) digest() digest.Digest { return co.blob.Digest }
