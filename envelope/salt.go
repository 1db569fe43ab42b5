package envelope

import (
	"crypto/rand"
	"math/big"
)

// saltKnownValue is the known-value predicate under which salt
// assertions are attached; defined here rather than imported from package
// known to keep the core envelope package free of a dependency on the
// (mutable, process-wide) known-value registry - it only ever needs this
// one fixed code.
const saltKnownValue = 6

func saltPredicate() Envelope {
	return NewKnownValue(saltKnownValue)
}

func randomBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// AddSalt attaches a salt assertion of proportional length
// (spec.md §4.10): at least 8 bytes, scaling with the size of e's tagged
// binary encoding so that large envelopes get proportionally more
// decorrelating entropy. The exact length within the proportional band is
// chosen uniformly at random per call.
func (e Envelope) AddSalt() (Envelope, error) {
	size := e.approximateSize()
	lo := saltFloor(size)
	hi := saltCeil(size)
	return e.AddSaltInRange(lo, hi)
}

func saltFloor(size int) int {
	// max(8, min(25% of size, max(16, 5% of size)))
	fivePct := size / 20
	inner := 16
	if fivePct > inner {
		inner = fivePct
	}
	twentyFivePct := size / 4
	lo := twentyFivePct
	if inner < lo {
		lo = inner
	}
	if lo < 8 {
		lo = 8
	}
	return lo
}

func saltCeil(size int) int {
	hi := size / 4
	if hi < 8 {
		hi = 8
	}
	lo := saltFloor(size)
	if hi < lo {
		hi = lo
	}
	return hi
}

// approximateSize estimates e's encoded size for salt proportioning
// without requiring a full codec round-trip: the leaf CBOR length for
// leaves, and a structural estimate otherwise. Callers that need the exact
// tagged binary size should salt after encoding and re-encode; this
// estimate only needs to be in the right order of magnitude since
// AddSalt's band is already wide.
func (e Envelope) approximateSize() int {
	switch e.Kind() {
	case KindLeaf:
		lc := e.c.(*leafCase)
		return len(lc.cbor)
	case KindNode:
		nc := e.c.(*nodeCase)
		total := nc.subject.approximateSize()
		for _, a := range nc.assertions {
			total += a.approximateSize()
		}
		return total
	case KindWrapped:
		wc := e.c.(*wrappedCase)
		return wc.inner.approximateSize() + 8
	case KindAssertion:
		ac := e.c.(*assertionCase)
		return ac.predicate.approximateSize() + ac.object.approximateSize()
	case KindEncrypted:
		en := e.c.(*encryptedCase)
		return len(en.msg.Ciphertext) + 32
	case KindCompressed:
		co := e.c.(*compressedCase)
		return len(co.blob.Deflate) + 32
	default:
		return 32
	}
}

// AddSaltWithLength attaches a salt assertion of exactly n random bytes.
// Rejects n < 8 with ErrSaltTooShort (spec.md §4.10).
func (e Envelope) AddSaltWithLength(n int) (Envelope, error) {
	if n < 8 {
		return Envelope{}, ErrSaltTooShort
	}
	b, err := randomBytes(n)
	if err != nil {
		return Envelope{}, err
	}
	return e.AddAssertion(saltPredicate(), b)
}

// AddSaltInRange attaches a salt assertion whose length is chosen uniformly
// from [min, max]. Both bounds must be at least 8.
func (e Envelope) AddSaltInRange(min, max int) (Envelope, error) {
	if min < 8 || max < 8 || max < min {
		return Envelope{}, ErrSaltRangeInvalid
	}
	n := min
	if max > min {
		span, err := rand.Int(rand.Reader, big.NewInt(int64(max-min+1)))
		if err != nil {
			return Envelope{}, err
		}
		n = min + int(span.Int64())
	}
	return e.AddSaltWithLength(n)
}
