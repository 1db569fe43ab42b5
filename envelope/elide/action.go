package elide

import (
	"github.com/paritytech/bcts-sub004/envelope"
	"github.com/paritytech/bcts-sub004/envelope/compress"
	"github.com/paritytech/bcts-sub004/envelope/xcrypto"
)

// Action is what an elision pass substitutes in place of a matched
// envelope: elision proper, or one of the other two digest-preserving
// obscured cases (spec.md §4.5 treats all three as interchangeable "obscure"
// outcomes of the same traversal).
type Action interface {
	obscure(e envelope.Envelope) (envelope.Envelope, error)
}

type eliding struct{}

func (eliding) obscure(e envelope.Envelope) (envelope.Envelope, error) {
	return envelope.NewElided(e.Digest()), nil
}

// Elide obscures matched envelopes by replacing them with a bare Elided
// case, discarding their content entirely.
func Elide() Action { return eliding{} }

type encrypting struct{ key [32]byte }

func (a encrypting) obscure(e envelope.Envelope) (envelope.Envelope, error) {
	return xcrypto.EncryptEnvelope(e, a.key)
}

// EncryptWith obscures matched envelopes by replacing them with an
// Encrypted case under key, retaining their content for anyone who holds
// the key.
func EncryptWith(key [32]byte) Action { return encrypting{key: key} }

type compressing struct{ level int }

func (a compressing) obscure(e envelope.Envelope) (envelope.Envelope, error) {
	return compress.CompressEnvelope(e, a.level)
}

// CompressWith obscures matched envelopes by replacing them with a
// Compressed case at the given flate level.
func CompressWith(level int) Action { return compressing{level: level} }
