package proof

import (
	"github.com/paritytech/bcts-sub004/digest"
	"github.com/paritytech/bcts-sub004/envelope"
	"github.com/paritytech/bcts-sub004/envelope/elide"
)

// Proof is an envelope with everything but a set of target digests (and
// their ancestors) elided away, together with the root digest it claims to
// prove membership under.
type Proof struct {
	Root     digest.Digest
	Envelope envelope.Envelope
}

// ProveContainsTarget builds a Proof that target is present somewhere under
// e, without revealing anything else.
func ProveContainsTarget(e envelope.Envelope, target digest.Digest) (Proof, error) {
	return ProveContainsSet(e, digest.NewSet(target))
}

// ProveContainsSet builds a Proof that every digest in targets is present
// somewhere under e: the path down to each target is revealed, and the
// targets themselves are then elided so the proof discloses their presence
// without disclosing their content. Any target absent from e's tree yields
// ErrNoProof rather than a proof that merely looks valid.
func ProveContainsSet(e envelope.Envelope, targets digest.Set) (Proof, error) {
	present := e.CollectDigests()
	for t := range targets {
		if !present.Contains(t) {
			return Proof{}, ErrNoProof
		}
	}

	revealed, err := elide.ElideRevealing(e, targets, elide.Elide())
	if err != nil {
		return Proof{}, err
	}
	obscured, err := elide.ElideRemoving(revealed, targets, elide.Elide())
	if err != nil {
		return Proof{}, err
	}
	return Proof{Root: e.Digest(), Envelope: obscured}, nil
}

// ConfirmContainsTarget verifies that p proves target's presence under
// expectedRoot.
func ConfirmContainsTarget(expectedRoot digest.Digest, p Proof, target digest.Digest) (bool, error) {
	return ConfirmContainsSet(expectedRoot, p, digest.NewSet(target))
}

// ConfirmContainsSet verifies that p proves the presence of every digest in
// targets under expectedRoot: p's own digest must equal expectedRoot (the
// elisions that built it never change the root digest, by the elision
// engine's digest-preservation invariant), and every target digest must
// still be reachable by walking p's envelope.
func ConfirmContainsSet(expectedRoot digest.Digest, p Proof, targets digest.Set) (bool, error) {
	if !p.Envelope.Digest().Equal(expectedRoot) {
		return false, ErrRootMismatch
	}
	if !p.Root.Equal(expectedRoot) {
		return false, ErrRootMismatch
	}

	present := p.Envelope.CollectDigests()
	for d := range targets {
		if !present.Contains(d) {
			return false, ErrTargetNotFound
		}
	}
	return true, nil
}
