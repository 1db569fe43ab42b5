// Package proof implements inclusion proofs (C13, spec.md §4.11): a proof
// that one or more digests are present somewhere under a given root digest,
// without revealing anything else about the envelope tree they came from.
//
// Unlike a conventional Merkle proof (a list of sibling hashes walked
// bottom-up to a root), a Gordian-style inclusion proof is itself an
// envelope: the original tree with everything elided except the spine of
// ancestors connecting the targets to the root, and with each target itself
// replaced by an elided stand-in that still carries its digest. Producing
// one is a reveal-set elision followed by a remove-set elision of the
// targets (package elide); confirming one is just
// checking the proof envelope's own digest against the claimed root and
// that every target digest still appears somewhere in it.
package proof
