/*
Package envelope implements the Gordian Envelope core: an immutable,
case-discriminated value binding a subject to zero or more predicate-object
assertions, every structural element of which carries a cryptographic
digest forming a Merkle-like tree.

# Cases

An Envelope is one of eight cases (Kind): Leaf, Node, Wrapped, Assertion,
KnownValue, Elided, Encrypted, Compressed. Construction always goes through
a factory (New*); there is no public way to mutate a case in place. "Add",
"remove", and "replace" operations return a new Envelope that shares
unchanged substructure with the receiver - consistent with the teacher's
append-only, share-don't-mutate style in go-merklelog/mmr and urkle.

# Digests

Every case exposes Digest(), a total function with no failure mode except
for Encrypted/Compressed, which must be constructed with a digest already
in hand (see NewEncrypted, NewCompressed) - building one without it is a
construction-time error, not a runtime one.

# Package layout

This package owns the case union, the assertion algebra, the walker, salt,
and the binary codec (codec.go, rawscan.go), because decoding a Node must
build the unexported node case directly, after checking the same ordering
and assertion-or-obscured invariants nodeWithSortedAssertions enforces for
every other node-producing operation. Subpackages build on this one:
elide (C8), xcrypto (C9/C10), compress (C11), proof (C13), render (C14),
ur (transport), and archive (content-addressed storage).
*/
package envelope
