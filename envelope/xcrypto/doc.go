// Package xcrypto implements the envelope core's symmetric and
// public-key encryption transformations (C9/C10, spec.md §4.7/§4.8):
// per-subject AEAD encryption with the digest as authenticated associated
// data, and public-key recipient sealing of the content key built on top
// of it. The AEAD is IETF ChaCha20-Poly1305 from golang.org/x/crypto,
// following the same construction style the teacher's sibling project
// luxfi-consensus/qzmq uses for its own hybrid-transport AEAD framing;
// recipient sealing uses X25519 (crypto/ecdh) plus HKDF-SHA256
// (golang.org/x/crypto/hkdf) to derive a one-time sealing key per
// recipient, an ECIES-style construction chosen because no KEM library
// appears anywhere in the retrieval pack.
package xcrypto
