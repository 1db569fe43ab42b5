// Package ur implements a bytewords-style textual encoding for envelopes
// (spec.md §6.2), in the shape of BCR-2020-012 "Uniform Resources": a
// `ur:envelope/...` URI whose body is the envelope's untagged binary
// encoding, checksummed and rendered as a sequence of pronounceable words
// rather than raw hex.
//
// The word list used here is a self-contained, internally generated
// reference table (see words.go), not a transcription of the published
// BCR-2020-012 word list: this package is a compatible-in-spirit transport
// encoding, not an interoperable implementation of the external standard,
// which spec.md names as a collaborator outside this system's scope.
package ur
