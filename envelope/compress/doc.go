// Package compress implements the envelope core's compression
// transformation (C11, spec.md §4.9): replacing an envelope with a
// Compressed case carrying its DEFLATE-compressed tagged binary encoding
// and the pre-compression digest, so compression never changes what the
// envelope digests to. Compression uses klauspost/compress/flate, a
// drop-in-compatible DEFLATE implementation already present (transitively)
// in the retrieval pack, rather than the standard library's compress/flate.
package compress
