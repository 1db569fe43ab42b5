package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/flate"

	"github.com/paritytech/bcts-sub004/envelope"
)

// CompressEnvelope replaces e with a Compressed case carrying the DEFLATE
// image of e's tagged binary encoding, at the given flate compression
// level (flate.BestSpeed..flate.BestCompression, or flate.DefaultCompression).
// An already-compressed e is returned unchanged: compression is idempotent.
func CompressEnvelope(e envelope.Envelope, level int) (envelope.Envelope, error) {
	if e.IsCompressed() {
		return e, nil
	}
	if e.IsElided() {
		return envelope.Envelope{}, ErrCannotCompressElided
	}

	plaintext, err := e.TaggedBinary()
	if err != nil {
		return envelope.Envelope{}, err
	}

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, level)
	if err != nil {
		return envelope.Envelope{}, err
	}
	if _, err := w.Write(plaintext); err != nil {
		return envelope.Envelope{}, err
	}
	if err := w.Close(); err != nil {
		return envelope.Envelope{}, err
	}

	return envelope.NewCompressed(envelope.CompressedMessage{
		Deflate: buf.Bytes(),
		Digest:  e.Digest(),
	})
}

// DecompressEnvelope is the inverse of CompressEnvelope.
func DecompressEnvelope(e envelope.Envelope) (envelope.Envelope, error) {
	blob, err := e.Compressed()
	if err != nil {
		return envelope.Envelope{}, ErrNotCompressed
	}

	r := flate.NewReader(bytes.NewReader(blob.Deflate))
	defer r.Close()
	plaintext, err := io.ReadAll(r)
	if err != nil {
		return envelope.Envelope{}, ErrCorrupt
	}

	decoded, err := envelope.FromTaggedBinary(plaintext)
	if err != nil {
		return envelope.Envelope{}, ErrCorrupt
	}
	if !decoded.Digest().Equal(blob.Digest) {
		return envelope.Envelope{}, ErrInvalidDigest
	}
	return decoded, nil
}

// CompressSubject replaces e's subject with its compressed form.
func CompressSubject(e envelope.Envelope, level int) (envelope.Envelope, error) {
	compressed, err := CompressEnvelope(e.Subject(), level)
	if err != nil {
		return envelope.Envelope{}, err
	}
	return e.ReplaceSubject(compressed)
}

// DecompressSubject is the inverse of CompressSubject.
func DecompressSubject(e envelope.Envelope) (envelope.Envelope, error) {
	decoded, err := DecompressEnvelope(e.Subject())
	if err != nil {
		return envelope.Envelope{}, err
	}
	return e.ReplaceSubject(decoded)
}
