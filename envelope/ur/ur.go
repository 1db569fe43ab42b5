package ur

import (
	"encoding/binary"
	"hash/crc32"
	"strings"

	"github.com/paritytech/bcts-sub004/envelope"
)

const (
	scheme  = "ur:"
	urType  = "envelope"
	crcSize = 4
)

func withChecksum(payload []byte) []byte {
	sum := crc32.ChecksumIEEE(payload)
	out := make([]byte, len(payload)+crcSize)
	copy(out, payload)
	binary.BigEndian.PutUint32(out[len(payload):], sum)
	return out
}

func stripChecksum(data []byte) ([]byte, error) {
	if len(data) < crcSize {
		return nil, ErrTooShort
	}
	payload := data[:len(data)-crcSize]
	want := binary.BigEndian.Uint32(data[len(data)-crcSize:])
	if crc32.ChecksumIEEE(payload) != want {
		return nil, ErrChecksum
	}
	return payload, nil
}

// Encode renders arbitrary bytes as a `ur:envelope/...` URI body, using the
// minimal bytewords form with an appended CRC32 checksum.
func Encode(data []byte) string {
	return scheme + urType + "/" + EncodeMinimal(withChecksum(data))
}

// Decode parses a `ur:envelope/...` URI back into the bytes passed to
// Encode, verifying its checksum.
func Decode(s string) ([]byte, error) {
	if !strings.HasPrefix(s, scheme) {
		return nil, ErrBadScheme
	}
	rest := strings.TrimPrefix(s, scheme)
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 || parts[0] != urType {
		return nil, ErrBadType
	}
	raw, err := DecodeMinimal(parts[1])
	if err != nil {
		return nil, err
	}
	return stripChecksum(raw)
}

// UR renders e as a `ur:envelope/...` URI over its untagged binary
// encoding (spec.md §6.2).
func UR(e envelope.Envelope) (string, error) {
	bin, err := e.UntaggedBinary()
	if err != nil {
		return "", err
	}
	return Encode(bin), nil
}

// FromUR is the inverse of UR.
func FromUR(s string) (envelope.Envelope, error) {
	bin, err := Decode(s)
	if err != nil {
		return envelope.Envelope{}, err
	}
	return envelope.FromUntaggedBinary(bin)
}
