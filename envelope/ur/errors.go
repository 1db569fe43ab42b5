package ur

import "errors"

var (
	ErrUnknownWord   = errors.New("ur: unrecognized bytewords word")
	ErrOddLength     = errors.New("ur: minimal bytewords string must have even length")
	ErrTooShort      = errors.New("ur: decoded payload shorter than checksum")
	ErrChecksum      = errors.New("ur: checksum mismatch")
	ErrBadScheme     = errors.New("ur: missing or wrong ur: scheme")
	ErrBadType       = errors.New("ur: not an envelope UR")
)
