package compress

import "errors"

var (
	ErrCannotCompressElided = errors.New("compress: cannot compress an elided envelope")
	ErrNotCompressed        = errors.New("compress: subject is not compressed")
	ErrCorrupt              = errors.New("compress: compressed data is corrupt")
	ErrInvalidDigest        = errors.New("compress: decompressed content does not match its digest")
)
