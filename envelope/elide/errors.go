package elide

import "errors"

var (
	ErrNotElided      = errors.New("elide: envelope is not elided")
	ErrDigestMismatch = errors.New("elide: revealed content does not match the elided digest")
)
