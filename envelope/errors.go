package envelope

import "errors"

// Error taxonomy per spec.md §4.13: a flat table of named, wrappable
// sentinels, no exception-style control flow, no partially-decoded state
// leaked on failure.
var (
	ErrInvalidFormat        = errors.New("envelope: invalid format")
	ErrNotLeaf              = errors.New("envelope: not a leaf")
	ErrNotAssertion         = errors.New("envelope: not an assertion")
	ErrNotWrapped           = errors.New("envelope: not wrapped")
	ErrNotKnownValue        = errors.New("envelope: not a known value")
	ErrNotNode              = errors.New("envelope: not a node")
	ErrNonexistentPredicate = errors.New("envelope: predicate not found")
	ErrAmbiguousPredicate   = errors.New("envelope: predicate is ambiguous")
	ErrInvalidAssertion     = errors.New("envelope: value is not a valid assertion envelope")
	ErrEmptyAssertions      = errors.New("envelope: node must carry at least one assertion")
	ErrMissingDigest        = errors.New("envelope: obscured case requires a preserved digest")
	ErrSaltTooShort         = errors.New("envelope: salt length must be at least 8 bytes")
	ErrSaltRangeInvalid     = errors.New("envelope: salt range invalid")
)
