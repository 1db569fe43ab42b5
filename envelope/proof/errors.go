package proof

import "errors"

var (
	ErrRootMismatch   = errors.New("proof: envelope digest does not match claimed root")
	ErrTargetNotFound = errors.New("proof: target digest not present in proof envelope")
	ErrNoProof        = errors.New("proof: target digest has no path in the envelope")
)
