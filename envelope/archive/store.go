package archive

import (
	"context"
	"errors"

	"github.com/paritytech/bcts-sub004/digest"
)

// ErrNotFound is returned by Get and by any backend operation addressing a
// digest that isn't present.
var ErrNotFound = errors.New("archive: digest not found")

// Store is a content-addressed blob store keyed by digest. Implementations
// must be safe for concurrent use.
type Store interface {
	// Put stores value under its own digest, computed by the caller.
	// Putting the same digest twice is a no-op, not an error -
	// content-addressed storage is naturally idempotent.
	Put(ctx context.Context, d digest.Digest, value []byte) error

	// Get retrieves the value stored under d, or ErrNotFound.
	Get(ctx context.Context, d digest.Digest) ([]byte, error)

	// Has reports whether d is present, without transferring its value.
	Has(ctx context.Context, d digest.Digest) (bool, error)
}

// PutImage stores data under the digest of its own content and returns that
// digest, the usual way a caller populates a Store from an envelope's leaf
// bytes or any other blob it wants to address later.
func PutImage(ctx context.Context, s Store, data []byte) (digest.Digest, error) {
	d := digest.FromImage(data)
	if err := s.Put(ctx, d, data); err != nil {
		return digest.Zero, err
	}
	return d, nil
}
