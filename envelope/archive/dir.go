package archive

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/paritytech/bcts-sub004/digest"
	"github.com/paritytech/bcts-sub004/internal/telemetry"
)

// Dir is a Store backed by a local directory, one file per digest named by
// its hex encoding.
type Dir struct {
	root string
}

// NewDir creates a Dir rooted at root, creating the directory if it does
// not already exist.
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Dir{root: root}, nil
}

func (d *Dir) path(dg digest.Digest) string {
	return filepath.Join(d.root, dg.Hex())
}

func (d *Dir) Put(ctx context.Context, dg digest.Digest, value []byte) error {
	path := d.path(dg)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	// suffix with a fresh uuid so concurrent Put calls racing on the same
	// digest never clobber each other's temp file before the rename.
	tmp := path + "." + uuid.NewString() + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return err
	}
	telemetry.Log.Debugf("archive.Dir: put %s (%d bytes)", dg.ShortHex(8), len(value))
	return os.Rename(tmp, path)
}

func (d *Dir) Get(ctx context.Context, dg digest.Digest) ([]byte, error) {
	data, err := os.ReadFile(d.path(dg))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

func (d *Dir) Has(ctx context.Context, dg digest.Digest) (bool, error) {
	_, err := os.Stat(d.path(dg))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
