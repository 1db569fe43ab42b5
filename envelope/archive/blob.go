package archive

import (
	"bytes"
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/paritytech/bcts-sub004/digest"
	"github.com/paritytech/bcts-sub004/internal/telemetry"
)

// Blob is a Store backed by an Azure Blob Storage container, one blob per
// digest named by its hex encoding. It is a thin content-addressing layer
// over the Azure SDK client; it does not attempt the teacher's richer
// massif-log blob conventions (tags, etag-conditional writes, paged
// listing) since a content-addressed store has no use for them - a digest
// never needs to be overwritten or conditionally replaced.
type Blob struct {
	client    *azblob.Client
	container string
}

// NewBlob builds a Blob store against containerName using an Azure Storage
// account connection string.
func NewBlob(connectionString, containerName string) (*Blob, error) {
	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, err
	}
	return &Blob{client: client, container: containerName}, nil
}

func (b *Blob) blobName(d digest.Digest) string {
	return d.Hex()
}

func (b *Blob) Put(ctx context.Context, d digest.Digest, value []byte) error {
	if has, err := b.Has(ctx, d); err != nil {
		return err
	} else if has {
		return nil
	}
	_, err := b.client.UploadBuffer(ctx, b.container, b.blobName(d), value, nil)
	if err != nil {
		return err
	}
	telemetry.Log.Debugf("archive.Blob: put %s (%d bytes) to container %s", d.ShortHex(8), len(value), b.container)
	return nil
}

func (b *Blob) Get(ctx context.Context, d digest.Digest) ([]byte, error) {
	downloader, err := b.client.DownloadStream(ctx, b.container, b.blobName(d), nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer downloader.Body.Close()

	var out bytes.Buffer
	if _, err := out.ReadFrom(downloader.Body); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (b *Blob) Has(ctx context.Context, d digest.Digest) (bool, error) {
	blobClient := b.client.ServiceClient().NewContainerClient(b.container).NewBlobClient(b.blobName(d))
	_, err := blobClient.GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
