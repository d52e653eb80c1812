package storage

import (
	"context"
	"io"
)

// AssetStore is the object-store boundary used by the story synchronizer.
// Implementations own the binary payload; callers only hold the opaque id
// returned by Upload.
type AssetStore interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
	Delete(ctx context.Context, assetId string) error
	PreviewURL(assetId string) string
}
