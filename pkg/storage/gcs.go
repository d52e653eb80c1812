package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

var ErrAssetNotFound = errors.New("asset not found")

const uploadTimeout = 2 * time.Minute

// GCSAssetStore stores story images in a single GCS bucket. Object keys are
// generated server-side so an id never collides with a caller-chosen name.
type GCSAssetStore struct {
	client    *storage.Client
	bucket    string
	cdnDomain string
}

func NewGCSAssetStore(ctx context.Context, bucket, cdnDomain string, opts ...option.ClientOption) (*GCSAssetStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("storage: bucket name is required")
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: create client: %w", err)
	}

	return &GCSAssetStore{
		client:    client,
		bucket:    bucket,
		cdnDomain: cdnDomain,
	}, nil
}

func (s *GCSAssetStore) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	assetId := uuid.NewString() + strings.ToLower(path.Ext(filename))

	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(assetId).NewWriter(ctx)
	if ct := contentTypeForKey(assetId); ct != "" {
		w.ContentType = ct
	}
	if _, err := io.Copy(w, file); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("storage: write object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("storage: close writer: %w", err)
	}

	return assetId, nil
}

func (s *GCSAssetStore) Delete(ctx context.Context, assetId string) error {
	err := s.client.Bucket(s.bucket).Object(assetId).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return ErrAssetNotFound
	}
	if err != nil {
		return fmt.Errorf("storage: delete object: %w", err)
	}
	return nil
}

func (s *GCSAssetStore) PreviewURL(assetId string) string {
	if assetId == "" {
		return ""
	}
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, assetId)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, assetId)
}

func contentTypeForKey(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	case ".gif":
		return "image/gif"
	default:
		return ""
	}
}
