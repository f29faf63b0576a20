package gcs

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
)

const DefaultPublicBaseURL = "https://storage.googleapis.com"

// Bucket uploads objects to one GCS bucket and builds their public URLs.
type Bucket struct {
	client  *storage.Client
	name    string
	baseURL string
}

// NewBucket wraps client for the named bucket. An empty baseURL falls back to
// the public storage.googleapis.com host.
func NewBucket(client *storage.Client, name, baseURL string) *Bucket {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultPublicBaseURL
	}
	return &Bucket{
		client:  client,
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Name returns the bucket name.
func (b *Bucket) Name() string {
	return b.name
}

// Upload writes data to key with the given content type.
func (b *Bucket) Upload(ctx context.Context, key, contentType string, data []byte) error {
	w := b.client.Bucket(b.name).Object(key).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("gcs: write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs: close %s: %w", key, err)
	}
	return nil
}

// URL returns the public URL of key. It does not check that the object exists.
func (b *Bucket) URL(key string) string {
	return fmt.Sprintf("%s/%s/%s", b.baseURL, b.name, strings.TrimLeft(key, "/"))
}
