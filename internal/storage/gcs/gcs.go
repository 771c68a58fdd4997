// Package gcs implements storage.ObjectStore on a Google Cloud Storage bucket.
package gcs

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	catchstorage "github.com/mmynk/catchboard/internal/storage"
)

var _ catchstorage.ObjectStore = (*BucketStore)(nil)

// BucketStore stores objects in one bucket.
type BucketStore struct {
	client *storage.Client
	bucket string
}

// New creates a BucketStore. credentialsFile may be empty to use application
// default credentials.
func New(ctx context.Context, bucket, credentialsFile string) (*BucketStore, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs: bucket name is required")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs: failed to create client: %w", err)
	}

	return &BucketStore{client: client, bucket: bucket}, nil
}

// Upload writes data to key.
func (s *BucketStore) Upload(ctx context.Context, key, contentType string, data []byte) error {
	writer := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("gcs: failed to write object: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("gcs: failed to close writer: %w", err)
	}

	return nil
}

// DownloadURL confirms the object exists and returns its public URL.
func (s *BucketStore) DownloadURL(ctx context.Context, key string) (string, error) {
	attrs, err := s.client.Bucket(s.bucket).Object(key).Attrs(ctx)
	if err != nil {
		return "", fmt.Errorf("gcs: failed to get object attrs: %w", err)
	}

	segments := strings.Split(attrs.Name, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, strings.Join(segments, "/")), nil
}

// Close releases the client.
func (s *BucketStore) Close() error {
	return s.client.Close()
}
