// Package blob provides a local-directory implementation of storage.ObjectStore.
package blob

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mmynk/catchboard/internal/storage"
)

var _ storage.ObjectStore = (*FileStore)(nil)

// FileStore keeps objects as files under a root directory. URLs point at
// baseURL, where Handler is expected to be mounted.
type FileStore struct {
	root    string
	baseURL string
}

// New creates a FileStore rooted at dir, creating it when missing.
func New(dir, baseURL string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create object directory: %w", err)
	}
	return &FileStore{
		root:    dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload writes data to the file for key. The content type is not persisted;
// Handler sniffs it when serving.
func (s *FileStore) Upload(ctx context.Context, key, contentType string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0644); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	return nil
}

// DownloadURL returns the URL under which Handler serves key. The object must exist.
func (s *FileStore) DownloadURL(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("failed to stat object: %w", err)
	}

	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.baseURL + "/" + strings.Join(segments, "/"), nil
}

// Handler serves stored objects. Mount it with the base URL prefix stripped.
func (s *FileStore) Handler() http.Handler {
	return http.FileServer(http.Dir(s.root))
}

func (s *FileStore) path(key string) (string, error) {
	clean := path.Clean("/" + key)
	if key == "" || clean == "/" || clean != "/"+key {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}
