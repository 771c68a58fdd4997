package blob

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_UploadAndServe(t *testing.T) {
	store, err := New(t.TempDir(), "http://localhost:8080/objects/")
	require.NoError(t, err)
	ctx := context.Background()

	key := "fish/Alice Smith-1717250730123"
	data := []byte("\x89PNG\r\n\x1a\nfake image body")
	require.NoError(t, store.Upload(ctx, key, "image/png", data))

	url, err := store.DownloadURL(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/objects/fish/Alice%20Smith-1717250730123", url)

	srv := httptest.NewServer(http.StripPrefix("/objects", store.Handler()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/objects/fish/Alice%20Smith-1717250730123")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, data, body)
}

func TestFileStore_UploadOverwrites(t *testing.T) {
	store, err := New(t.TempDir(), "/objects")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Upload(ctx, "fish/a", "image/png", []byte("first")))
	require.NoError(t, store.Upload(ctx, "fish/a", "image/png", []byte("second")))

	url, err := store.DownloadURL(ctx, "fish/a")
	require.NoError(t, err)
	assert.Equal(t, "/objects/fish/a", url)
}

func TestFileStore_DownloadURL_Missing(t *testing.T) {
	store, err := New(t.TempDir(), "/objects")
	require.NoError(t, err)

	_, err = store.DownloadURL(context.Background(), "fish/missing")
	assert.Error(t, err)
}

func TestFileStore_InvalidKeys(t *testing.T) {
	store, err := New(t.TempDir(), "/objects")
	require.NoError(t, err)

	for _, key := range []string{"", "/", "../escape", "fish/../../escape", "fish//double", "/fish/a"} {
		t.Run(key, func(t *testing.T) {
			assert.Error(t, store.Upload(context.Background(), key, "image/png", []byte("x")))
		})
	}
}

func TestFileStore_CancelledContext(t *testing.T) {
	store, err := New(t.TempDir(), "/objects")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Upload(ctx, "fish/a", "image/png", []byte("x")), context.Canceled)
}
