package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mmynk/catchboard/internal/auth"
	"github.com/mmynk/catchboard/internal/config"
	"github.com/mmynk/catchboard/internal/storage"
	"github.com/mmynk/catchboard/internal/storage/blob"
	"github.com/mmynk/catchboard/internal/storage/firestoredb"
	"github.com/mmynk/catchboard/internal/storage/gcs"
	"github.com/mmynk/catchboard/internal/storage/sqlite"
)

// backendStore is a document store that also keeps credentials.
type backendStore interface {
	storage.Store
	auth.UserStorage
}

// connection holds the opened backend collaborators.
type connection struct {
	store          backendStore
	objects        storage.ObjectStore
	objectsHandler http.Handler
	authenticator  auth.Authenticator
	jwtManager     *auth.JWTManager
	closers        []func() error
}

func (c *connection) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			slog.Warn("Failed to close backend", "error", err)
		}
	}
}

// openBackend connects to the configured backend kind.
func openBackend(ctx context.Context, settings *config.Settings) (*connection, error) {
	conn := &connection{
		jwtManager: auth.NewJWTManager(settings.Auth.Secret, settings.Auth.TokenDuration),
	}

	switch settings.Backend.Kind {
	case config.BackendLocal:
		local := settings.Backend.Local

		store, err := sqlite.New(local.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		conn.store = store
		conn.closers = append(conn.closers, store.Close)

		objects, err := blob.New(local.ObjectsDir, "/objects")
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to initialize object storage: %w", err)
		}
		conn.objects = objects
		conn.objectsHandler = objects.Handler()

		slog.Info("Storage initialized", "database", local.DBPath, "objects", local.ObjectsDir)

	case config.BackendFirebase:
		fb := settings.Backend.Firebase

		store, err := firestoredb.New(ctx, fb.ProjectID, fb.CredentialsFile)
		if err != nil {
			return nil, err
		}
		conn.store = store
		conn.closers = append(conn.closers, store.Close)

		objects, err := gcs.New(ctx, fb.Bucket, fb.CredentialsFile)
		if err != nil {
			conn.Close()
			return nil, err
		}
		conn.objects = objects
		conn.closers = append(conn.closers, objects.Close)

		slog.Info("Storage initialized", "project", fb.ProjectID, "bucket", fb.Bucket)

	default:
		return nil, fmt.Errorf("unknown backend kind %q", settings.Backend.Kind)
	}

	conn.authenticator = auth.NewPasswordAuthenticator(conn.store)
	return conn, nil
}
