// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/catchboard/internal/auth"
	"github.com/mmynk/catchboard/internal/models"
	"github.com/mmynk/catchboard/internal/storage"
)

// Ensure SQLiteStore implements storage.Store and auth.UserStorage
var (
	_ storage.Store    = (*SQLiteStore)(nil)
	_ auth.UserStorage = (*SQLiteStore)(nil)
)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps writes serialized and avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ListParticipants returns participants in insertion (rowid) order.
func (s *SQLiteStore) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM participants ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	var participants []models.Participant
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.Name); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}

	return participants, nil
}

// PutParticipant writes a participant keyed by name.
func (s *SQLiteStore) PutParticipant(ctx context.Context, p models.Participant) error {
	if p.Name == "" {
		return fmt.Errorf("failed to put participant: empty name")
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO participants (name) VALUES (?) ON CONFLICT(name) DO UPDATE SET name = excluded.name",
		p.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to put participant: %w", err)
	}

	return nil
}

// ListFish returns all fish submissions in insertion (rowid) order.
func (s *SQLiteStore) ListFish(ctx context.Context) ([]models.FishSubmission, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT key, name, species, inches, image_url, submitted_at FROM fish ORDER BY rowid",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list fish: %w", err)
	}
	defer rows.Close()

	var fish []models.FishSubmission
	for rows.Next() {
		var (
			f           models.FishSubmission
			submittedAt int64
		)
		if err := rows.Scan(&f.ID, &f.Name, &f.Species, &f.Inches, &f.ImageURL, &submittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fish: %w", err)
		}
		f.SubmittedAt = time.UnixMilli(submittedAt)
		fish = append(fish, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fish: %w", err)
	}

	return fish, nil
}

// PutFish upserts a fish submission under key.
func (s *SQLiteStore) PutFish(ctx context.Context, key string, f models.FishSubmission) error {
	if key == "" {
		return fmt.Errorf("failed to put fish: empty key")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO fish (key, name, species, inches, image_url, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			name = excluded.name,
			species = excluded.species,
			inches = excluded.inches,
			image_url = excluded.image_url,
			submitted_at = excluded.submitted_at
	`,
		key, f.Name, f.Species, f.Inches, f.ImageURL, f.SubmittedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("failed to put fish: %w", err)
	}

	return nil
}
