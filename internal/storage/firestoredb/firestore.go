// Package firestoredb implements storage.Store and auth.UserStorage on Cloud Firestore.
package firestoredb

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mmynk/catchboard/internal/auth"
	"github.com/mmynk/catchboard/internal/models"
	"github.com/mmynk/catchboard/internal/storage"
)

// Collection names.
const (
	ParticipantsCollection = "participants"
	FishCollection         = "fish"
	UsersCollection        = "users"
)

var (
	_ storage.Store    = (*Store)(nil)
	_ auth.UserStorage = (*Store)(nil)
)

// Store is a Firestore-backed document store.
type Store struct {
	client *firestore.Client
}

// New connects to the project's default database. credentialsFile may be empty
// to use application default credentials.
func New(ctx context.Context, projectID, credentialsFile string) (*Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("firestore: project ID is required")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: failed to create client: %w", err)
	}

	return &Store{client: client}, nil
}

// Close releases the client.
func (s *Store) Close() error {
	return s.client.Close()
}

// ListParticipants returns every participant, ordered by document ID.
func (s *Store) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	docs, err := s.client.Collection(ParticipantsCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	participants := make([]models.Participant, 0, len(docs))
	for _, doc := range docs {
		var p models.Participant
		if err := doc.DataTo(&p); err != nil {
			return nil, fmt.Errorf("failed to decode participant %s: %w", doc.Ref.ID, err)
		}
		participants = append(participants, p)
	}

	return participants, nil
}

// PutParticipant writes the participant under its name.
func (s *Store) PutParticipant(ctx context.Context, p models.Participant) error {
	if p.Name == "" {
		return fmt.Errorf("failed to put participant: empty name")
	}

	if _, err := s.client.Collection(ParticipantsCollection).Doc(p.Name).Set(ctx, p); err != nil {
		return fmt.Errorf("failed to put participant: %w", err)
	}
	return nil
}

// ListFish returns every fish submission, ordered by document ID.
func (s *Store) ListFish(ctx context.Context) ([]models.FishSubmission, error) {
	docs, err := s.client.Collection(FishCollection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list fish: %w", err)
	}

	fish := make([]models.FishSubmission, 0, len(docs))
	for _, doc := range docs {
		var f models.FishSubmission
		if err := doc.DataTo(&f); err != nil {
			return nil, fmt.Errorf("failed to decode fish %s: %w", doc.Ref.ID, err)
		}
		f.ID = doc.Ref.ID
		fish = append(fish, f)
	}

	return fish, nil
}

// PutFish overwrites the document at key.
func (s *Store) PutFish(ctx context.Context, key string, f models.FishSubmission) error {
	if key == "" {
		return fmt.Errorf("failed to put fish: empty key")
	}

	if _, err := s.client.Collection(FishCollection).Doc(key).Set(ctx, f); err != nil {
		return fmt.Errorf("failed to put fish: %w", err)
	}
	return nil
}

// CreateUser stores a user under its ID. Email uniqueness is checked by the
// authenticator before the write, so two racing registrations for the same email
// can both succeed here.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if _, err := s.client.Collection(UsersCollection).Doc(user.ID).Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail returns the user with the given email, or nil when there is none.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	docs, err := s.client.Collection(UsersCollection).
		Where("email", "==", email).
		Limit(1).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if len(docs) == 0 {
		return nil, nil
	}

	user := &models.User{}
	if err := docs[0].DataTo(user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return user, nil
}

// GetUserByID returns the user with the given ID, or nil when there is none.
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	doc, err := s.client.Collection(UsersCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	user := &models.User{}
	if err := doc.DataTo(user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	return user, nil
}
