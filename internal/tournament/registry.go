package tournament

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/catchboard/internal/metrics"
	"github.com/mmynk/catchboard/internal/models"
)

// Registry fetches and writes participants and handles sign-in.
type Registry struct {
	participants ParticipantStore
	credentials  Credentials
	recorder     Recorder
}

// NewRegistry creates a registry. recorder may be nil.
func NewRegistry(participants ParticipantStore, credentials Credentials, recorder Recorder) *Registry {
	return &Registry{
		participants: participants,
		credentials:  credentials,
		recorder:     orNop(recorder),
	}
}

// ListParticipants returns every participant name in the store's natural order.
func (r *Registry) ListParticipants(ctx context.Context) ([]string, error) {
	return participantNames(ctx, r.participants)
}

// RegisterParticipant creates a credential for email and, once that succeeds,
// writes the participant document keyed by name.
//
// Credential errors are returned unchanged so their message can be shown as is.
// A failed participant write is logged and not returned: the credential already
// exists and stays, and the participant record is missing.
func (r *Registry) RegisterParticipant(ctx context.Context, name, email, password string) error {
	slog.Info("RegisterParticipant request received", "name", name, "email", email)

	if err := r.credentials.CreateCredential(ctx, email, password); err != nil {
		slog.Warn("Credential creation failed", "email", email, "error", err)
		r.recorder.RecordRegistration(metrics.OutcomeRejected)
		return err
	}

	if err := r.participants.PutParticipant(ctx, models.Participant{Name: name}); err != nil {
		slog.Error("Participant write failed after credential creation",
			"name", name,
			"email", email,
			"error", err,
		)
		r.recorder.RecordRegistration(metrics.OutcomeError)
		return nil
	}

	r.recorder.RecordRegistration(metrics.OutcomeSuccess)
	slog.Info("Participant registered", "name", name, "email", email)
	return nil
}

// SignIn exchanges credentials for a session. Participant documents are not touched.
func (r *Registry) SignIn(ctx context.Context, email, password string) error {
	slog.Info("SignIn request received", "email", email)

	if err := r.credentials.SignIn(ctx, email, password); err != nil {
		slog.Warn("SignIn failed", "email", email, "error", err)
		r.recorder.RecordSignIn(metrics.OutcomeRejected)
		return err
	}

	r.recorder.RecordSignIn(metrics.OutcomeSuccess)
	slog.Info("SignIn successful", "email", email)
	return nil
}

// SignOut ends the session.
func (r *Registry) SignOut() {
	r.credentials.SignOut()
}

// SeedRoster writes a participant document for each configured name.
func SeedRoster(ctx context.Context, participants ParticipantStore, names []string) error {
	for _, name := range names {
		if err := participants.PutParticipant(ctx, models.Participant{Name: name}); err != nil {
			return fmt.Errorf("failed to seed participant %q: %w", name, err)
		}
	}
	if len(names) > 0 {
		slog.Info("Roster seeded", "count", len(names))
	}
	return nil
}

func participantNames(ctx context.Context, participants ParticipantLister) ([]string, error) {
	list, err := participants.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(list))
	for _, p := range list {
		names = append(names, p.Name)
	}
	return names, nil
}
