package tournament

import (
	"context"

	"github.com/mmynk/catchboard/internal/auth"
	"github.com/mmynk/catchboard/internal/models"
)

// ParticipantLister enumerates the participants collection.
type ParticipantLister interface {
	ListParticipants(ctx context.Context) ([]models.Participant, error)
}

// ParticipantStore reads and writes participants.
type ParticipantStore interface {
	ParticipantLister
	PutParticipant(ctx context.Context, p models.Participant) error
}

// FishLister enumerates the fish collection.
type FishLister interface {
	ListFish(ctx context.Context) ([]models.FishSubmission, error)
}

// FishWriter writes fish submissions by key.
type FishWriter interface {
	PutFish(ctx context.Context, key string, f models.FishSubmission) error
}

// Credentials is the per-browser authentication collaborator. *auth.Session
// implements it.
type Credentials interface {
	CreateCredential(ctx context.Context, email, password string) error
	SignIn(ctx context.Context, email, password string) error
	SignOut()
}

// StateSource delivers auth state notifications. *auth.Session implements it.
type StateSource interface {
	OnStateChange(fn auth.StateListener) *auth.Subscription
}

// Recorder receives operation outcomes. *metrics.TournamentMetrics implements it.
type Recorder interface {
	RecordSubmission(outcome string)
	RecordValidationFailure(rule string)
	RecordRegistration(outcome string)
	RecordSignIn(outcome string)
	RecordTableRefresh(outcome string)
	ObservePersist(seconds float64)
}

type nopRecorder struct{}

func (nopRecorder) RecordSubmission(string)        {}
func (nopRecorder) RecordValidationFailure(string) {}
func (nopRecorder) RecordRegistration(string)      {}
func (nopRecorder) RecordSignIn(string)            {}
func (nopRecorder) RecordTableRefresh(string)      {}
func (nopRecorder) ObservePersist(float64)         {}

func orNop(r Recorder) Recorder {
	if r == nil {
		return nopRecorder{}
	}
	return r
}
