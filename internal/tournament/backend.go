package tournament

import (
	"time"

	"github.com/mmynk/catchboard/internal/auth"
	"github.com/mmynk/catchboard/internal/storage"
)

// Backend groups the collaborators shared by every request. Controllers built
// from it hold no state beyond one request.
type Backend struct {
	Store         storage.Store
	Objects       storage.ObjectStore
	Authenticator auth.Authenticator
	JWT           *auth.JWTManager

	// Optional.
	Recorder Recorder
	Clock    Clock
	Location *time.Location
}

// NewSession returns a signed-out session bound to the backend's authenticator.
func (b *Backend) NewSession() *auth.Session {
	return auth.NewSession(b.Authenticator, b.JWT)
}

// NewRegistry returns a registry acting on behalf of sess.
func (b *Backend) NewRegistry(sess Credentials) *Registry {
	return NewRegistry(b.Store, sess, b.Recorder)
}

// NewPipeline returns a submission pipeline.
func (b *Backend) NewPipeline() *Pipeline {
	opts := []PipelineOption{WithRecorder(b.Recorder)}
	if b.Clock != nil {
		opts = append(opts, WithClock(b.Clock))
	}
	return NewPipeline(b.Store, b.Store, b.Objects, opts...)
}

// NewTable returns an empty fish table.
func (b *Backend) NewTable() *Table {
	return NewTable(b.Store, b.Location, b.Recorder)
}
