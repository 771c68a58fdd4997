package tournament

import (
	"context"
	"errors"
	"sync"

	"github.com/mmynk/catchboard/internal/auth"
	"github.com/mmynk/catchboard/internal/models"
)

var errBackend = errors.New("backend unavailable")

// fakeStore is an in-memory document store. Writes to an existing key replace
// the document in place, like an upsert.
type fakeStore struct {
	mu sync.Mutex

	participants []models.Participant
	fish         []models.FishSubmission

	listParticipantsErr error
	putParticipantErr   error
	listFishErr         error
	putFishErr          error

	listParticipantsCalls int
	putFishCalls          int
}

func newFakeStore(names ...string) *fakeStore {
	s := &fakeStore{}
	for _, name := range names {
		s.participants = append(s.participants, models.Participant{Name: name})
	}
	return s
}

func (s *fakeStore) ListParticipants(ctx context.Context) ([]models.Participant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listParticipantsCalls++
	if s.listParticipantsErr != nil {
		return nil, s.listParticipantsErr
	}
	return append([]models.Participant(nil), s.participants...), nil
}

func (s *fakeStore) PutParticipant(ctx context.Context, p models.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putParticipantErr != nil {
		return s.putParticipantErr
	}
	for i := range s.participants {
		if s.participants[i].Name == p.Name {
			s.participants[i] = p
			return nil
		}
	}
	s.participants = append(s.participants, p)
	return nil
}

func (s *fakeStore) ListFish(ctx context.Context) ([]models.FishSubmission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listFishErr != nil {
		return nil, s.listFishErr
	}
	return append([]models.FishSubmission(nil), s.fish...), nil
}

func (s *fakeStore) PutFish(ctx context.Context, key string, f models.FishSubmission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putFishCalls++
	if s.putFishErr != nil {
		return s.putFishErr
	}
	f.ID = key
	for i := range s.fish {
		if s.fish[i].ID == key {
			s.fish[i] = f
			return nil
		}
	}
	s.fish = append(s.fish, f)
	return nil
}

func (s *fakeStore) Close() error { return nil }

// fakeObjects records uploads.
type fakeObjects struct {
	mu           sync.Mutex
	objects      map[string][]byte
	contentTypes map[string]string
	uploadErr    error
	urlErr       error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

func (o *fakeObjects) Upload(ctx context.Context, key, contentType string, data []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.uploadErr != nil {
		return o.uploadErr
	}
	o.objects[key] = data
	o.contentTypes[key] = contentType
	return nil
}

func (o *fakeObjects) DownloadURL(ctx context.Context, key string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.urlErr != nil {
		return "", o.urlErr
	}
	if _, ok := o.objects[key]; !ok {
		return "", errors.New("object not found")
	}
	return "https://objects.test/" + key, nil
}

func (o *fakeObjects) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.objects)
}

// fakeCredentials records calls.
type fakeCredentials struct {
	createErr error
	signInErr error

	created   []string
	signedIn  []string
	signedOut bool
}

func (c *fakeCredentials) CreateCredential(ctx context.Context, email, password string) error {
	if c.createErr != nil {
		return c.createErr
	}
	c.created = append(c.created, email)
	return nil
}

func (c *fakeCredentials) SignIn(ctx context.Context, email, password string) error {
	if c.signInErr != nil {
		return c.signInErr
	}
	c.signedIn = append(c.signedIn, email)
	return nil
}

func (c *fakeCredentials) SignOut() {
	c.signedOut = true
}

// fakeSource lets tests drive auth state transitions.
type fakeSource struct {
	current       *auth.Identity
	listeners     map[int]auth.StateListener
	next          int
	subscriptions int
}

func newFakeSource(current *auth.Identity) *fakeSource {
	return &fakeSource{current: current, listeners: make(map[int]auth.StateListener)}
}

func (s *fakeSource) OnStateChange(fn auth.StateListener) *auth.Subscription {
	s.subscriptions++
	id := s.next
	s.next++
	s.listeners[id] = fn
	fn(s.current)
	return auth.NewSubscription(func() { delete(s.listeners, id) })
}

func (s *fakeSource) emit(identity *auth.Identity) {
	s.current = identity
	for _, fn := range s.listeners {
		fn(identity)
	}
}

// countingRecorder records outcomes by name.
type countingRecorder struct {
	mu       sync.Mutex
	counts   map[string]int
	persists int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{counts: make(map[string]int)}
}

func (r *countingRecorder) inc(key string) {
	r.mu.Lock()
	r.counts[key]++
	r.mu.Unlock()
}

func (r *countingRecorder) RecordSubmission(outcome string)     { r.inc("submission:" + outcome) }
func (r *countingRecorder) RecordValidationFailure(rule string) { r.inc("rule:" + rule) }
func (r *countingRecorder) RecordRegistration(outcome string)   { r.inc("registration:" + outcome) }
func (r *countingRecorder) RecordSignIn(outcome string)         { r.inc("signin:" + outcome) }
func (r *countingRecorder) RecordTableRefresh(outcome string)   { r.inc("refresh:" + outcome) }
func (r *countingRecorder) ObservePersist(float64) {
	r.mu.Lock()
	r.persists++
	r.mu.Unlock()
}

func (r *countingRecorder) count(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.counts[key]
}
