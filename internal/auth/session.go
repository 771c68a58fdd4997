package auth

import (
	"context"
	"sync"
)

// Identity is the signed-in user as reported by a Session.
type Identity struct {
	UserID string
	Email  string
}

// StateListener receives auth state notifications. A nil identity means signed out.
type StateListener func(*Identity)

// Subscription is the handle returned by Session.OnStateChange.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// NewSubscription returns a handle that runs cancel once, on the first Cancel.
func NewSubscription(cancel func()) *Subscription {
	return &Subscription{cancel: cancel}
}

// Cancel stops further notifications. It is safe to call more than once.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}

// Session holds one browser's authentication state: the current identity and its
// token. It notifies subscribers on every state change.
type Session struct {
	authenticator Authenticator
	jwtManager    *JWTManager

	mu        sync.Mutex
	identity  *Identity
	token     string
	listeners map[int]StateListener
	nextID    int
}

// NewSession creates a signed-out session.
func NewSession(authenticator Authenticator, jwtManager *JWTManager) *Session {
	return &Session{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		listeners:     make(map[int]StateListener),
	}
}

// Restore signs the session in from a previously issued token. An empty or invalid
// token leaves the session signed out and returns the validation error, if any.
func (s *Session) Restore(token string) error {
	if token == "" {
		return ErrMissingToken
	}

	claims, err := s.jwtManager.Validate(token)
	if err != nil {
		return err
	}

	s.setState(&Identity{UserID: claims.UserID, Email: claims.Email}, token)
	return nil
}

// OnStateChange registers fn for auth state notifications. fn is called right away
// with the current state and then after every change, until the subscription is
// cancelled.
func (s *Session) OnStateChange(fn StateListener) *Subscription {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	current := s.identity
	s.mu.Unlock()

	fn(current)

	return NewSubscription(func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	})
}

// CreateCredential registers a new credential and signs the session in with it.
func (s *Session) CreateCredential(ctx context.Context, email, password string) error {
	user, err := s.authenticator.Register(ctx, email, password)
	if err != nil {
		return err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return err
	}

	s.setState(&Identity{UserID: user.ID, Email: user.Email}, token)
	return nil
}

// SignIn exchanges credentials for a session.
func (s *Session) SignIn(ctx context.Context, email, password string) error {
	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return err
	}

	s.setState(&Identity{UserID: user.ID, Email: user.Email}, token)
	return nil
}

// SignOut clears the session.
func (s *Session) SignOut() {
	s.setState(nil, "")
}

// Identity returns the current identity, or nil when signed out.
func (s *Session) Identity() *Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// Token returns the current session token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) setState(identity *Identity, token string) {
	s.mu.Lock()
	s.identity = identity
	s.token = token
	listeners := make([]StateListener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(identity)
	}
}
