package tournament

import (
	"sync"

	"github.com/mmynk/catchboard/internal/auth"
)

// Screen identifies which top-level screen is visible.
type Screen int

const (
	ScreenLogin Screen = iota
	ScreenTournament
)

func (s Screen) String() string {
	switch s {
	case ScreenLogin:
		return "login"
	case ScreenTournament:
		return "tournament"
	default:
		return "unknown"
	}
}

// View switches screen visibility.
type View interface {
	// ShowLogin shows the login screen and hides the tournament screen.
	ShowLogin()
	// ShowTournament shows the tournament screen and hides the login screen.
	ShowTournament()
}

// ScreenState is a View that remembers the visible screen.
type ScreenState struct {
	mu      sync.Mutex
	current Screen
}

func (s *ScreenState) ShowLogin() {
	s.mu.Lock()
	s.current = ScreenLogin
	s.mu.Unlock()
}

func (s *ScreenState) ShowTournament() {
	s.mu.Lock()
	s.current = ScreenTournament
	s.mu.Unlock()
}

// Current returns the visible screen.
func (s *ScreenState) Current() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Gate switches between the login and tournament screens as the auth state changes.
type Gate struct {
	source StateSource
	view   View

	mu  sync.Mutex
	sub *auth.Subscription
}

// NewGate creates a gate. It does nothing until Start is called.
func NewGate(source StateSource, view View) *Gate {
	return &Gate{source: source, view: view}
}

// Start subscribes to auth state changes. Only the first call subscribes.
func (g *Gate) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sub != nil {
		return
	}
	g.sub = g.source.OnStateChange(g.apply)
}

// Stop cancels the subscription.
func (g *Gate) Stop() {
	g.mu.Lock()
	sub := g.sub
	g.mu.Unlock()
	sub.Cancel()
}

func (g *Gate) apply(identity *auth.Identity) {
	if identity != nil {
		g.view.ShowTournament()
		return
	}
	g.view.ShowLogin()
}
