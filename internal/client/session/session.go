// Package session tracks who is signed in to the terminal client. It owns the
// login, signup and logout flows and reacts when the backend rejects the
// stored token.
package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/atinyakov/taletrail/internal/client/api"
	"github.com/atinyakov/taletrail/internal/models"
)

// State is the lifecycle position of a Session.
type State int

const (
	// Initializing lasts until Init has resolved the persisted token.
	Initializing State = iota
	Unauthenticated
	Authenticated
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	}
	return "unknown"
}

// Tokens is the token store as seen by the session.
type Tokens interface {
	Token() string
	SetToken(ctx context.Context, token string) error
	SetRefreshToken(ctx context.Context, token string) error
	Remove(ctx context.Context) error
}

// Session is safe for concurrent use. Its lock is never held while a
// request is in flight.
type Session struct {
	client   *api.Client
	tokens   Tokens
	notifier Notifier
	nav      Navigator
	log      *zap.Logger

	mu    sync.RWMutex
	state State
	user  *models.User
}

// Option configures a Session.
type Option func(*Session)

func WithNotifier(n Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

func WithNavigator(n Navigator) Option {
	return func(s *Session) { s.nav = n }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.log = l }
}

// New creates a session in the Initializing state and installs its
// expired-session handler on client.
func New(client *api.Client, tokens Tokens, opts ...Option) *Session {
	s := &Session{
		client:   client,
		tokens:   tokens,
		notifier: discardNotifier{},
		nav:      discardNavigator{},
		log:      zap.NewNop(),
		state:    Initializing,
	}
	for _, opt := range opts {
		opt(s)
	}
	client.OnSessionExpired(s.expire)
	return s
}

// Init resolves the persisted token into a user. Any failure leaves the
// session Unauthenticated with the tokens removed; the error is returned
// for logging only.
func (s *Session) Init(ctx context.Context) error {
	if s.tokens.Token() == "" {
		s.set(Unauthenticated, nil)
		return nil
	}

	user, err := api.Unwrap(s.client.MyProfile(ctx))
	if err != nil {
		s.log.Warn("failed to restore session", zap.Error(err))
		if rmErr := s.tokens.Remove(ctx); rmErr != nil {
			s.log.Warn("failed to remove tokens", zap.Error(rmErr))
		}
		s.set(Unauthenticated, nil)
		return err
	}

	s.set(Authenticated, &user)
	return nil
}

// Login signs in with email and password.
func (s *Session) Login(ctx context.Context, email, password string) error {
	payload, err := api.Unwrap(s.client.Login(ctx, models.LoginRequest{Email: email, Password: password}))
	if err != nil {
		s.notifier.Notify(Notification{Title: "Login failed", Description: err.Error(), Variant: Destructive})
		return err
	}
	s.establish(ctx, payload)

	name := payload.User.FullName
	if name == "" {
		name = payload.User.Username
	}
	s.notifier.Notify(Notification{Title: "Welcome back!", Description: "Good to see you again, " + name})
	return nil
}

// Signup creates an account and signs in with it.
func (s *Session) Signup(ctx context.Context, req models.SignupRequest) error {
	payload, err := api.Unwrap(s.client.Signup(ctx, req))
	if err != nil {
		s.notifier.Notify(Notification{Title: "Signup failed", Description: err.Error(), Variant: Destructive})
		return err
	}
	s.establish(ctx, payload)

	s.notifier.Notify(Notification{Title: "Welcome to TaleTrail!", Description: "Your account has been created."})
	return nil
}

func (s *Session) establish(ctx context.Context, payload models.AuthPayload) {
	var errs []error
	if err := s.tokens.SetToken(ctx, payload.AccessToken); err != nil {
		errs = append(errs, err)
	}
	if payload.RefreshToken != "" {
		if err := s.tokens.SetRefreshToken(ctx, payload.RefreshToken); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		// the token is in memory, only persistence failed
		s.log.Warn("failed to persist tokens", zap.Error(err))
	}

	user := payload.User
	s.set(Authenticated, &user)
}

// Logout ends the session locally. It works from any state.
func (s *Session) Logout(ctx context.Context) error {
	err := s.tokens.Remove(ctx)
	if err != nil {
		s.log.Warn("failed to remove tokens", zap.Error(err))
	}
	s.set(Unauthenticated, nil)
	s.notifier.Notify(Notification{Title: "Signed out", Description: "See you next time."})
	return err
}

// UpdateUser merges patch into the current user. It does nothing when no
// one is signed in.
func (s *Session) UpdateUser(patch models.UserPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return
	}
	patch.Apply(s.user)
}

// expire runs for every 401 response. Only the transition out of
// Authenticated redirects, so a burst of 401s yields one redirect.
func (s *Session) expire(ctx context.Context) {
	if err := s.tokens.Remove(ctx); err != nil {
		s.log.Warn("failed to remove tokens", zap.Error(err))
	}

	s.mu.Lock()
	was := s.state
	s.state = Unauthenticated
	s.user = nil
	s.mu.Unlock()

	if was == Authenticated {
		s.log.Info("session expired")
		s.nav.RedirectToLogin()
	}
}

func (s *Session) set(state State, user *models.User) {
	s.mu.Lock()
	s.state = state
	s.user = user
	s.mu.Unlock()
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns a copy of the signed-in user.
func (s *Session) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Session) IsAuthenticated() bool { return s.State() == Authenticated }

func (s *Session) IsLoading() bool { return s.State() == Initializing }
