package session

import (
	"context"
	"sync"

	"github.com/onepay-ir/onepay-client/identity"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Identity is the slice of the identity service the manager depends on.
type Identity interface {
	Login(ctx context.Context, mobile, password string) (*identity.Token, error)
	Register(ctx context.Context, fullName, mobile, password, email string) (*identity.Token, error)
	Me(ctx context.Context, token string) (*identity.Profile, error)
}

// Manager drives the session state machine. It is the only writer of the
// persisted credential store, and keeps the store and its in-memory state in
// lockstep on every transition.
type Manager struct {
	ids   Identity
	store Store

	mu     sync.RWMutex
	status Status
	token  string
	user   *identity.Profile
}

// NewManager creates a session Manager in the Uninitialized state.
func NewManager(ids Identity, store Store) (*Manager, error) {
	if ids == nil {
		return nil, errors.New("[NewManager] identity service is required")
	}
	if store == nil {
		return nil, errors.New("[NewManager] credential store is required")
	}
	return &Manager{
		ids:    ids,
		store:  store,
		status: StatusUninitialized,
	}, nil
}

// Initialize restores persisted credentials, if any, and revalidates them
// against the identity service. A stale or revoked token is treated as an
// implicit logout: the store is erased and the session becomes Anonymous.
// Validation failure is recovered here, never surfaced as an error.
func (m *Manager) Initialize(ctx context.Context) error {
	creds, err := m.store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("credential store unreadable, starting anonymous")
		m.clear()
		return nil
	}
	if creds == nil || creds.Token == "" {
		m.mu.Lock()
		m.status = StatusAnonymous
		m.mu.Unlock()
		return nil
	}

	// Optimistically adopt the cached credentials while revalidating.
	m.mu.Lock()
	m.status = StatusLoading
	m.token = creds.Token
	cached := creds.User
	m.user = &cached
	m.mu.Unlock()

	profile, err := m.ids.Me(ctx, creds.Token)
	if err != nil {
		// Fail closed: a token the service no longer honours must not leave
		// the user silently "logged in".
		log.Info().Err(err).Msg("stored token failed validation, clearing session")
		m.clear()
		return nil
	}

	if err := m.store.Save(Credentials{Token: creds.Token, User: *profile}); err != nil {
		log.Warn().Err(err).Msg("persisting refreshed profile failed")
	}

	m.mu.Lock()
	m.status = StatusAuthenticated
	m.user = profile
	m.mu.Unlock()
	return nil
}

// Login exchanges credentials for a session. On success the token and profile
// are persisted and adopted atomically; on failure the session state is left
// unchanged and the raw error is surfaced for classification.
func (m *Manager) Login(ctx context.Context, mobile, password string) (*identity.Profile, error) {
	tok, err := m.ids.Login(ctx, mobile, password)
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.Login] login")
	}
	if err := m.adopt(tok); err != nil {
		return nil, err
	}
	profile := tok.User
	return &profile, nil
}

// Register creates an account and establishes a session, with the same
// persistence semantics as Login.
func (m *Manager) Register(ctx context.Context, fullName, mobile, password, email string) (*identity.Profile, error) {
	tok, err := m.ids.Register(ctx, fullName, mobile, password, email)
	if err != nil {
		return nil, errors.Wrap(err, "[Manager.Register] register")
	}
	if err := m.adopt(tok); err != nil {
		return nil, err
	}
	profile := tok.User
	return &profile, nil
}

// Logout clears in-memory and persisted state unconditionally and transitions
// to Anonymous. It never calls the remote service.
func (m *Manager) Logout() error {
	m.clear()
	return nil
}

// Session returns a snapshot of the current state.
func (m *Manager) Session() Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Session{Status: m.status, Token: m.token, User: m.user}
}

// Current returns the authenticated profile. It reports ErrNotInitialized
// before Initialize has settled the state, ErrNotAuthenticated otherwise.
func (m *Manager) Current() (*identity.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.status == StatusUninitialized || m.status == StatusLoading {
		return nil, ErrNotInitialized
	}
	if m.status != StatusAuthenticated || m.user == nil {
		return nil, ErrNotAuthenticated
	}
	return m.user, nil
}

// adopt persists and then applies a fresh token+profile pair. Persisting first
// keeps the "failure leaves state unchanged" contract: a store error aborts the
// transition entirely.
func (m *Manager) adopt(tok *identity.Token) error {
	if err := m.store.Save(Credentials{Token: tok.AccessToken, User: tok.User}); err != nil {
		return errors.Wrap(err, "[Manager.adopt] persist credentials")
	}
	profile := tok.User
	m.mu.Lock()
	m.status = StatusAuthenticated
	m.token = tok.AccessToken
	m.user = &profile
	m.mu.Unlock()
	return nil
}

func (m *Manager) clear() {
	if err := m.store.Clear(); err != nil {
		log.Warn().Err(err).Msg("clearing credential store failed")
	}
	m.mu.Lock()
	m.status = StatusAnonymous
	m.token = ""
	m.user = nil
	m.mu.Unlock()
}
