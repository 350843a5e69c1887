// Package storefakes provides an in-memory credential store for tests.
package storefakes

import (
	"sync"

	"github.com/onepay-ir/onepay-client/session"
)

// FakeStore is an in-memory session.Store. The error fields, when set, are
// returned by the corresponding method to simulate storage failures.
type FakeStore struct {
	mu    sync.Mutex
	creds *session.Credentials

	LoadErr  error
	SaveErr  error
	ClearErr error
}

// NewFakeStore creates an empty FakeStore.
func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (s *FakeStore) Load() (*session.Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.creds == nil {
		return nil, nil
	}
	copied := *s.creds
	return &copied, nil
}

func (s *FakeStore) Save(creds session.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.creds = &creds
	return nil
}

func (s *FakeStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ClearErr != nil {
		return s.ClearErr
	}
	s.creds = nil
	return nil
}

// Stored returns the currently persisted credentials, or nil.
func (s *FakeStore) Stored() *session.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.creds == nil {
		return nil
	}
	copied := *s.creds
	return &copied
}

var _ session.Store = (*FakeStore)(nil)
