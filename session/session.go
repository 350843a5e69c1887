// Package session owns the client's authenticated identity state: the access
// token and the current user profile, persisted across restarts and validated
// against the identity service on startup.
package session

import (
	"github.com/onepay-ir/onepay-client/identity"
)

// Status is the session lifecycle state. Transitions: Uninitialized -> Loading
// -> {Anonymous, Authenticated}; Authenticated -> Anonymous on logout or when
// restored credentials fail validation.
type Status string

const (
	StatusUninitialized Status = "uninitialized"
	StatusLoading       Status = "loading"
	StatusAnonymous     Status = "anonymous"
	StatusAuthenticated Status = "authenticated"
)

// Session is a point-in-time snapshot of the manager's state. User is non-nil
// iff Status is Authenticated; Token is non-empty iff Status is Authenticated
// or Loading with cached credentials.
type Session struct {
	Status Status
	Token  string
	User   *identity.Profile
}

// Credentials is the persisted session state: the token and the serialized
// profile, always written and cleared together.
type Credentials struct {
	Token string           `json:"token"`
	User  identity.Profile `json:"user"`
}

// Store persists credentials across restarts. Load returns (nil, nil) when no
// credentials are stored. Save replaces the whole object; there is no partial
// update.
type Store interface {
	Load() (*Credentials, error)
	Save(Credentials) error
	Clear() error
}
