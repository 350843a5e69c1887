package session

import "errors"

var (
	ErrNotAuthenticated = errors.New("no authenticated session")
	ErrNotInitialized   = errors.New("session manager not initialized")
)
