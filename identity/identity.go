// Package identity wraps the platform's identity service endpoints.
package identity

import (
	"context"
	"time"

	"github.com/onepay-ir/onepay-client/gateway"
	"github.com/pkg/errors"
)

// Profile holds the identity attributes of a platform user. Immutable once
// fetched except by re-fetching from the service.
type Profile struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"full_name"`
	Mobile    string    `json:"mobile"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Token is the identity service's response to a successful login or
// registration: an opaque access token plus the authenticated profile.
type Token struct {
	AccessToken string  `json:"access_token"`
	User        Profile `json:"user"`
}

// Service calls the identity endpoints through the shared gateway.
type Service struct {
	api *gateway.Client
}

// New creates an identity Service.
func New(api *gateway.Client) *Service {
	return &Service{api: api}
}

type registerRequest struct {
	FullName string `json:"full_name"`
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

type loginRequest struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// Register creates a new platform account. email may be empty.
func (s *Service) Register(ctx context.Context, fullName, mobile, password, email string) (*Token, error) {
	var tok Token
	payload := registerRequest{FullName: fullName, Mobile: mobile, Password: password, Email: email}
	if err := s.api.Post(ctx, "/auth/register", payload, "", &tok); err != nil {
		return nil, errors.Wrap(err, "[Service.Register] /auth/register")
	}
	return &tok, nil
}

// Login exchanges mobile+password credentials for an access token.
func (s *Service) Login(ctx context.Context, mobile, password string) (*Token, error) {
	var tok Token
	if err := s.api.Post(ctx, "/auth/login", loginRequest{Mobile: mobile, Password: password}, "", &tok); err != nil {
		return nil, errors.Wrap(err, "[Service.Login] /auth/login")
	}
	return &tok, nil
}

// Me fetches the profile the given token authenticates as. This is the
// validation call the session manager issues on startup.
func (s *Service) Me(ctx context.Context, token string) (*Profile, error) {
	var profile Profile
	if err := s.api.Get(ctx, "/auth/me", token, &profile); err != nil {
		return nil, errors.Wrap(err, "[Service.Me] /auth/me")
	}
	return &profile, nil
}
