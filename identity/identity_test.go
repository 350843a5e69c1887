package identity_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onepay-ir/onepay-client/gateway"
	"github.com/onepay-ir/onepay-client/identity"
)

func TestRegisterPayloadShape(t *testing.T) {
	var gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"access_token":"tok","user":{"id":1,"full_name":"New Buyer","mobile":"09121111111"}}`))
	}))
	defer srv.Close()

	svc := identity.New(gateway.New(srv.URL))
	tok, err := svc.Register(context.Background(), "New Buyer", "09121111111", "secretpass", "")
	require.NoError(t, err)
	require.Equal(t, "tok", tok.AccessToken)
	require.Equal(t, "/auth/register", gotPath)
	require.Equal(t, "New Buyer", gotBody["full_name"])
	require.NotContains(t, gotBody, "email", "empty email is omitted")
}

func TestLoginAndMePaths(t *testing.T) {
	var paths []string
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		switch r.URL.Path {
		case "/auth/login":
			_, _ = w.Write([]byte(`{"access_token":"tok","user":{"id":1,"full_name":"Demo Buyer","mobile":"09120000000"}}`))
		case "/auth/me":
			auth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"id":1,"full_name":"Demo Buyer","mobile":"09120000000"}`))
		}
	}))
	defer srv.Close()

	svc := identity.New(gateway.New(srv.URL))
	tok, err := svc.Login(context.Background(), "09120000000", "validpass")
	require.NoError(t, err)

	profile, err := svc.Me(context.Background(), tok.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "Demo Buyer", profile.FullName)
	require.Equal(t, []string{"/auth/login", "/auth/me"}, paths)
	require.Equal(t, "Bearer tok", auth)
}

func TestLoginErrorPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Invalid mobile or password"}`))
	}))
	defer srv.Close()

	_, err := identity.New(gateway.New(srv.URL)).Login(context.Background(), "0912", "bad")
	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "Invalid mobile or password", apiErr.Detail)
}
