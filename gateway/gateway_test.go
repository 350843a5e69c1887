package gateway_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onepay-ir/onepay-client/gateway"
)

func TestDoAttachesHeaders(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := gateway.New(srv.URL)
	var out struct {
		OK bool `json:"ok"`
	}
	err := client.Post(context.Background(), "/auth/login", map[string]string{"mobile": "0912"}, "token-123", &out)
	require.NoError(t, err)
	require.True(t, out.OK)

	require.Equal(t, "Bearer token-123", got.Header.Get("Authorization"))
	require.Equal(t, "application/json", got.Header.Get("Content-Type"))
	require.Equal(t, "no-store", got.Header.Get("Cache-Control"))
	require.Equal(t, "/auth/login", got.URL.Path)
}

func TestDoAnonymousOmitsBearer(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	var out []struct{}
	err := gateway.New(srv.URL).Get(context.Background(), "/projects", "", &out)
	require.NoError(t, err)
	require.Empty(t, auth)
}

func TestDoSurfacesServerDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"detail":"Mobile already registered"}`))
	}))
	defer srv.Close()

	err := gateway.New(srv.URL).Post(context.Background(), "/auth/register", map[string]string{}, "", nil)
	require.Error(t, err)

	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusConflict, apiErr.StatusCode)
	require.Equal(t, "Mobile already registered", apiErr.Detail)
	require.Equal(t, "Mobile already registered", apiErr.Error())
	require.JSONEq(t, `{"detail":"Mobile already registered"}`, apiErr.Body)
}

func TestDoPlainTextErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	err := gateway.New(srv.URL).Get(context.Background(), "/projects", "", nil)

	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Empty(t, apiErr.Detail)
	require.Equal(t, "upstream exploded", apiErr.Error())
}

func TestDoEmptyErrorBodyFallsBackToStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := gateway.New(srv.URL).Get(context.Background(), "/projects", "", nil)

	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "HTTP 500", apiErr.Error())
}

func TestDoDecodeFailureIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	var out struct{}
	err := gateway.New(srv.URL).Get(context.Background(), "/auth/me", "tok", &out)

	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Contains(t, apiErr.Detail, "unexpected response shape")
}

func TestDoTransportFailureIsNotAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	err := gateway.New(srv.URL).Get(context.Background(), "/projects", "", nil)
	require.Error(t, err)

	var apiErr *gateway.APIError
	require.False(t, errors.As(err, &apiErr))

	// The transport error stays reachable through the wrapping.
	var urlErr *url.Error
	require.ErrorAs(t, err, &urlErr)
}
