package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/onepay-ir/onepay-client/gateway"
	"github.com/onepay-ir/onepay-client/identity"
	"github.com/onepay-ir/onepay-client/session"
	"github.com/onepay-ir/onepay-client/session/storefakes"
)

const (
	testToken    = "token-abc"
	testMobile   = "09120000000"
	testPassword = "validpass"
)

var testProfile = identity.Profile{
	ID:        1,
	FullName:  "Demo Buyer",
	Mobile:    testMobile,
	CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
}

// fakeIdentity is a scriptable identity service. MeCalls counts validation
// calls so tests can assert when revalidation happened.
type fakeIdentity struct {
	LoginToken  *identity.Token
	LoginErr    error
	RegisterErr error
	MeProfile   *identity.Profile
	MeErr       error
	MeCalls     int
}

func (f *fakeIdentity) Login(ctx context.Context, mobile, password string) (*identity.Token, error) {
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return f.LoginToken, nil
}

func (f *fakeIdentity) Register(ctx context.Context, fullName, mobile, password, email string) (*identity.Token, error) {
	if f.RegisterErr != nil {
		return nil, f.RegisterErr
	}
	return f.LoginToken, nil
}

func (f *fakeIdentity) Me(ctx context.Context, token string) (*identity.Profile, error) {
	f.MeCalls++
	if f.MeErr != nil {
		return nil, f.MeErr
	}
	return f.MeProfile, nil
}

type fixture struct {
	ids     *fakeIdentity
	store   *storefakes.FakeStore
	manager *session.Manager
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ids := &fakeIdentity{
		LoginToken: &identity.Token{AccessToken: testToken, User: testProfile},
		MeProfile:  &testProfile,
	}
	store := storefakes.NewFakeStore()
	manager, err := session.NewManager(ids, store)
	require.NoError(t, err)
	return &fixture{ids: ids, store: store, manager: manager}
}

func TestNewManagerRequiresDependencies(t *testing.T) {
	_, err := session.NewManager(nil, storefakes.NewFakeStore())
	require.Error(t, err)
	_, err = session.NewManager(&fakeIdentity{}, nil)
	require.Error(t, err)
}

func TestCurrentBeforeInitialize(t *testing.T) {
	f := setup(t)

	require.Equal(t, session.StatusUninitialized, f.manager.Session().Status)
	_, err := f.manager.Current()
	require.ErrorIs(t, err, session.ErrNotInitialized)
}

func TestInitializeWithoutStoredCredentials(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.manager.Initialize(context.Background()))

	sess := f.manager.Session()
	require.Equal(t, session.StatusAnonymous, sess.Status)
	require.Empty(t, sess.Token)
	require.Nil(t, sess.User)
	require.Zero(t, f.ids.MeCalls, "no validation call without a stored token")
}

func TestInitializeRevalidatesStoredToken(t *testing.T) {
	f := setup(t)
	stale := testProfile
	stale.FullName = "Old Name"
	require.NoError(t, f.store.Save(session.Credentials{Token: testToken, User: stale}))

	require.NoError(t, f.manager.Initialize(context.Background()))

	sess := f.manager.Session()
	require.Equal(t, session.StatusAuthenticated, sess.Status)
	require.Equal(t, testToken, sess.Token)
	require.Equal(t, "Demo Buyer", sess.User.FullName, "fresh profile replaces the cached one")
	require.Equal(t, 1, f.ids.MeCalls)

	stored := f.store.Stored()
	require.NotNil(t, stored)
	require.Equal(t, "Demo Buyer", stored.User.FullName, "fresh profile is persisted")
}

func TestInitializeFailsClosed(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.store.Save(session.Credentials{Token: "revoked", User: testProfile}))
	f.ids.MeErr = &gateway.APIError{StatusCode: 401, Detail: "Could not validate credentials"}

	// Validation failure is an implicit logout, never an error.
	require.NoError(t, f.manager.Initialize(context.Background()))

	sess := f.manager.Session()
	require.Equal(t, session.StatusAnonymous, sess.Status)
	require.Empty(t, sess.Token)
	require.Nil(t, sess.User)
	require.Nil(t, f.store.Stored(), "persisted credentials are erased")
}

func TestInitializeUnreadableStoreFailsClosed(t *testing.T) {
	f := setup(t)
	f.store.LoadErr = errors.New("disk on fire")

	require.NoError(t, f.manager.Initialize(context.Background()))
	require.Equal(t, session.StatusAnonymous, f.manager.Session().Status)
}

func TestLoginEstablishesAndPersistsSession(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.manager.Initialize(context.Background()))

	profile, err := f.manager.Login(context.Background(), testMobile, testPassword)
	require.NoError(t, err)
	require.Equal(t, testProfile, *profile)

	sess := f.manager.Session()
	require.Equal(t, session.StatusAuthenticated, sess.Status)
	require.Equal(t, testToken, sess.Token)

	stored := f.store.Stored()
	require.NotNil(t, stored)
	require.Equal(t, testToken, stored.Token)
	require.Equal(t, testProfile, stored.User)
}

func TestLoginFailureLeavesStateUnchanged(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.manager.Initialize(context.Background()))
	f.ids.LoginErr = &gateway.APIError{StatusCode: 401, Detail: "Invalid mobile or password"}

	_, err := f.manager.Login(context.Background(), testMobile, "wrong")
	require.Error(t, err)

	var apiErr *gateway.APIError
	require.ErrorAs(t, err, &apiErr, "raw error surfaces for classification")
	require.Equal(t, session.StatusAnonymous, f.manager.Session().Status)
	require.Nil(t, f.store.Stored())
}

func TestLoginPersistFailureLeavesStateUnchanged(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.manager.Initialize(context.Background()))
	f.store.SaveErr = errors.New("read-only filesystem")

	_, err := f.manager.Login(context.Background(), testMobile, testPassword)
	require.Error(t, err)
	require.Equal(t, session.StatusAnonymous, f.manager.Session().Status)
}

func TestRegisterEstablishesSession(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.manager.Initialize(context.Background()))

	profile, err := f.manager.Register(context.Background(), "Demo Buyer", testMobile, testPassword, "")
	require.NoError(t, err)
	require.Equal(t, testProfile, *profile)
	require.Equal(t, session.StatusAuthenticated, f.manager.Session().Status)
}

func TestRegisterDuplicateMobileLeavesNoSession(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.manager.Initialize(context.Background()))
	f.ids.RegisterErr = &gateway.APIError{StatusCode: 409, Detail: "Mobile already registered"}

	_, err := f.manager.Register(context.Background(), "Demo Buyer", testMobile, testPassword, "")
	require.Error(t, err)
	require.Equal(t, session.StatusAnonymous, f.manager.Session().Status)
	require.Nil(t, f.store.Stored())
}

func TestLogoutClearsEverything(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.manager.Initialize(context.Background()))
	_, err := f.manager.Login(context.Background(), testMobile, testPassword)
	require.NoError(t, err)

	require.NoError(t, f.manager.Logout())

	sess := f.manager.Session()
	require.Equal(t, session.StatusAnonymous, sess.Status)
	require.Empty(t, sess.Token)
	require.Nil(t, sess.User)
	require.Nil(t, f.store.Stored())

	_, err = f.manager.Current()
	require.ErrorIs(t, err, session.ErrNotAuthenticated)
}

func TestLoginThenReloadRoundTrip(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.manager.Initialize(context.Background()))
	_, err := f.manager.Login(context.Background(), testMobile, testPassword)
	require.NoError(t, err)

	// A "reload": a fresh manager over the same store and a still-valid token.
	reloaded, err := session.NewManager(f.ids, f.store)
	require.NoError(t, err)
	require.NoError(t, reloaded.Initialize(context.Background()))

	before := f.manager.Session()
	after := reloaded.Session()
	require.Equal(t, before.Status, after.Status)
	require.Equal(t, before.Token, after.Token)
	require.Equal(t, *before.User, *after.User)
}
