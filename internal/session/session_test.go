package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarquez-dev/mercato-storefront/internal/upstream"
	"github.com/dmarquez-dev/mercato-storefront/pkg/config"
	pkgerrors "github.com/dmarquez-dev/mercato-storefront/pkg/errors"
)

var errMissingKey = errors.New("key not found")

type fakeStore struct {
	data     map[string]string
	touched  map[string]time.Duration
	setErr   error
	delCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string]string{}, touched: map[string]time.Duration{}}
}

func (f *fakeStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	return nil
}

func (f *fakeStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := f.data[key]
	if !ok {
		return "", errMissingKey
	}
	return value, nil
}

func (f *fakeStore) Touch(ctx context.Context, key string, ttl time.Duration) error {
	f.touched[key] = ttl
	return nil
}

func (f *fakeStore) Del(ctx context.Context, keys ...string) error {
	f.delCalls++
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeStore) SessionKey(sessionID string) string {
	return "mercato:session:" + sessionID
}

func isMissing(err error) bool { return errors.Is(err, errMissingKey) }

func testConfig() config.SessionConfig {
	return config.SessionConfig{CookieName: "mercato_session", TTL: time.Hour}
}

func mintToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"userId": "u1", "email": "u1@example.com"}
	if !expiresAt.IsZero() {
		claims["exp"] = expiresAt.Unix()
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestSessionLifecycle(t *testing.T) {
	store := newFakeStore()
	mgr, err := NewManager(store, isMissing, testConfig(), testLogger())
	require.NoError(t, err)

	created, err := mgr.Create(context.Background(), &upstream.AuthSession{
		Token: mintToken(t, time.Now().Add(time.Hour)),
		User:  upstream.User{ID: "u1", Email: "u1@example.com", Role: "user"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	loaded, err := mgr.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", loaded.User.ID)
	assert.Equal(t, created.Token, loaded.Token)

	require.NoError(t, mgr.Touch(context.Background(), created.ID))
	assert.Equal(t, time.Hour, store.touched[store.SessionKey(created.ID)])

	require.NoError(t, mgr.Destroy(context.Background(), created.ID))
	_, err = mgr.Get(context.Background(), created.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}

func TestGetUnknownSessionIsUnauthorized(t *testing.T) {
	mgr, err := NewManager(newFakeStore(), isMissing, testConfig(), testLogger())
	require.NoError(t, err)

	_, err = mgr.Get(context.Background(), "nope")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))

	_, err = mgr.Get(context.Background(), "")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
}

func TestGetExpiredTokenTearsDownSession(t *testing.T) {
	store := newFakeStore()
	mgr, err := NewManager(store, isMissing, testConfig(), testLogger())
	require.NoError(t, err)

	created, err := mgr.Create(context.Background(), &upstream.AuthSession{
		Token: mintToken(t, time.Now().Add(-time.Minute)),
		User:  upstream.User{ID: "u1"},
	})
	require.NoError(t, err)

	_, err = mgr.Get(context.Background(), created.ID)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))
	assert.Empty(t, store.data, "expired session record must be removed")
}

func TestCreateRejectsEmptyToken(t *testing.T) {
	mgr, err := NewManager(newFakeStore(), isMissing, testConfig(), testLogger())
	require.NoError(t, err)

	_, err = mgr.Create(context.Background(), &upstream.AuthSession{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeInternal))
}

type fakeRevoker struct {
	calls int
	err   error
}

func (f *fakeRevoker) Logout(ctx context.Context) error {
	f.calls++
	return f.err
}

func TestLogoutDestroysRecordEvenWhenRevocationFails(t *testing.T) {
	store := newFakeStore()
	mgr, err := NewManager(store, isMissing, testConfig(), testLogger())
	require.NoError(t, err)

	created, err := mgr.Create(context.Background(), &upstream.AuthSession{
		Token: mintToken(t, time.Now().Add(time.Hour)),
	})
	require.NoError(t, err)

	revoker := &fakeRevoker{err: errors.New("upstream down")}
	err = mgr.Logout(context.Background(), created.ID, revoker)
	require.Error(t, err)
	assert.Equal(t, 1, revoker.calls)
	assert.Empty(t, store.data, "local record removed despite upstream failure")
}
