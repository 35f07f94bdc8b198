package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarquez-dev/mercato-storefront/api/middleware"
	"github.com/dmarquez-dev/mercato-storefront/internal/cart"
	"github.com/dmarquez-dev/mercato-storefront/internal/session"
	"github.com/dmarquez-dev/mercato-storefront/internal/upstream"
	"github.com/dmarquez-dev/mercato-storefront/pkg/config"
	pkgerrors "github.com/dmarquez-dev/mercato-storefront/pkg/errors"
	"github.com/dmarquez-dev/mercato-storefront/pkg/types"
)

type fakeCartBackend struct {
	payload *upstream.CartPayload
	err     error

	addCalls int
	getCalls int
}

func (f *fakeCartBackend) GetCart(ctx context.Context) (*upstream.CartPayload, error) {
	f.getCalls++
	return f.payload, f.err
}

func (f *fakeCartBackend) AddToCart(ctx context.Context, productID string, quantity int) error {
	f.addCalls++
	return f.err
}

func (f *fakeCartBackend) RemoveFromCart(ctx context.Context, productID string) error { return f.err }

func (f *fakeCartBackend) UpdateCartQuantity(ctx context.Context, productID string, quantity int) error {
	return f.err
}

func (f *fakeCartBackend) ClearCart(ctx context.Context) error { return f.err }

type memoryStore struct {
	data map[string]string
}

func (m *memoryStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if raw, ok := value.([]byte); ok {
		m.data[key] = string(raw)
	}
	return nil
}

func (m *memoryStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := m.data[key]
	if !ok {
		return "", errMissing
	}
	return value, nil
}

func (m *memoryStore) Touch(ctx context.Context, key string, ttl time.Duration) error { return nil }

func (m *memoryStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *memoryStore) SessionKey(sessionID string) string { return "mercato:session:" + sessionID }

var errMissing = pkgerrors.New(pkgerrors.CodeNotFound, "missing")

func isMissing(err error) bool { return pkgerrors.IsCode(err, pkgerrors.CodeNotFound) }

func authedRequest(t *testing.T, method, target, body string, record *session.Record) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return req.WithContext(middleware.WithSession(req.Context(), record))
}

func TestCartAddReturnsGroupedView(t *testing.T) {
	backend := &fakeCartBackend{
		payload: &upstream.CartPayload{
			Items: []upstream.CartItem{
				{
					Product: upstream.ProductRef{
						ID: "p1", Price: decimal.RequireFromString("2.50"),
						VendorID: "v1", VendorName: "Vendor One",
					},
					Quantity: 4,
				},
			},
			TotalPrice: decimal.RequireFromString("10.00"),
			TotalItems: 4,
		},
	}
	carts, err := cart.NewRegistry(backend, testLogger())
	require.NoError(t, err)

	handler := CartAdd(carts, nil, testLogger())
	req := authedRequest(t, "POST", "/api/v1/cart/items", `{"productId":"p1","quantity":4}`, &session.Record{ID: "s1"})
	rec := httptest.NewRecorder()
	handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, backend.addCalls)
	assert.Equal(t, 1, backend.getCalls, "write then refetch")

	var envelope types.SuccessEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	groups, ok := data["groups"].([]any)
	require.True(t, ok)
	require.Len(t, groups, 1)
}

func TestCartAddRejectsZeroQuantityBeforeBackend(t *testing.T) {
	backend := &fakeCartBackend{}
	carts, err := cart.NewRegistry(backend, testLogger())
	require.NoError(t, err)

	handler := CartAdd(carts, nil, testLogger())
	req := authedRequest(t, "POST", "/api/v1/cart/items", `{"productId":"p1","quantity":0}`, &session.Record{ID: "s1"})
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, backend.addCalls)
}

func TestCartFetchWithoutSessionIsUnauthorized(t *testing.T) {
	carts, err := cart.NewRegistry(&fakeCartBackend{}, testLogger())
	require.NoError(t, err)

	handler := CartFetch(carts, nil, testLogger())
	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/api/v1/cart", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpstreamRejectionTearsDownSession(t *testing.T) {
	store := &memoryStore{data: map[string]string{}}
	sessions, err := session.NewManager(store, isMissing, config.SessionConfig{CookieName: "mercato_session", TTL: time.Hour}, testLogger())
	require.NoError(t, err)

	backend := &fakeCartBackend{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "jwt expired")}
	carts, err := cart.NewRegistry(backend, testLogger())
	require.NoError(t, err)

	record := &session.Record{ID: "s1", Token: "tok"}
	raw, _ := json.Marshal(record)
	store.data[store.SessionKey("s1")] = string(raw)

	killer := &SessionKiller{
		Sessions: sessions,
		Carts:    carts,
		Cookie:   config.SessionConfig{CookieName: "mercato_session", TTL: time.Hour},
	}

	handler := CartFetch(carts, killer, testLogger())
	req := authedRequest(t, "GET", "/api/v1/cart", "", record)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, store.data, "session record removed after upstream rejection")

	var cleared bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "mercato_session" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "session cookie must be cleared")
}
