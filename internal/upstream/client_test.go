package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgauth "github.com/dmarquez-dev/mercato-storefront/pkg/auth"
	"github.com/dmarquez-dev/mercato-storefront/pkg/config"
	pkgerrors "github.com/dmarquez-dev/mercato-storefront/pkg/errors"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(config.UpstreamConfig{
		BaseURL:   baseURL,
		Timeout:   2 * time.Second,
		RetryWait: time.Millisecond,
	}, nil, nil)
	require.NoError(t, err)
	return client
}

func TestGetCartAttachesBearerToken(t *testing.T) {
	t.Parallel()

	var seenAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"items":[],"totalPrice":0,"totalItems":0}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx := pkgauth.ContextWithToken(context.Background(), "token-abc")

	cart, err := client.GetCart(ctx)
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Equal(t, "Bearer token-abc", seenAuth)
}

func TestGetRetriesOnceOnNetworkError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			// Drop the connection so the client sees a transport error.
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[],"totalPrice":0,"totalItems":0}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	cart, err := client.GetCart(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.Equal(t, int32(2), calls.Load())
}

func TestMutationsAreNeverRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		hj, ok := w.(http.Hijacker)
		require.True(t, ok)
		conn, _, err := hj.Hijack()
		require.NoError(t, err)
		conn.Close()
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	err := client.AddToCart(context.Background(), "prod-1", 1)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNetwork))
	assert.Equal(t, int32(1), calls.Load())
}

func TestBackendRejectionCarriesVerbatimMessage(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Only 3 units left in stock"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	err := client.AddToCart(context.Background(), "prod-1", 10)
	require.Error(t, err)

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeBackend, typed.Code())
	assert.Equal(t, "Only 3 units left in stock", typed.Message())

	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, http.StatusBadRequest, rejection.UpstreamStatus())
}

func TestRejectionErrorBehavesAsError(t *testing.T) {
	t.Parallel()

	rejection := newRejection(pkgerrors.CodeBackend, http.StatusUnprocessableEntity, "Only 3 units left in stock")

	var err error = rejection
	assert.Equal(t, "BACKEND_REJECTION: Only 3 units left in stock", err.Error())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeBackend), "code must be visible through Unwrap")
	assert.Equal(t, http.StatusUnprocessableEntity, rejection.UpstreamStatus())
	assert.Equal(t, "Only 3 units left in stock", rejection.UpstreamMessage())

	var nilRejection *RejectionError
	assert.Equal(t, "", nilRejection.Error())
	assert.Nil(t, nilRejection.Unwrap())
}

func TestUnauthorizedMapsToAuthError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"jwt expired"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.GetCart(context.Background())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeUnauthorized))

	typed := pkgerrors.As(err)
	assert.Equal(t, "jwt expired", typed.Message())
}

func TestNotFoundMapsToNotFound(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	_, err := client.GetOrder(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestListParamsQuery(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", ListParams{}.query())
	assert.Equal(t, "?limit=50&page=1", ListParams{Page: 1, Limit: 50}.query())
	assert.Equal(t, "?search=tea", ListParams{Search: "tea"}.query())
}
