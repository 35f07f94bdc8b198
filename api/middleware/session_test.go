package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarquez-dev/mercato-storefront/internal/session"
	"github.com/dmarquez-dev/mercato-storefront/internal/upstream"
	"github.com/dmarquez-dev/mercato-storefront/pkg/auth"
	"github.com/dmarquez-dev/mercato-storefront/pkg/config"
	pkgerrors "github.com/dmarquez-dev/mercato-storefront/pkg/errors"
	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
)

type fakeLoader struct {
	record  *session.Record
	getErr  error
	touched []string
}

func (f *fakeLoader) Get(ctx context.Context, sessionID string) (*session.Record, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.record, nil
}

func (f *fakeLoader) Touch(ctx context.Context, sessionID string) error {
	f.touched = append(f.touched, sessionID)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func testSessionConfig() config.SessionConfig {
	return config.SessionConfig{CookieName: "mercato_session", TTL: time.Hour}
}

func TestSessionMiddlewareSeedsContext(t *testing.T) {
	loader := &fakeLoader{record: &session.Record{
		ID:    "s1",
		Token: "bearer-token",
		User:  upstream.User{ID: "u1", Role: "customer"},
	}}

	var seenRecord *session.Record
	var seenToken string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenRecord = SessionFromContext(r.Context())
		seenToken, _ = auth.TokenFromContext(r.Context())
	})

	handler := Session(loader, testSessionConfig(), testLogger())(next)
	req := httptest.NewRequest("GET", "/api/v1/orders", nil)
	req.AddCookie(&http.Cookie{Name: "mercato_session", Value: "s1"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, seenRecord)
	assert.Equal(t, "s1", seenRecord.ID)
	assert.Equal(t, "bearer-token", seenToken)
	assert.Equal(t, []string{"s1"}, loader.touched, "activity extends the ttl")
}

func TestSessionMiddlewareClearsDeadCookie(t *testing.T) {
	loader := &fakeLoader{getErr: pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired or invalid")}

	var reachedUnauthenticated bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reachedUnauthenticated = SessionFromContext(r.Context()) == nil
	})

	handler := Session(loader, testSessionConfig(), testLogger())(next)
	req := httptest.NewRequest("GET", "/api/v1/products", nil)
	req.AddCookie(&http.Cookie{Name: "mercato_session", Value: "gone"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, reachedUnauthenticated, "request continues without a session")

	var cleared bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "mercato_session" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestSessionMiddlewareSkipsWithoutCookie(t *testing.T) {
	loader := &fakeLoader{}

	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	handler := Session(loader, testSessionConfig(), testLogger())(next)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/stores", nil))

	assert.True(t, called)
	assert.Empty(t, loader.touched)
}

func TestSessionMiddlewareSurfacesStoreFailure(t *testing.T) {
	loader := &fakeLoader{getErr: pkgerrors.New(pkgerrors.CodeDependency, "redis unavailable")}

	handler := Session(loader, testSessionConfig(), testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run when the session store fails")
	}))
	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: "mercato_session", Value: "s1"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequireAuthRejectsAnonymous(t *testing.T) {
	handler := RequireAuth(testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest("GET", "/api/v1/orders", nil)
	req = req.WithContext(WithSession(req.Context(), &session.Record{ID: "s1"}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleMatchesSessionUser(t *testing.T) {
	handler := RequireRole("vendor", testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	customer := httptest.NewRequest("GET", "/api/v1/vendor/dashboard", nil)
	customer = customer.WithContext(WithSession(customer.Context(), &session.Record{
		ID:   "s1",
		User: upstream.User{ID: "u1", Role: "customer"},
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, customer)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	vendor := httptest.NewRequest("GET", "/api/v1/vendor/dashboard", nil)
	vendor = vendor.WithContext(WithSession(vendor.Context(), &session.Record{
		ID:   "s2",
		User: upstream.User{ID: "u2", Role: "vendor"},
	}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, vendor)
	assert.Equal(t, http.StatusOK, rec.Code)
}
