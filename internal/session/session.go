// Package session keeps the gateway's browser sessions in Redis. A session
// record pairs the upstream bearer token with its user so request handlers
// can attach the token without the browser ever holding it.
package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/dmarquez-dev/mercato-storefront/internal/upstream"
	"github.com/dmarquez-dev/mercato-storefront/pkg/auth"
	"github.com/dmarquez-dev/mercato-storefront/pkg/config"
	pkgerrors "github.com/dmarquez-dev/mercato-storefront/pkg/errors"
	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
	"go.uber.org/multierr"
)

// Record is one live session as stored in Redis.
type Record struct {
	ID        string        `json:"id"`
	Token     string        `json:"token"`
	User      upstream.User `json:"user"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Store is the slice of the Redis client the manager uses.
type Store interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Touch(ctx context.Context, key string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SessionKey(sessionID string) string
}

// TokenRevoker invalidates the bearer token upstream on logout.
type TokenRevoker interface {
	Logout(ctx context.Context) error
}

// IsNilFunc reports whether a store error means "key not found".
type IsNilFunc func(error) bool

// Manager creates, loads and destroys session records.
type Manager struct {
	store Store
	isNil IsNilFunc
	cfg   config.SessionConfig
	logg  *logger.Logger
	now   func() time.Time
}

func NewManager(store Store, isNil IsNilFunc, cfg config.SessionConfig, logg *logger.Logger) (*Manager, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session manager requires a store")
	}
	if isNil == nil {
		isNil = func(error) bool { return false }
	}
	return &Manager{store: store, isNil: isNil, cfg: cfg, logg: logg, now: time.Now}, nil
}

// Create persists a new session for a fresh upstream login and returns it.
func (m *Manager) Create(ctx context.Context, authSession *upstream.AuthSession) (*Record, error) {
	if authSession == nil || authSession.Token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "auth session has no token")
	}

	record := &Record{
		ID:        uuid.NewString(),
		Token:     authSession.Token,
		User:      authSession.User,
		CreatedAt: m.now().UTC(),
	}
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding session record")
	}
	if err := m.store.Set(ctx, m.store.SessionKey(record.ID), raw, m.cfg.TTL); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing session record")
	}
	return record, nil
}

// Get loads a session. A missing record or an expired bearer token both
// surface as unauthorized; the expired case also removes the record so the
// dead session is not probed again.
func (m *Manager) Get(ctx context.Context, sessionID string) (*Record, error) {
	if sessionID == "" {
		return nil, unauthorized()
	}

	raw, err := m.store.Get(ctx, m.store.SessionKey(sessionID))
	if err != nil {
		if m.isNil(err) {
			return nil, unauthorized()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading session record")
	}

	var record Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding session record")
	}

	claims, err := auth.DecodeBearerToken(record.Token)
	if err == nil && claims.Expired(m.now()) {
		if delErr := m.store.Del(ctx, m.store.SessionKey(sessionID)); delErr != nil && m.logg != nil {
			m.logg.Warn(ctx, "failed to remove expired session record")
		}
		return nil, unauthorized()
	}
	return &record, nil
}

// Touch extends the session's TTL on activity.
func (m *Manager) Touch(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return m.store.Touch(ctx, m.store.SessionKey(sessionID), m.cfg.TTL)
}

// Destroy removes the session record.
func (m *Manager) Destroy(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := m.store.Del(ctx, m.store.SessionKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "removing session record")
	}
	return nil
}

// Logout revokes the token upstream and destroys the local record. Both are
// attempted regardless of the other failing; the session must not survive a
// half-failed logout.
func (m *Manager) Logout(ctx context.Context, sessionID string, revoker TokenRevoker) error {
	var combined error
	if revoker != nil {
		combined = multierr.Append(combined, revoker.Logout(ctx))
	}
	combined = multierr.Append(combined, m.Destroy(ctx, sessionID))
	return combined
}

func unauthorized() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired or invalid")
}
