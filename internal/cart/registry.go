package cart

import (
	"sync"

	pkgerrors "github.com/dmarquez-dev/mercato-storefront/pkg/errors"
	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
)

// Registry hands out one aggregator per session. Aggregators hold no
// credentials; the bearer token travels in the request context, so the same
// aggregator serves every request of its session.
type Registry struct {
	backend Backend
	logg    *logger.Logger

	mu   sync.Mutex
	aggs map[string]*Aggregator
}

func NewRegistry(backend Backend, logg *logger.Logger) (*Registry, error) {
	if backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart registry requires a backend client")
	}
	return &Registry{backend: backend, logg: logg, aggs: map[string]*Aggregator{}}, nil
}

// ForSession returns the session's aggregator, creating it on first use.
func (r *Registry) ForSession(sessionID string) *Aggregator {
	r.mu.Lock()
	defer r.mu.Unlock()

	if agg, ok := r.aggs[sessionID]; ok {
		return agg
	}
	// NewRegistry validated the backend, so construction cannot fail here.
	agg, _ := NewAggregator(r.backend, r.logg)
	r.aggs[sessionID] = agg
	return agg
}

// Drop forgets a session's aggregator. Called on logout and session teardown.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.aggs, sessionID)
}
