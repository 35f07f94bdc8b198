package cart

import (
	"context"
	"sync"

	"github.com/dmarquez-dev/mercato-storefront/internal/upstream"
	pkgerrors "github.com/dmarquez-dev/mercato-storefront/pkg/errors"
	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
)

// Backend is the slice of the marketplace API the aggregator talks to.
type Backend interface {
	GetCart(ctx context.Context) (*upstream.CartPayload, error)
	AddToCart(ctx context.Context, productID string, quantity int) error
	RemoveFromCart(ctx context.Context, productID string) error
	UpdateCartQuantity(ctx context.Context, productID string, quantity int) error
	ClearCart(ctx context.Context) error
}

// Aggregator owns one session's cart state. Mutations are serialized and
// follow write-then-refetch: the local view only changes after the backend
// acknowledged the write and a fresh cart was fetched. Every refetch carries
// a sequence token; a response whose token is no longer the latest issued is
// discarded, so a slow fetch can never overwrite the result of a later
// operation.
type Aggregator struct {
	backend Backend
	logg    *logger.Logger

	opMu sync.Mutex // serializes mutations

	mu     sync.Mutex // guards issued and state
	issued uint64
	state  Cart
}

// NewAggregator returns an aggregator with an empty cart. Callers fetch to
// hydrate it.
func NewAggregator(backend Backend, logg *logger.Logger) (*Aggregator, error) {
	if backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart aggregator requires a backend client")
	}
	return &Aggregator{backend: backend, logg: logg}, nil
}

// Snapshot returns the current cart view without touching the backend.
func (a *Aggregator) Snapshot() Cart {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Fetch refreshes the cart from the backend and returns the resulting view.
// On failure the last known good state is kept and returned alongside the
// error.
func (a *Aggregator) Fetch(ctx context.Context) (Cart, error) {
	return a.refresh(ctx)
}

// Add puts quantity units of a product in the cart. A quantity below one is
// rejected locally and never sent upstream.
func (a *Aggregator) Add(ctx context.Context, productID string, quantity int) (Cart, error) {
	if err := checkQuantity(quantity); err != nil {
		return a.Snapshot(), err
	}

	a.opMu.Lock()
	defer a.opMu.Unlock()

	if err := a.backend.AddToCart(ctx, productID, quantity); err != nil {
		return a.Snapshot(), err
	}
	return a.refresh(ctx)
}

// Remove deletes a product's line from the cart.
func (a *Aggregator) Remove(ctx context.Context, productID string) (Cart, error) {
	a.opMu.Lock()
	defer a.opMu.Unlock()

	if err := a.backend.RemoveFromCart(ctx, productID); err != nil {
		return a.Snapshot(), err
	}
	return a.refresh(ctx)
}

// UpdateQuantity sets a line's quantity. Zero is not a valid quantity;
// callers remove the line instead.
func (a *Aggregator) UpdateQuantity(ctx context.Context, productID string, quantity int) (Cart, error) {
	if err := checkQuantity(quantity); err != nil {
		return a.Snapshot(), err
	}

	a.opMu.Lock()
	defer a.opMu.Unlock()

	if err := a.backend.UpdateCartQuantity(ctx, productID, quantity); err != nil {
		return a.Snapshot(), err
	}
	return a.refresh(ctx)
}

// Clear empties the cart. The local state resets only after the backend
// acknowledged; the token bump invalidates any fetch still in flight so it
// cannot resurrect the old contents.
func (a *Aggregator) Clear(ctx context.Context) (Cart, error) {
	a.opMu.Lock()
	defer a.opMu.Unlock()

	if err := a.backend.ClearCart(ctx); err != nil {
		return a.Snapshot(), err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.issued++
	a.state = Cart{}
	return a.state, nil
}

// Reset drops the local state without calling the backend. Used when the
// session ends.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.issued++
	a.state = Cart{}
}

func (a *Aggregator) refresh(ctx context.Context) (Cart, error) {
	a.mu.Lock()
	a.issued++
	token := a.issued
	a.mu.Unlock()

	payload, err := a.backend.GetCart(ctx)
	if err != nil {
		if a.logg != nil {
			a.logg.Warn(a.logg.WithField(ctx, "error", err.Error()), "cart refresh failed, keeping last known state")
		}
		return a.Snapshot(), err
	}

	fresh := Build(payload)

	a.mu.Lock()
	defer a.mu.Unlock()
	if token != a.issued {
		// A later operation issued a newer token while this fetch was in
		// flight. Its response wins; this one is discarded.
		if a.logg != nil {
			a.logg.Debug(ctx, "discarding stale cart response")
		}
		return a.state, nil
	}
	a.state = fresh
	return a.state, nil
}

func checkQuantity(quantity int) error {
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
			WithDetails(map[string]any{"quantity": quantity})
	}
	return nil
}
