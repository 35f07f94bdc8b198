// Package checkout guards order submission. A cart whose cached grand total
// no longer matches the sum of its vendor groups is refreshed once and, if
// still inconsistent, blocked from checkout. Failing closed here is the
// point: a mismatch means the local view has drifted from the backend.
package checkout

import (
	"context"

	"github.com/dmarquez-dev/mercato-storefront/internal/cart"
	"github.com/dmarquez-dev/mercato-storefront/internal/upstream"
	pkgerrors "github.com/dmarquez-dev/mercato-storefront/pkg/errors"
	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
	"github.com/dmarquez-dev/mercato-storefront/pkg/money"
)

// CartSource is the slice of the cart aggregator checkout needs.
type CartSource interface {
	Snapshot() cart.Cart
	Fetch(ctx context.Context) (cart.Cart, error)
	Reset()
}

// Placer submits the order to the marketplace API.
type Placer interface {
	CreateOrder(ctx context.Context, input upstream.CreateOrderInput) (*upstream.Order, error)
}

// Service reconciles and places orders for one session.
type Service struct {
	carts  CartSource
	placer Placer
	logg   *logger.Logger
}

func NewService(carts CartSource, placer Placer, logg *logger.Logger) (*Service, error) {
	if carts == nil || placer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout service requires a cart source and an order placer")
	}
	return &Service{carts: carts, placer: placer, logg: logg}, nil
}

// Reconcile verifies the cached grand total against the sum of the vendor
// group subtotals, tolerating only money-rounding drift.
func Reconcile(c cart.Cart) error {
	computed := c.GroupTotal()
	if money.WithinEpsilon(c.TotalPrice, computed) {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeReconciliation, "cart totals do not reconcile").
		WithDetails(map[string]any{
			"reportedTotal": c.TotalPrice,
			"computedTotal": computed,
		})
}

// PlaceOrder submits the session's cart. The flow is reconcile, on mismatch
// refetch once and reconcile again, then submit. The submission itself is
// never retried; a duplicated POST would double-charge. On success the local
// cart resets, the backend having already emptied its side.
func (s *Service) PlaceOrder(ctx context.Context, input upstream.CreateOrderInput) (*upstream.Order, error) {
	current := s.carts.Snapshot()
	if current.IsEmpty() {
		fetched, err := s.carts.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		current = fetched
	}
	if current.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	if err := Reconcile(current); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "cart totals drifted, refetching before checkout")
		}
		fetched, fetchErr := s.carts.Fetch(ctx)
		if fetchErr != nil {
			return nil, fetchErr
		}
		if err := Reconcile(fetched); err != nil {
			return nil, err
		}
		current = fetched
	}

	order, err := s.placer.CreateOrder(ctx, input)
	if err != nil {
		return nil, err
	}

	s.carts.Reset()
	return order, nil
}
