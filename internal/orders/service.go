package orders

import (
	"context"

	"github.com/dmarquez-dev/mercato-storefront/internal/upstream"
	pkgerrors "github.com/dmarquez-dev/mercato-storefront/pkg/errors"
	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
)

// Backend is the order slice of the marketplace API.
type Backend interface {
	ListOrders(ctx context.Context, params upstream.ListParams) (*upstream.OrderList, error)
	GetOrder(ctx context.Context, id string) (*upstream.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error
}

// View is an order annotated with the derived status the customer sees.
type View struct {
	upstream.Order
	DerivedStatus string `json:"derivedStatus"`
	StatusStep    int    `json:"statusStep"`
	StatusBadge   string `json:"statusBadge"`
}

// Service exposes the customer order history with derived statuses.
type Service struct {
	backend Backend
	logg    *logger.Logger
}

func NewService(backend Backend, logg *logger.Logger) (*Service, error) {
	if backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders service requires a backend client")
	}
	return &Service{backend: backend, logg: logg}, nil
}

// Annotate attaches the derived status, progress step and badge to an order.
func Annotate(order upstream.Order) View {
	statuses := make([]string, 0, len(order.Vendors))
	for _, sub := range order.Vendors {
		statuses = append(statuses, sub.VendorStatus)
	}
	derived := Derive(order.OrderStatus, statuses)
	return View{
		Order:         order,
		DerivedStatus: derived,
		StatusStep:    Step(derived),
		StatusBadge:   BadgeColor(derived),
	}
}

// List returns the customer's order history, most recent first as the backend
// orders it, each entry annotated.
func (s *Service) List(ctx context.Context, params upstream.ListParams) ([]View, int, error) {
	list, err := s.backend.ListOrders(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	views := make([]View, 0, len(list.Orders))
	for _, order := range list.Orders {
		views = append(views, Annotate(order))
	}
	return views, list.Total, nil
}

// Get returns one annotated order.
func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.backend.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	view := Annotate(*order)
	return &view, nil
}

// Cancel asks the backend to cancel an order. Whether the order is still
// cancellable is the backend's call; its rejection message passes through.
func (s *Service) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	return s.backend.UpdateOrderStatus(ctx, id, StatusCancelled)
}
