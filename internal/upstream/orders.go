package upstream

import (
	"context"
	"net/http"
	"net/url"
)

const groupOrders = "orders"

// CreateOrderInput is the checkout submission payload.
type CreateOrderInput struct {
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}

// CreateOrder places an order from the session's current cart. Never retried
// automatically; a duplicate submission would double-charge.
func (c *Client) CreateOrder(ctx context.Context, input CreateOrderInput) (*Order, error) {
	var order Order
	if err := c.do(ctx, groupOrders, http.MethodPost, "/api/orders", input, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// OrderList is the paginated order history.
type OrderList struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total,omitempty"`
}

// ListOrders returns the customer's order history.
func (c *Client) ListOrders(ctx context.Context, params ListParams) (*OrderList, error) {
	var list OrderList
	if err := c.get(ctx, groupOrders, "/api/orders"+params.query(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetOrder returns one order with its vendor sub-orders.
func (c *Client) GetOrder(ctx context.Context, id string) (*Order, error) {
	var order Order
	if err := c.get(ctx, groupOrders, "/api/orders/"+url.PathEscape(id), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

type updateOrderStatusRequest struct {
	OrderStatus string `json:"orderStatus"`
}

// UpdateOrderStatus sets the order's top-level status (customer cancel flow).
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) error {
	body := updateOrderStatusRequest{OrderStatus: status}
	return c.do(ctx, groupOrders, http.MethodPut, "/api/orders/"+url.PathEscape(id), body, nil)
}

// VendorOrders returns orders containing the authenticated vendor's items.
func (c *Client) VendorOrders(ctx context.Context, params ListParams) (*OrderList, error) {
	var list OrderList
	if err := c.get(ctx, groupOrders, "/api/orders/vendor/orders"+params.query(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// VendorStatusUpdate advances the vendor's slice of an order, optionally
// attaching tracking once shipped.
type VendorStatusUpdate struct {
	VendorStatus string    `json:"vendorStatus"`
	Tracking     *Tracking `json:"tracking,omitempty"`
}

// UpdateVendorOrderStatus updates the vendor sub-order's fulfillment state.
func (c *Client) UpdateVendorOrderStatus(ctx context.Context, orderID string, update VendorStatusUpdate) error {
	path := "/api/orders/" + url.PathEscape(orderID) + "/vendor-status"
	return c.do(ctx, groupOrders, http.MethodPut, path, update, nil)
}
