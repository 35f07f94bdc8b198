package upstream

import (
	"context"
	"net/http"
)

const groupCart = "cart"

// GetCart returns the backend's authoritative cart for the session. Reads are
// retried once on network failure.
func (c *Client) GetCart(ctx context.Context) (*CartPayload, error) {
	var payload CartPayload
	if err := c.get(ctx, groupCart, "/api/cart", &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// AddToCart adds quantity units of a product to the session's cart.
func (c *Client) AddToCart(ctx context.Context, productID string, quantity int) error {
	body := addToCartRequest{ProductID: productID, Quantity: quantity}
	return c.do(ctx, groupCart, http.MethodPost, "/api/cart/add", body, nil)
}

type removeFromCartRequest struct {
	ProductID string `json:"productId"`
}

// RemoveFromCart removes the product's line entirely. The backend treats a
// missing line as a no-op.
func (c *Client) RemoveFromCart(ctx context.Context, productID string) error {
	body := removeFromCartRequest{ProductID: productID}
	return c.do(ctx, groupCart, http.MethodDelete, "/api/cart/remove", body, nil)
}

type updateCartQuantityRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateCartQuantity sets the product's line to an absolute quantity.
func (c *Client) UpdateCartQuantity(ctx context.Context, productID string, quantity int) error {
	body := updateCartQuantityRequest{ProductID: productID, Quantity: quantity}
	return c.do(ctx, groupCart, http.MethodPut, "/api/cart/update", body, nil)
}

// ClearCart empties the session's cart server-side.
func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, groupCart, http.MethodDelete, "/api/cart", nil, nil)
}
