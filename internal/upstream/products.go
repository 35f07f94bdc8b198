package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

const groupProducts = "products"

// ProductList is the paginated catalog response.
type ProductList struct {
	Products []ProductRef `json:"products"`
	Total    int          `json:"total,omitempty"`
	Page     int          `json:"page,omitempty"`
}

// ListProducts returns the public catalog.
func (c *Client) ListProducts(ctx context.Context, params ListParams) (*ProductList, error) {
	var list ProductList
	if err := c.get(ctx, groupProducts, "/api/products"+params.query(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetProduct returns one product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (*ProductRef, error) {
	var product ProductRef
	if err := c.get(ctx, groupProducts, "/api/products/"+url.PathEscape(id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductsByVendor returns the catalog filtered to one vendor.
func (c *Client) ProductsByVendor(ctx context.Context, vendorID string, params ListParams) (*ProductList, error) {
	var list ProductList
	path := "/api/products/vendor/" + url.PathEscape(vendorID) + params.query()
	if err := c.get(ctx, groupProducts, path, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// MyProducts returns the authenticated vendor's own catalog.
func (c *Client) MyProducts(ctx context.Context, params ListParams) (*ProductList, error) {
	var list ProductList
	if err := c.get(ctx, groupProducts, "/api/products/my-products"+params.query(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ProductInput is the create/update payload for a vendor's product.
type ProductInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category,omitempty"`
	Stock       int             `json:"stock"`
	ImagePath   string          `json:"imagePath,omitempty"`
}

// CreateProduct adds a product to the vendor's storefront.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*ProductRef, error) {
	var product ProductRef
	if err := c.do(ctx, groupProducts, http.MethodPost, "/api/products", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces the product's editable fields.
func (c *Client) UpdateProduct(ctx context.Context, id string, input ProductInput) (*ProductRef, error) {
	var product ProductRef
	if err := c.do(ctx, groupProducts, http.MethodPut, "/api/products/"+url.PathEscape(id), input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes the product from sale.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, groupProducts, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, nil)
}
