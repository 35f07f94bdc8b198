package upstream

import (
	"context"
	"net/http"
	"net/url"
)

const groupStores = "stores"

// StoreList is the paginated storefront directory.
type StoreList struct {
	Stores []Store `json:"stores"`
	Total  int     `json:"total,omitempty"`
}

// ListStores returns the public storefront directory.
func (c *Client) ListStores(ctx context.Context, params ListParams) (*StoreList, error) {
	var list StoreList
	if err := c.get(ctx, groupStores, "/api/store"+params.query(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// StoreBySlug returns one storefront.
func (c *Client) StoreBySlug(ctx context.Context, slug string) (*Store, error) {
	var store Store
	if err := c.get(ctx, groupStores, "/api/store/"+url.PathEscape(slug), &store); err != nil {
		return nil, err
	}
	return &store, nil
}

// StoreProducts returns the storefront's catalog.
func (c *Client) StoreProducts(ctx context.Context, slug string, params ListParams) (*ProductList, error) {
	var list ProductList
	path := "/api/store/" + url.PathEscape(slug) + "/products" + params.query()
	if err := c.get(ctx, groupStores, path, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ReviewList is the storefront's review feed.
type ReviewList struct {
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total,omitempty"`
}

// StoreReviews returns customer reviews for the storefront.
func (c *Client) StoreReviews(ctx context.Context, slug string, params ListParams) (*ReviewList, error) {
	var list ReviewList
	path := "/api/store/" + url.PathEscape(slug) + "/reviews" + params.query()
	if err := c.get(ctx, groupStores, path, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ReviewInput is a submitted storefront review.
type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// SubmitStoreReview posts a review against the storefront.
func (c *Client) SubmitStoreReview(ctx context.Context, slug string, input ReviewInput) error {
	path := "/api/store/" + url.PathEscape(slug) + "/reviews"
	return c.do(ctx, groupStores, http.MethodPost, path, input, nil)
}

// MyStore returns the authenticated vendor's storefront record.
func (c *Client) MyStore(ctx context.Context) (*Store, error) {
	var store Store
	if err := c.get(ctx, groupStores, "/api/store/info/me", &store); err != nil {
		return nil, err
	}
	return &store, nil
}
