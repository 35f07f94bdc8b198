package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/dmarquez-dev/mercato-storefront/api/responses"
	"github.com/dmarquez-dev/mercato-storefront/api/validators"
	"github.com/dmarquez-dev/mercato-storefront/internal/media"
	"github.com/dmarquez-dev/mercato-storefront/internal/upstream"
	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
	"github.com/dmarquez-dev/mercato-storefront/pkg/types"
)

// CatalogBackend is the public product slice of the marketplace API.
type CatalogBackend interface {
	ListProducts(ctx context.Context, params upstream.ListParams) (*upstream.ProductList, error)
	GetProduct(ctx context.Context, id string) (*upstream.ProductRef, error)
	ProductsByVendor(ctx context.Context, vendorID string, params upstream.ListParams) (*upstream.ProductList, error)
}

// VendorCatalogBackend is the vendor's own product management slice.
type VendorCatalogBackend interface {
	MyProducts(ctx context.Context, params upstream.ListParams) (*upstream.ProductList, error)
	CreateProduct(ctx context.Context, input upstream.ProductInput) (*upstream.ProductRef, error)
	UpdateProduct(ctx context.Context, id string, input upstream.ProductInput) (*upstream.ProductRef, error)
	DeleteProduct(ctx context.Context, id string) error
}

func resolveProductImages(resolver *media.Resolver, products []upstream.ProductRef) []upstream.ProductRef {
	if resolver == nil {
		return products
	}
	for i := range products {
		products[i].ImagePath = resolver.Resolve(products[i].ImagePath)
	}
	return products
}

func ProductList(backend CatalogBackend, resolver *media.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParseListParams(r)
		if err != nil {
			respondError(w, r, logg, nil, err)
			return
		}
		list, err := backend.ListProducts(r.Context(), params)
		if err != nil {
			respondError(w, r, logg, nil, err)
			return
		}
		responses.WriteSuccess(w, types.Paginated{
			Items: resolveProductImages(resolver, list.Products),
			Total: list.Total,
		})
	}
}

func ProductDetail(backend CatalogBackend, resolver *media.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := backend.GetProduct(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			respondError(w, r, logg, nil, err)
			return
		}
		if resolver != nil {
			product.ImagePath = resolver.Resolve(product.ImagePath)
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductsByVendor(backend CatalogBackend, resolver *media.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParseListParams(r)
		if err != nil {
			respondError(w, r, logg, nil, err)
			return
		}
		list, err := backend.ProductsByVendor(r.Context(), chi.URLParam(r, "vendorId"), params)
		if err != nil {
			respondError(w, r, logg, nil, err)
			return
		}
		responses.WriteSuccess(w, types.Paginated{
			Items: resolveProductImages(resolver, list.Products),
			Total: list.Total,
		})
	}
}

type productRequest struct {
	Name        string          `json:"name" validate:"required,min=2"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Category    string          `json:"category,omitempty"`
	Stock       int             `json:"stock" validate:"gte=0"`
	ImagePath   string          `json:"imagePath,omitempty"`
}

func (p productRequest) toInput() upstream.ProductInput {
	return upstream.ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Stock:       p.Stock,
		ImagePath:   p.ImagePath,
	}
}

func VendorMyProducts(backend VendorCatalogBackend, resolver *media.Resolver, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParseListParams(r)
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		list, err := backend.MyProducts(r.Context(), params)
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, types.Paginated{
			Items: resolveProductImages(resolver, list.Products),
			Total: list.Total,
		})
	}
}

func VendorCreateProduct(backend VendorCatalogBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		product, err := backend.CreateProduct(r.Context(), payload.toInput())
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func VendorUpdateProduct(backend VendorCatalogBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload productRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		product, err := backend.UpdateProduct(r.Context(), chi.URLParam(r, "productId"), payload.toInput())
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func VendorDeleteProduct(backend VendorCatalogBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := backend.DeleteProduct(r.Context(), chi.URLParam(r, "productId")); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
