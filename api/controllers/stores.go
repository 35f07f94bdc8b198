package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmarquez-dev/mercato-storefront/api/responses"
	"github.com/dmarquez-dev/mercato-storefront/api/validators"
	"github.com/dmarquez-dev/mercato-storefront/internal/media"
	"github.com/dmarquez-dev/mercato-storefront/internal/upstream"
	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
	"github.com/dmarquez-dev/mercato-storefront/pkg/types"
)

// StoreBackend is the storefront directory slice of the marketplace API.
type StoreBackend interface {
	ListStores(ctx context.Context, params upstream.ListParams) (*upstream.StoreList, error)
	StoreBySlug(ctx context.Context, slug string) (*upstream.Store, error)
	StoreProducts(ctx context.Context, slug string, params upstream.ListParams) (*upstream.ProductList, error)
	StoreReviews(ctx context.Context, slug string, params upstream.ListParams) (*upstream.ReviewList, error)
	SubmitStoreReview(ctx context.Context, slug string, input upstream.ReviewInput) error
}

func resolveStoreLogos(resolver *media.Resolver, stores []upstream.Store) []upstream.Store {
	if resolver == nil {
		return stores
	}
	for i := range stores {
		stores[i].LogoPath = resolver.Resolve(stores[i].LogoPath)
	}
	return stores
}

func StoreList(backend StoreBackend, resolver *media.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParseListParams(r)
		if err != nil {
			respondError(w, r, logg, nil, err)
			return
		}
		list, err := backend.ListStores(r.Context(), params)
		if err != nil {
			respondError(w, r, logg, nil, err)
			return
		}
		responses.WriteSuccess(w, types.Paginated{
			Items: resolveStoreLogos(resolver, list.Stores),
			Total: list.Total,
		})
	}
}

func StoreDetail(backend StoreBackend, resolver *media.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := backend.StoreBySlug(r.Context(), chi.URLParam(r, "slug"))
		if err != nil {
			respondError(w, r, logg, nil, err)
			return
		}
		if resolver != nil {
			store.LogoPath = resolver.Resolve(store.LogoPath)
		}
		responses.WriteSuccess(w, store)
	}
}

func StoreProducts(backend StoreBackend, resolver *media.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParseListParams(r)
		if err != nil {
			respondError(w, r, logg, nil, err)
			return
		}
		list, err := backend.StoreProducts(r.Context(), chi.URLParam(r, "slug"), params)
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

func StoreReviews(backend StoreBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParseListParams(r)
		if err != nil {
			respondError(w, r, logg, nil, err)
			return
		}
		list, err := backend.StoreReviews(r.Context(), chi.URLParam(r, "slug"), params)
		if err != nil {
			respondError(w, r, logg, nil, err)
			return
		}
		responses.WriteSuccess(w, types.Paginated{Items: list.Reviews, Total: list.Total})
	}
}

type reviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment,omitempty"`
}

func StoreSubmitReview(backend StoreBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload reviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		err := backend.SubmitStoreReview(r.Context(), chi.URLParam(r, "slug"), upstream.ReviewInput{
			Rating:  payload.Rating,
			Comment: payload.Comment,
		})
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "submitted"})
	}
}
