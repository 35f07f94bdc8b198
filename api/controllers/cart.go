package controllers

import (
	"net/http"

	"github.com/dmarquez-dev/mercato-storefront/api/middleware"
	"github.com/dmarquez-dev/mercato-storefront/api/responses"
	"github.com/dmarquez-dev/mercato-storefront/api/validators"
	"github.com/dmarquez-dev/mercato-storefront/internal/cart"
	pkgerrors "github.com/dmarquez-dev/mercato-storefront/pkg/errors"
	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
)

func sessionAggregator(r *http.Request, carts *cart.Registry) (*cart.Aggregator, error) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return carts.ForSession(sessionID), nil
}

func CartFetch(carts *cart.Registry, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agg, err := sessionAggregator(r, carts)
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		view, err := agg.Fetch(r.Context())
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type cartAddRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

func CartAdd(carts *cart.Registry, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agg, err := sessionAggregator(r, carts)
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		view, err := agg.Add(r.Context(), payload.ProductID, payload.Quantity)
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type cartUpdateRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

func CartUpdateQuantity(carts *cart.Registry, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agg, err := sessionAggregator(r, carts)
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		var payload cartUpdateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		view, err := agg.UpdateQuantity(r.Context(), payload.ProductID, payload.Quantity)
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type cartRemoveRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

func CartRemove(carts *cart.Registry, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agg, err := sessionAggregator(r, carts)
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		var payload cartRemoveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		view, err := agg.Remove(r.Context(), payload.ProductID)
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func CartClear(carts *cart.Registry, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		agg, err := sessionAggregator(r, carts)
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		view, err := agg.Clear(r.Context())
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}
