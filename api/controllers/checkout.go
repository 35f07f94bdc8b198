package controllers

import (
	"net/http"

	"github.com/dmarquez-dev/mercato-storefront/api/middleware"
	"github.com/dmarquez-dev/mercato-storefront/api/responses"
	"github.com/dmarquez-dev/mercato-storefront/api/validators"
	"github.com/dmarquez-dev/mercato-storefront/internal/cart"
	"github.com/dmarquez-dev/mercato-storefront/internal/checkout"
	"github.com/dmarquez-dev/mercato-storefront/internal/orders"
	"github.com/dmarquez-dev/mercato-storefront/internal/upstream"
	pkgerrors "github.com/dmarquez-dev/mercato-storefront/pkg/errors"
	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
)

type checkoutRequest struct {
	Address       string `json:"address" validate:"required"`
	City          string `json:"city" validate:"required"`
	PostalCode    string `json:"postalCode" validate:"required"`
	Country       string `json:"country" validate:"required"`
	PhoneNumber   string `json:"phoneNumber,omitempty"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=card cash_on_delivery bank_transfer"`
}

// Checkout reconciles the session's cart and submits the order.
func Checkout(carts *cart.Registry, placer checkout.Placer, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			respondError(w, r, logg, killer, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}

		svc, err := checkout.NewService(carts.ForSession(sessionID), placer, logg)
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), upstream.CreateOrderInput{
			ShippingAddress: upstream.ShippingAddress{
				Address:     payload.Address,
				City:        payload.City,
				PostalCode:  payload.PostalCode,
				Country:     payload.Country,
				PhoneNumber: payload.PhoneNumber,
			},
			PaymentMethod: payload.PaymentMethod,
		})
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, orders.Annotate(*order))
	}
}
