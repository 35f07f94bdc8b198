package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmarquez-dev/mercato-storefront/api/responses"
	"github.com/dmarquez-dev/mercato-storefront/api/validators"
	"github.com/dmarquez-dev/mercato-storefront/internal/orders"
	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
	"github.com/dmarquez-dev/mercato-storefront/pkg/types"
)

func OrderList(svc *orders.Service, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParseListParams(r)
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		views, total, err := svc.List(r.Context(), params)
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, types.Paginated{Items: views, Total: total})
	}
}

func OrderDetail(svc *orders.Service, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := svc.Get(r.Context(), chi.URLParam(r, "orderId"))
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func OrderCancel(svc *orders.Service, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Cancel(r.Context(), chi.URLParam(r, "orderId")); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cancelled"})
	}
}
