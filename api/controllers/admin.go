package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmarquez-dev/mercato-storefront/api/responses"
	"github.com/dmarquez-dev/mercato-storefront/api/validators"
	"github.com/dmarquez-dev/mercato-storefront/internal/upstream"
	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
	"github.com/dmarquez-dev/mercato-storefront/pkg/types"
)

// AdminBackend is the platform-operator slice of the marketplace API.
type AdminBackend interface {
	AdminGetDashboard(ctx context.Context) (*upstream.AdminDashboard, error)
	AdminListVendors(ctx context.Context, params upstream.ListParams) (*upstream.VendorAccountList, error)
	AdminVendorDetails(ctx context.Context, vendorID string) (*upstream.VendorAccount, error)
	AdminApproveVendor(ctx context.Context, vendorID string) error
	AdminRejectVendor(ctx context.Context, vendorID, reason string) error
	AdminSuspendVendor(ctx context.Context, vendorID, reason string) error
	AdminActivateVendor(ctx context.Context, vendorID string) error
	AdminDeleteVendor(ctx context.Context, vendorID string) error
	AdminListPayouts(ctx context.Context, params upstream.ListParams) (*upstream.PayoutList, error)
	AdminApprovePayout(ctx context.Context, payoutID string) error
	AdminProcessPayout(ctx context.Context, payoutID string, input upstream.ProcessPayoutInput) error
	AdminRejectPayout(ctx context.Context, payoutID, reason string) error
}

func AdminDashboard(backend AdminBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dashboard, err := backend.AdminGetDashboard(r.Context())
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, dashboard)
	}
}

func AdminVendorList(backend AdminBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParseListParams(r)
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		list, err := backend.AdminListVendors(r.Context(), params)
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, types.Paginated{Items: list.Vendors, Total: list.Total})
	}
}

func AdminVendorDetail(backend AdminBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account, err := backend.AdminVendorDetails(r.Context(), chi.URLParam(r, "vendorId"))
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, account)
	}
}

func AdminVendorApprove(backend AdminBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := backend.AdminApproveVendor(r.Context(), chi.URLParam(r, "vendorId")); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "approved"})
	}
}

type reasonRequest struct {
	Reason string `json:"reason" validate:"required"`
}

func AdminVendorReject(backend AdminBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload reasonRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		if err := backend.AdminRejectVendor(r.Context(), chi.URLParam(r, "vendorId"), payload.Reason); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "rejected"})
	}
}

func AdminVendorSuspend(backend AdminBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload reasonRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		if err := backend.AdminSuspendVendor(r.Context(), chi.URLParam(r, "vendorId"), payload.Reason); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "suspended"})
	}
}

func AdminVendorActivate(backend AdminBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := backend.AdminActivateVendor(r.Context(), chi.URLParam(r, "vendorId")); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "active"})
	}
}

func AdminVendorDelete(backend AdminBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := backend.AdminDeleteVendor(r.Context(), chi.URLParam(r, "vendorId")); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func AdminPayoutList(backend AdminBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParseListParams(r)
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		list, err := backend.AdminListPayouts(r.Context(), params)
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, types.Paginated{Items: list.Payouts, Total: list.Total})
	}
}

func AdminPayoutApprove(backend AdminBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := backend.AdminApprovePayout(r.Context(), chi.URLParam(r, "payoutId")); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "approved"})
	}
}

type processPayoutRequest struct {
	Reference string `json:"reference" validate:"required"`
}

func AdminPayoutProcess(backend AdminBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload processPayoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		err := backend.AdminProcessPayout(r.Context(), chi.URLParam(r, "payoutId"), upstream.ProcessPayoutInput{
			Reference: payload.Reference,
		})
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "processed"})
	}
}

func AdminPayoutReject(backend AdminBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload reasonRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		if err := backend.AdminRejectPayout(r.Context(), chi.URLParam(r, "payoutId"), payload.Reason); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "rejected"})
	}
}
