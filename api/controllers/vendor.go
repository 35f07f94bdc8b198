package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/dmarquez-dev/mercato-storefront/api/responses"
	"github.com/dmarquez-dev/mercato-storefront/api/validators"
	"github.com/dmarquez-dev/mercato-storefront/internal/orders"
	"github.com/dmarquez-dev/mercato-storefront/internal/upstream"
	"github.com/dmarquez-dev/mercato-storefront/internal/vendor"
	pkgerrors "github.com/dmarquez-dev/mercato-storefront/pkg/errors"
	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
	"github.com/dmarquez-dev/mercato-storefront/pkg/types"
)

// VendorBackend is the seller-facing slice of the marketplace API.
type VendorBackend interface {
	Profile(ctx context.Context) (*upstream.VendorProfile, error)
	UpdateProfile(ctx context.Context, input upstream.VendorProfileInput) (*upstream.VendorProfile, error)
	UpdateBankDetails(ctx context.Context, input upstream.BankDetailsInput) error
	Earnings(ctx context.Context) (*upstream.VendorEarnings, error)
	RequestPayout(ctx context.Context, input upstream.PayoutRequestInput) (*upstream.Payout, error)
	VendorReviews(ctx context.Context, params upstream.ListParams) (*upstream.ReviewList, error)
	VendorOrders(ctx context.Context, params upstream.ListParams) (*upstream.OrderList, error)
	UpdateVendorOrderStatus(ctx context.Context, orderID string, update upstream.VendorStatusUpdate) error
}

func VendorOverview(svc *vendor.Service, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overview, err := svc.Overview(r.Context())
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, overview)
	}
}

// MyStoreBackend fetches the authenticated vendor's storefront record.
type MyStoreBackend interface {
	MyStore(ctx context.Context) (*upstream.Store, error)
}

func VendorMyStore(backend MyStoreBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := backend.MyStore(r.Context())
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, store)
	}
}

func VendorProfile(backend VendorBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := backend.Profile(r.Context())
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

type vendorProfileRequest struct {
	BusinessName string `json:"businessName,omitempty"`
	Description  string `json:"description,omitempty"`
	ContactName  string `json:"contactName,omitempty"`
	Phone        string `json:"phone,omitempty"`
	LogoPath     string `json:"logoPath,omitempty"`
}

func VendorUpdateProfile(backend VendorBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload vendorProfileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		profile, err := backend.UpdateProfile(r.Context(), upstream.VendorProfileInput{
			BusinessName: payload.BusinessName,
			Description:  payload.Description,
			ContactName:  payload.ContactName,
			Phone:        payload.Phone,
			LogoPath:     payload.LogoPath,
		})
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, profile)
	}
}

type bankDetailsRequest struct {
	AccountHolder string `json:"accountHolder" validate:"required"`
	AccountNumber string `json:"accountNumber" validate:"required"`
	BankName      string `json:"bankName" validate:"required"`
	IFSCCode      string `json:"ifscCode,omitempty"`
}

func VendorUpdateBankDetails(backend VendorBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload bankDetailsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		err := backend.UpdateBankDetails(r.Context(), upstream.BankDetailsInput{
			AccountHolder: payload.AccountHolder,
			AccountNumber: payload.AccountNumber,
			BankName:      payload.BankName,
			IFSCCode:      payload.IFSCCode,
		})
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

func VendorEarnings(backend VendorBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		earnings, err := backend.Earnings(r.Context())
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, earnings)
	}
}

type payoutRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

func VendorRequestPayout(backend VendorBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload payoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		if !payload.Amount.IsPositive() {
			respondError(w, r, logg, killer, pkgerrors.New(pkgerrors.CodeValidation, "payout amount must be positive"))
			return
		}
		payout, err := backend.RequestPayout(r.Context(), upstream.PayoutRequestInput{Amount: payload.Amount})
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, payout)
	}
}

func VendorReviews(backend VendorBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParseListParams(r)
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		list, err := backend.VendorReviews(r.Context(), params)
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, types.Paginated{Items: list.Reviews, Total: list.Total})
	}
}

func VendorOrderList(backend VendorBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParseListParams(r)
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		list, err := backend.VendorOrders(r.Context(), params)
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		views := make([]orders.View, 0, len(list.Orders))
		for _, order := range list.Orders {
			for _, sub := range order.Vendors {
				if splitErr := vendor.VerifySplit(sub); splitErr != nil && logg != nil {
					ctx := logg.WithVendorID(logg.WithField(r.Context(), "order_id", order.ID), sub.Vendor.ID)
					logg.Warn(ctx, "commission split does not reconcile")
				}
			}
			views = append(views, orders.Annotate(order))
		}
		responses.WriteSuccess(w, types.Paginated{Items: views, Total: list.Total})
	}
}

type vendorStatusRequest struct {
	VendorStatus string `json:"vendorStatus" validate:"required,oneof=processing shipped in_transit delivered"`
	Carrier      string `json:"carrier,omitempty"`
	Tracking     string `json:"trackingNumber,omitempty"`
}

func VendorUpdateOrderStatus(backend VendorBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload vendorStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}

		update := upstream.VendorStatusUpdate{VendorStatus: payload.VendorStatus}
		if payload.Carrier != "" || payload.Tracking != "" {
			update.Tracking = &upstream.Tracking{Carrier: payload.Carrier, Number: payload.Tracking}
		}

		if err := backend.UpdateVendorOrderStatus(r.Context(), chi.URLParam(r, "orderId"), update); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}
