package controllers

import (
	"context"
	"net/http"

	"github.com/dmarquez-dev/mercato-storefront/api/middleware"
	"github.com/dmarquez-dev/mercato-storefront/api/responses"
	"github.com/dmarquez-dev/mercato-storefront/api/validators"
	"github.com/dmarquez-dev/mercato-storefront/internal/cart"
	"github.com/dmarquez-dev/mercato-storefront/internal/session"
	"github.com/dmarquez-dev/mercato-storefront/internal/upstream"
	"github.com/dmarquez-dev/mercato-storefront/pkg/config"
	pkgerrors "github.com/dmarquez-dev/mercato-storefront/pkg/errors"
	"github.com/dmarquez-dev/mercato-storefront/pkg/logger"
)

// AuthBackend is the auth slice of the marketplace API.
type AuthBackend interface {
	Register(ctx context.Context, input upstream.RegisterInput) (*upstream.AuthSession, error)
	Login(ctx context.Context, input upstream.LoginInput) (*upstream.AuthSession, error)
	Logout(ctx context.Context) error
	VerifyEmail(ctx context.Context, email, code string) error
	ResendVerification(ctx context.Context, email string) error
	VendorSetup(ctx context.Context, input upstream.VendorSetupInput) error
	VendorStatus(ctx context.Context) (*upstream.VendorStatusResult, error)
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// AuthRegister creates the account upstream and opens a gateway session. The
// bearer token stays server-side; the browser only ever sees the session
// cookie.
func AuthRegister(backend AuthBackend, sessions *session.Manager, cookieCfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload registerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			respondError(w, r, logg, nil, err)
			return
		}

		authSession, err := backend.Register(r.Context(), upstream.RegisterInput{
			Name:     payload.Name,
			Email:    payload.Email,
			Password: payload.Password,
		})
		if err != nil {
			respondError(w, r, logg, nil, err)
			return
		}

		// Some deployments require email verification before issuing a
		// token. No token means no session yet.
		if authSession.Token == "" {
			responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
				"user":                 authSession.User,
				"verificationRequired": true,
			})
			return
		}

		record, err := sessions.Create(r.Context(), authSession)
		if err != nil {
			respondError(w, r, logg, nil, err)
			return
		}
		session.WriteCookie(w, cookieCfg, record.ID)
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"user": record.User})
	}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func AuthLogin(backend AuthBackend, sessions *session.Manager, cookieCfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload loginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			respondError(w, r, logg, nil, err)
			return
		}

		authSession, err := backend.Login(r.Context(), upstream.LoginInput{
			Email:    payload.Email,
			Password: payload.Password,
		})
		if err != nil {
			respondError(w, r, logg, nil, err)
			return
		}

		record, err := sessions.Create(r.Context(), authSession)
		if err != nil {
			respondError(w, r, logg, nil, err)
			return
		}
		session.WriteCookie(w, cookieCfg, record.ID)
		responses.WriteSuccess(w, map[string]any{"user": record.User})
	}
}

// AuthLogout revokes the token upstream, removes the session record, drops
// the cart aggregator and clears the cookie. Best effort throughout: the
// browser ends up logged out even if the upstream call fails.
func AuthLogout(backend AuthBackend, sessions *session.Manager, carts *cart.Registry, cookieCfg config.SessionConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			session.ClearCookie(w, cookieCfg)
			responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
			return
		}

		if err := sessions.Logout(r.Context(), sessionID, backend); err != nil && logg != nil {
			logg.Warn(logg.WithField(r.Context(), "error", err.Error()), "logout finished with errors")
		}
		if carts != nil {
			carts.Drop(sessionID)
		}
		session.ClearCookie(w, cookieCfg)
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// AuthMe returns the session's user without touching the upstream.
func AuthMe(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record := middleware.SessionFromContext(r.Context())
		if record == nil {
			respondError(w, r, logg, nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"user": record.User})
	}
}

type verifyEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required"`
}

func AuthVerifyEmail(backend AuthBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload verifyEmailRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			respondError(w, r, logg, nil, err)
			return
		}
		if err := backend.VerifyEmail(r.Context(), payload.Email, payload.Code); err != nil {
			respondError(w, r, logg, nil, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "verified"})
	}
}

type resendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func AuthResendVerification(backend AuthBackend, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload resendVerificationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			respondError(w, r, logg, nil, err)
			return
		}
		if err := backend.ResendVerification(r.Context(), payload.Email); err != nil {
			respondError(w, r, logg, nil, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "sent"})
	}
}

type vendorSetupRequest struct {
	BusinessName string `json:"businessName" validate:"required,min=2"`
	Description  string `json:"description,omitempty"`
	Category     string `json:"category,omitempty"`
	LogoPath     string `json:"logoPath,omitempty"`
}

func AuthVendorSetup(backend AuthBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload vendorSetupRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		err := backend.VendorSetup(r.Context(), upstream.VendorSetupInput{
			BusinessName: payload.BusinessName,
			Description:  payload.Description,
			Category:     payload.Category,
			LogoPath:     payload.LogoPath,
		})
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"status": "submitted"})
	}
}

func AuthVendorStatus(backend AuthBackend, killer *SessionKiller, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := backend.VendorStatus(r.Context())
		if err != nil {
			respondError(w, r, logg, killer, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
