package upstream

import (
	"context"
	"net/http"
)

const groupAuth = "auth"

// RegisterInput is the account-creation payload.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Register creates an account and returns the issued session.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthSession, error) {
	var session AuthSession
	if err := c.do(ctx, groupAuth, http.MethodPost, "/api/auth/register", input, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// LoginInput carries the credentials.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates and returns the issued session.
func (c *Client) Login(ctx context.Context, input LoginInput) (*AuthSession, error) {
	var session AuthSession
	if err := c.do(ctx, groupAuth, http.MethodPost, "/api/auth/login", input, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Logout invalidates the bearer token server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, groupAuth, http.MethodPost, "/api/auth/logout", nil, nil)
}

type verifyEmailRequest struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verificationCode"`
}

// VerifyEmail confirms the address with the emailed code.
func (c *Client) VerifyEmail(ctx context.Context, email, code string) error {
	body := verifyEmailRequest{Email: email, VerificationCode: code}
	return c.do(ctx, groupAuth, http.MethodPost, "/api/auth/verify-email", body, nil)
}

type resendVerificationRequest struct {
	Email string `json:"email"`
}

// ResendVerification requests a fresh verification code.
func (c *Client) ResendVerification(ctx context.Context, email string) error {
	body := resendVerificationRequest{Email: email}
	return c.do(ctx, groupAuth, http.MethodPost, "/api/auth/verify-email/resend", body, nil)
}

// VendorSetupInput upgrades a customer account into a vendor storefront.
type VendorSetupInput struct {
	BusinessName string `json:"businessName"`
	Description  string `json:"description,omitempty"`
	Category     string `json:"category,omitempty"`
	LogoPath     string `json:"logoPath,omitempty"`
}

// VendorSetup submits the storefront application.
func (c *Client) VendorSetup(ctx context.Context, input VendorSetupInput) error {
	return c.do(ctx, groupAuth, http.MethodPost, "/api/auth/vendor-setup", input, nil)
}

// VendorStatusResult reports where a vendor application stands.
type VendorStatusResult struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// VendorStatus returns the session's vendor approval state.
func (c *Client) VendorStatus(ctx context.Context) (*VendorStatusResult, error) {
	var result VendorStatusResult
	if err := c.get(ctx, groupAuth, "/api/auth/vendor-status", &result); err != nil {
		return nil, err
	}
	return &result, nil
}
