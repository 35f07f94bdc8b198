package upstream

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

const groupVendor = "vendor"

// VendorProfile is the vendor's own storefront record plus contact details.
type VendorProfile struct {
	Store       Store  `json:"store"`
	ContactName string `json:"contactName,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Status      string `json:"status"`
}

// Profile returns the authenticated vendor's profile.
func (c *Client) Profile(ctx context.Context) (*VendorProfile, error) {
	var profile VendorProfile
	if err := c.get(ctx, groupVendor, "/api/vendor/profile", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// VendorProfileInput is the editable profile subset.
type VendorProfileInput struct {
	BusinessName string `json:"businessName,omitempty"`
	Description  string `json:"description,omitempty"`
	ContactName  string `json:"contactName,omitempty"`
	Phone        string `json:"phone,omitempty"`
	LogoPath     string `json:"logoPath,omitempty"`
}

// UpdateProfile saves profile edits.
func (c *Client) UpdateProfile(ctx context.Context, input VendorProfileInput) (*VendorProfile, error) {
	var profile VendorProfile
	if err := c.do(ctx, groupVendor, http.MethodPut, "/api/vendor/profile", input, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// BankDetailsInput is where payouts land.
type BankDetailsInput struct {
	AccountHolder string `json:"accountHolder"`
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	IFSCCode      string `json:"ifscCode,omitempty"`
}

// UpdateBankDetails saves the payout destination.
func (c *Client) UpdateBankDetails(ctx context.Context, input BankDetailsInput) error {
	return c.do(ctx, groupVendor, http.MethodPut, "/api/vendor/bank-details", input, nil)
}

// VendorDashboard is the vendor home-page aggregate.
type VendorDashboard struct {
	TotalOrders    int             `json:"totalOrders"`
	PendingOrders  int             `json:"pendingOrders"`
	TotalProducts  int             `json:"totalProducts"`
	TotalEarnings  decimal.Decimal `json:"totalEarnings"`
	PendingPayouts decimal.Decimal `json:"pendingPayouts"`
}

// Dashboard returns the vendor's sales summary.
func (c *Client) Dashboard(ctx context.Context) (*VendorDashboard, error) {
	var dashboard VendorDashboard
	if err := c.get(ctx, groupVendor, "/api/vendor/dashboard", &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// VendorEarnings summarizes what the platform owes the vendor.
type VendorEarnings struct {
	TotalEarnings     decimal.Decimal `json:"totalEarnings"`
	AvailableBalance  decimal.Decimal `json:"availableBalance"`
	PendingClearance  decimal.Decimal `json:"pendingClearance"`
	TotalPaidOut      decimal.Decimal `json:"totalPaidOut"`
	CommissionPercent decimal.Decimal `json:"commissionPercent,omitempty"`
}

// Earnings returns the vendor's balance breakdown.
func (c *Client) Earnings(ctx context.Context) (*VendorEarnings, error) {
	var earnings VendorEarnings
	if err := c.get(ctx, groupVendor, "/api/vendor/earnings", &earnings); err != nil {
		return nil, err
	}
	return &earnings, nil
}

// PayoutRequestInput asks the platform to transfer available balance.
type PayoutRequestInput struct {
	Amount decimal.Decimal `json:"amount"`
}

// Payout is one payout request record.
type Payout struct {
	ID          string          `json:"id"`
	VendorID    string          `json:"vendorId,omitempty"`
	VendorName  string          `json:"vendorName,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	RequestedAt time.Time       `json:"requestedAt"`
	ProcessedAt *time.Time      `json:"processedAt,omitempty"`
	Reference   string          `json:"reference,omitempty"`
	Reason      string          `json:"reason,omitempty"`
}

// RequestPayout files a payout request against the available balance.
func (c *Client) RequestPayout(ctx context.Context, input PayoutRequestInput) (*Payout, error) {
	var payout Payout
	if err := c.do(ctx, groupVendor, http.MethodPost, "/api/vendor/payout-request", input, &payout); err != nil {
		return nil, err
	}
	return &payout, nil
}

// VendorReviews returns reviews left on the vendor's storefront.
func (c *Client) VendorReviews(ctx context.Context, params ListParams) (*ReviewList, error) {
	var list ReviewList
	if err := c.get(ctx, groupVendor, "/api/vendor/reviews"+params.query(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}
