package upstream

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
)

const groupAdmin = "admin"

// AdminDashboard is the platform operator's overview.
type AdminDashboard struct {
	TotalVendors    int             `json:"totalVendors"`
	PendingVendors  int             `json:"pendingVendors"`
	TotalOrders     int             `json:"totalOrders"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
	PendingPayouts  int             `json:"pendingPayouts"`
}

// AdminGetDashboard returns platform-wide totals.
func (c *Client) AdminGetDashboard(ctx context.Context) (*AdminDashboard, error) {
	var dashboard AdminDashboard
	if err := c.get(ctx, groupAdmin, "/api/admin/dashboard", &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

// VendorAccount is a vendor as seen by the admin approval workflow.
type VendorAccount struct {
	ID           string    `json:"id"`
	BusinessName string    `json:"businessName"`
	Email        string    `json:"email"`
	Status       string    `json:"status"`
	AppliedAt    time.Time `json:"appliedAt"`
	Reason       string    `json:"reason,omitempty"`
}

// VendorAccountList is the paginated admin vendor roster.
type VendorAccountList struct {
	Vendors []VendorAccount `json:"vendors"`
	Total   int             `json:"total,omitempty"`
}

// AdminListVendors returns the vendor roster, filterable by status.
func (c *Client) AdminListVendors(ctx context.Context, params ListParams) (*VendorAccountList, error) {
	var list VendorAccountList
	if err := c.get(ctx, groupAdmin, "/api/admin/vendors"+params.query(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// AdminVendorDetails returns one vendor account.
func (c *Client) AdminVendorDetails(ctx context.Context, vendorID string) (*VendorAccount, error) {
	var account VendorAccount
	if err := c.get(ctx, groupAdmin, "/api/admin/vendors/"+url.PathEscape(vendorID), &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// AdminApproveVendor activates a pending vendor.
func (c *Client) AdminApproveVendor(ctx context.Context, vendorID string) error {
	return c.do(ctx, groupAdmin, http.MethodPut, "/api/admin/vendors/"+url.PathEscape(vendorID)+"/approve", nil, nil)
}

type reasonRequest struct {
	Reason string `json:"reason,omitempty"`
}

// AdminRejectVendor declines a pending vendor with a reason.
func (c *Client) AdminRejectVendor(ctx context.Context, vendorID, reason string) error {
	path := "/api/admin/vendors/" + url.PathEscape(vendorID) + "/reject"
	return c.do(ctx, groupAdmin, http.MethodPut, path, reasonRequest{Reason: reason}, nil)
}

// AdminSuspendVendor takes an active vendor off the marketplace.
func (c *Client) AdminSuspendVendor(ctx context.Context, vendorID, reason string) error {
	path := "/api/admin/vendors/" + url.PathEscape(vendorID) + "/suspend"
	return c.do(ctx, groupAdmin, http.MethodPut, path, reasonRequest{Reason: reason}, nil)
}

// AdminActivateVendor reinstates a suspended vendor.
func (c *Client) AdminActivateVendor(ctx context.Context, vendorID string) error {
	return c.do(ctx, groupAdmin, http.MethodPut, "/api/admin/vendors/"+url.PathEscape(vendorID)+"/activate", nil, nil)
}

// AdminDeleteVendor removes the vendor account entirely.
func (c *Client) AdminDeleteVendor(ctx context.Context, vendorID string) error {
	return c.do(ctx, groupAdmin, http.MethodDelete, "/api/admin/vendors/"+url.PathEscape(vendorID), nil, nil)
}

// PayoutList is the paginated payout queue.
type PayoutList struct {
	Payouts []Payout `json:"payouts"`
	Total   int      `json:"total,omitempty"`
}

// AdminListPayouts returns payout requests, filterable by status.
func (c *Client) AdminListPayouts(ctx context.Context, params ListParams) (*PayoutList, error) {
	var list PayoutList
	if err := c.get(ctx, groupAdmin, "/api/admin/payouts"+params.query(), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// AdminApprovePayout marks the payout as approved for processing.
func (c *Client) AdminApprovePayout(ctx context.Context, payoutID string) error {
	return c.do(ctx, groupAdmin, http.MethodPut, "/api/admin/payouts/"+url.PathEscape(payoutID)+"/approve", nil, nil)
}

// ProcessPayoutInput records the completed transfer.
type ProcessPayoutInput struct {
	Reference string `json:"reference"`
}

// AdminProcessPayout records the bank transfer for an approved payout.
func (c *Client) AdminProcessPayout(ctx context.Context, payoutID string, input ProcessPayoutInput) error {
	path := "/api/admin/payouts/" + url.PathEscape(payoutID) + "/process"
	return c.do(ctx, groupAdmin, http.MethodPut, path, input, nil)
}

// AdminRejectPayout declines the payout request with a reason.
func (c *Client) AdminRejectPayout(ctx context.Context, payoutID, reason string) error {
	path := "/api/admin/payouts/" + url.PathEscape(payoutID) + "/reject"
	return c.do(ctx, groupAdmin, http.MethodPut, path, reasonRequest{Reason: reason}, nil)
}
