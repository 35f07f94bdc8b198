// Package cart maintains the session's locally cached, backend-synchronized
// shopping cart and derives the vendor-grouped view the storefront renders.
// The marketplace API is the source of truth; this package is a cache plus
// view-model layer and never trusts its own arithmetic over a refetch.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/dmarquez-dev/mercato-storefront/internal/upstream"
	"github.com/dmarquez-dev/mercato-storefront/pkg/money"
)

// Line is one (product, quantity) entry. Quantity is always >= 1; a line
// decremented to zero is removed, never stored.
type Line struct {
	Product  upstream.ProductRef `json:"product"`
	Quantity int                 `json:"quantity"`
}

// Extension returns the line's price contribution at money precision.
func (l Line) Extension() decimal.Decimal {
	return money.Extend(l.Product.Price, l.Quantity)
}

// Vendor identifies the seller a group belongs to.
type Vendor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// VendorGroup is the slice of the cart belonging to one seller. Lines keep
// the order the backend returned them in.
type VendorGroup struct {
	Vendor   Vendor          `json:"vendor"`
	Lines    []Line          `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Cart is the session's full cart view. TotalPrice is the backend-reported
// grand total; GroupTotal recomputes it from the groups so checkout can
// verify the two agree before submitting.
type Cart struct {
	Lines      []Line          `json:"lines"`
	Groups     []VendorGroup   `json:"groups"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	TotalItems int             `json:"totalItems"`
}

// IsEmpty reports whether the cart has no lines.
func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// GroupTotal sums the vendor subtotals.
func (c Cart) GroupTotal() decimal.Decimal {
	subtotals := make([]decimal.Decimal, 0, len(c.Groups))
	for _, group := range c.Groups {
		subtotals = append(subtotals, group.Subtotal)
	}
	return money.Sum(subtotals...)
}

// Build constructs the grouped cart view from the backend payload. The state
// is replaced wholesale on every fetch; stale and fresh carts are never
// merged.
func Build(payload *upstream.CartPayload) Cart {
	if payload == nil {
		return Cart{}
	}

	lines := make([]Line, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.Quantity < 1 {
			continue
		}
		lines = append(lines, Line{Product: item.Product, Quantity: item.Quantity})
	}

	cart := Cart{
		Lines:      lines,
		Groups:     groupByVendor(lines),
		TotalPrice: payload.TotalPrice,
		TotalItems: payload.TotalItems,
	}
	if cart.TotalItems == 0 {
		for _, line := range lines {
			cart.TotalItems += line.Quantity
		}
	}
	return cart
}

// groupByVendor partitions lines by vendor id, preserving the order vendors
// first appear in the line list. Each line extension is rounded before the
// group sum so the subtotal always matches what the lines display.
func groupByVendor(lines []Line) []VendorGroup {
	groups := make([]VendorGroup, 0)
	index := make(map[string]int)

	for _, line := range lines {
		vendorID := line.Product.VendorID
		at, seen := index[vendorID]
		if !seen {
			at = len(groups)
			index[vendorID] = at
			groups = append(groups, VendorGroup{
				Vendor: Vendor{ID: vendorID, Name: line.Product.VendorName},
			})
		}
		groups[at].Lines = append(groups[at].Lines, line)
		groups[at].Subtotal = groups[at].Subtotal.Add(line.Extension())
	}
	return groups
}
