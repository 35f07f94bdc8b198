package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarquez-dev/mercato-storefront/internal/upstream"
)

func product(id, vendorID, vendorName, price string) upstream.ProductRef {
	return upstream.ProductRef{
		ID:         id,
		Name:       "product " + id,
		Price:      decimal.RequireFromString(price),
		VendorID:   vendorID,
		VendorName: vendorName,
	}
}

func TestBuildGroupsByVendorInFirstAppearanceOrder(t *testing.T) {
	payload := &upstream.CartPayload{
		Items: []upstream.CartItem{
			{Product: product("p1", "v-beans", "Beans & Co", "199.99"), Quantity: 2},
			{Product: product("p2", "v-mugs", "Mug Makers", "12.50"), Quantity: 1},
			{Product: product("p3", "v-beans", "Beans & Co", "0.333"), Quantity: 3},
		},
		TotalPrice: decimal.RequireFromString("413.48"),
		TotalItems: 6,
	}

	built := Build(payload)

	require.Len(t, built.Groups, 2)
	assert.Equal(t, "v-beans", built.Groups[0].Vendor.ID)
	assert.Equal(t, "Beans & Co", built.Groups[0].Vendor.Name)
	assert.Equal(t, "v-mugs", built.Groups[1].Vendor.ID)

	// 199.99*2 = 399.98 plus 0.333*3 rounded per line to 1.00.
	assert.True(t, built.Groups[0].Subtotal.Equal(decimal.RequireFromString("400.98")),
		"got %s", built.Groups[0].Subtotal)
	assert.True(t, built.Groups[1].Subtotal.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, built.GroupTotal().Equal(decimal.RequireFromString("413.48")))
	assert.Equal(t, 6, built.TotalItems)
}

func TestBuildDropsNonPositiveQuantities(t *testing.T) {
	payload := &upstream.CartPayload{
		Items: []upstream.CartItem{
			{Product: product("p1", "v1", "Vendor One", "10.00"), Quantity: 0},
			{Product: product("p2", "v1", "Vendor One", "5.00"), Quantity: 2},
		},
		TotalPrice: decimal.RequireFromString("10.00"),
	}

	built := Build(payload)

	require.Len(t, built.Lines, 1)
	assert.Equal(t, "p2", built.Lines[0].Product.ID)
	assert.Equal(t, 2, built.TotalItems)
}

func TestBuildNilPayloadIsEmpty(t *testing.T) {
	built := Build(nil)
	assert.True(t, built.IsEmpty())
	assert.True(t, built.GroupTotal().IsZero())
}

func TestLineExtensionRoundsHalfUp(t *testing.T) {
	line := Line{Product: product("p1", "v1", "Vendor One", "1.005"), Quantity: 1}
	assert.True(t, line.Extension().Equal(decimal.RequireFromString("1.01")),
		"got %s", line.Extension())
}
