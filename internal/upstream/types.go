package upstream

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRef is the product payload embedded in cart and catalog responses.
type ProductRef struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category,omitempty"`
	Stock       int             `json:"stock,omitempty"`
	VendorID    string          `json:"vendorId"`
	VendorName  string          `json:"vendorName"`
	ImagePath   string          `json:"imagePath,omitempty"`
}

// CartItem is one (product, quantity) line as the backend stores it.
type CartItem struct {
	Product  ProductRef `json:"product"`
	Quantity int        `json:"quantity"`
}

// CartPayload is the authoritative cart state returned by the cart endpoints.
type CartPayload struct {
	Items      []CartItem      `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	TotalItems int             `json:"totalItems"`
}

// ShippingAddress is the checkout delivery target.
type ShippingAddress struct {
	Address     string `json:"address"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// VendorRef identifies the seller inside an order or cart group.
type VendorRef struct {
	ID           string `json:"id"`
	BusinessName string `json:"businessName"`
}

// OrderLineItem is one purchased product inside a vendor sub-order.
type OrderLineItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImagePath string          `json:"imagePath,omitempty"`
}

// Tracking carries the carrier handoff details once a vendor ships.
type Tracking struct {
	Carrier string `json:"carrier"`
	Number  string `json:"number"`
}

// VendorSubOrder is the slice of a multi-vendor order belonging to one
// seller, including its commission split and independent fulfillment state.
type VendorSubOrder struct {
	Vendor               VendorRef       `json:"vendor"`
	Items                []OrderLineItem `json:"items"`
	VendorSubtotal       decimal.Decimal `json:"vendorSubtotal"`
	CommissionPercentage decimal.Decimal `json:"commissionPercentage"`
	CommissionAmount     decimal.Decimal `json:"commissionAmount"`
	VendorEarnings       decimal.Decimal `json:"vendorEarnings"`
	VendorStatus         string          `json:"vendorStatus"`
	Tracking             *Tracking       `json:"tracking,omitempty"`
}

// Order is a placed order with its per-vendor sub-orders.
type Order struct {
	ID              string           `json:"id"`
	CreatedAt       time.Time        `json:"createdAt"`
	TotalPrice      decimal.Decimal  `json:"totalPrice"`
	ShippingAddress ShippingAddress  `json:"shippingAddress"`
	PaymentMethod   string           `json:"paymentMethod"`
	OrderStatus     string           `json:"orderStatus"`
	Vendors         []VendorSubOrder `json:"vendors"`
}

// User is the authenticated account attached to the session.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthSession is the login/register result: the bearer token plus its owner.
type AuthSession struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Store is a vendor storefront as shown to customers.
type Store struct {
	ID           string  `json:"id"`
	Slug         string  `json:"slug"`
	BusinessName string  `json:"businessName"`
	Description  string  `json:"description,omitempty"`
	LogoPath     string  `json:"logoPath,omitempty"`
	Rating       float64 `json:"rating,omitempty"`
	ReviewCount  int     `json:"reviewCount,omitempty"`
}

// Review is a customer review of a storefront.
type Review struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListParams is the common pagination/filter query shape.
type ListParams struct {
	Page     int
	Limit    int
	Search   string
	Category string
}
