// Package orders derives the single customer-facing status of a multi-vendor
// order from its independent per-vendor fulfillment states and exposes the
// order read surface of the storefront.
package orders

import "strings"

// Canonical derived statuses.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusConfirmed  = "confirmed"
	StatusShipped    = "shipped"
	StatusInTransit  = "in_transit"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
	StatusAccepted   = "accepted"
)

// Badge color tokens the UI maps to its theme.
const (
	BadgeWarning = "warning"
	BadgeInfo    = "info"
	BadgePrimary = "primary"
	BadgeSuccess = "success"
	BadgeError   = "error"
	BadgeNeutral = "neutral"
)

// Derive collapses the vendor fulfillment states into one order-level status.
// The policy is most-advanced-wins: a single vendor progressing unblocks
// visible progress for the whole order even while others lag, so an order can
// read "delivered" with undelivered vendors. That is intentional product
// behavior, not a defect.
//
// With no vendor states the order-level status is used as is, defaulting to
// pending when absent.
func Derive(orderStatus string, vendorStatuses []string) string {
	var anyShipped, anyProcessing bool
	for _, status := range vendorStatuses {
		switch strings.ToLower(strings.TrimSpace(status)) {
		case StatusDelivered:
			return StatusDelivered
		case StatusShipped, StatusInTransit:
			anyShipped = true
		case StatusProcessing, StatusAccepted:
			anyProcessing = true
		}
	}
	if anyShipped {
		return StatusShipped
	}
	if anyProcessing {
		return StatusProcessing
	}

	fallback := strings.ToLower(strings.TrimSpace(orderStatus))
	if fallback == "" {
		return StatusPending
	}
	return fallback
}

// Step maps a derived status onto the four-stage progress display
// (pending, processing, shipped, delivered). Unrecognized statuses sit at
// the first stage.
func Step(status string) int {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case StatusProcessing, StatusConfirmed:
		return 1
	case StatusShipped, StatusInTransit:
		return 2
	case StatusDelivered:
		return 3
	default:
		return 0
	}
}

// BadgeColor maps a status to the badge token used across the order list and
// detail views.
func BadgeColor(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case StatusPending:
		return BadgeWarning
	case StatusProcessing, StatusAccepted:
		return BadgeInfo
	case StatusShipped, StatusInTransit:
		return BadgePrimary
	case StatusDelivered:
		return BadgeSuccess
	case StatusCancelled:
		return BadgeError
	default:
		return BadgeNeutral
	}
}
