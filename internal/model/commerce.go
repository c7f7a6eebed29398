// Package model holds the domain types shared across the bot: conversation
// states, normalized inbound events, commerce read-through values, and the
// error taxonomy.
package model

// Product is a catalog entry fetched on demand from the commerce API.
// Price strings are pre-formatted by the API and rendered to users as-is.
type Product struct {
	ID             string
	Name           string
	Description    string
	PriceFormatted string
	// MainImageID references the product's main image; resolving it to a
	// displayable URL is a second round-trip. Empty when the product has
	// no image.
	MainImageID string
}

// LineItem is one product+quantity entry inside a cart.
type LineItem struct {
	// ID is the cart line-item identifier, distinct from the product id.
	// Removal operations are keyed by it.
	ID                 string
	ProductID          string
	Name               string
	Description        string
	Quantity           int
	UnitPriceFormatted string
	// TotalFormatted is the line total (unit price times quantity).
	TotalFormatted string
}

// CartSummary carries the totals computed by the commerce API. The bot never
// caches cart contents; every view re-fetches both items and summary.
type CartSummary struct {
	TotalFormatted string
}

// Customer is a commerce-side customer record keyed by (user id, email).
type Customer struct {
	ID    string
	Name  string
	Email string
}
