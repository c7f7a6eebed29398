// Package commerce defines the boundary between the conversation handlers
// and the remote commerce API. Implementations translate platform-specific
// wire formats into the shared model types.
package commerce

import (
	"context"

	"fishshop-bot/internal/model"
)

// Client abstracts the commerce operations the state handlers depend on.
// All calls are single synchronous requests with no partial-success
// semantics: a non-2xx response surfaces as an error and nothing else
// happens.
type Client interface {
	// GetProducts fetches the full product list for the menu.
	GetProducts(ctx context.Context) ([]model.Product, error)

	// GetProduct fetches one product's detail for the description card.
	GetProduct(ctx context.Context, productID string) (*model.Product, error)

	// GetFileURL resolves an image id to a displayable URL.
	GetFileURL(ctx context.Context, fileID string) (string, error)

	// CreateCart creates a cart referenced by userID.
	CreateCart(ctx context.Context, userID string) error

	// GetCart fetches the computed cart totals for userID.
	GetCart(ctx context.Context, userID string) (*model.CartSummary, error)

	// GetCartItems fetches the cart's line items for userID.
	GetCartItems(ctx context.Context, userID string) ([]model.LineItem, error)

	// AddCartItem adds qty units of a product, creating the cart lazily.
	AddCartItem(ctx context.Context, userID, productID string, qty int) error

	// RemoveCartItem removes a line item by its cart line-item id.
	RemoveCartItem(ctx context.Context, userID, itemID string) error

	// GetOrCreateCustomer finds a customer by email or creates one named
	// after userID. The bool reports whether a new record was created.
	GetOrCreateCustomer(ctx context.Context, userID, email string) (*model.Customer, bool, error)
}
