package commerce

import (
	"context"

	"fishshop-bot/internal/model"
)

// Mock implements Client for testing.
// Each method can be configured via function fields.
type Mock struct {
	GetProductsFunc         func(ctx context.Context) ([]model.Product, error)
	GetProductFunc          func(ctx context.Context, productID string) (*model.Product, error)
	GetFileURLFunc          func(ctx context.Context, fileID string) (string, error)
	CreateCartFunc          func(ctx context.Context, userID string) error
	GetCartFunc             func(ctx context.Context, userID string) (*model.CartSummary, error)
	GetCartItemsFunc        func(ctx context.Context, userID string) ([]model.LineItem, error)
	AddCartItemFunc         func(ctx context.Context, userID, productID string, qty int) error
	RemoveCartItemFunc      func(ctx context.Context, userID, itemID string) error
	GetOrCreateCustomerFunc func(ctx context.Context, userID, email string) (*model.Customer, bool, error)
}

// GetProducts calls the configured GetProductsFunc or returns an empty list.
func (m *Mock) GetProducts(ctx context.Context) ([]model.Product, error) {
	if m.GetProductsFunc != nil {
		return m.GetProductsFunc(ctx)
	}
	return []model.Product{}, nil
}

// GetProduct calls the configured GetProductFunc or returns a not-found error.
func (m *Mock) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	if m.GetProductFunc != nil {
		return m.GetProductFunc(ctx, productID)
	}
	return nil, model.NewNotFoundError("product")
}

// GetFileURL calls the configured GetFileURLFunc or returns a placeholder URL.
func (m *Mock) GetFileURL(ctx context.Context, fileID string) (string, error) {
	if m.GetFileURLFunc != nil {
		return m.GetFileURLFunc(ctx, fileID)
	}
	return "https://files.example.com/" + fileID, nil
}

// CreateCart calls the configured CreateCartFunc or succeeds.
func (m *Mock) CreateCart(ctx context.Context, userID string) error {
	if m.CreateCartFunc != nil {
		return m.CreateCartFunc(ctx, userID)
	}
	return nil
}

// GetCart calls the configured GetCartFunc or returns an empty summary.
func (m *Mock) GetCart(ctx context.Context, userID string) (*model.CartSummary, error) {
	if m.GetCartFunc != nil {
		return m.GetCartFunc(ctx, userID)
	}
	return &model.CartSummary{}, nil
}

// GetCartItems calls the configured GetCartItemsFunc or returns an empty list.
func (m *Mock) GetCartItems(ctx context.Context, userID string) ([]model.LineItem, error) {
	if m.GetCartItemsFunc != nil {
		return m.GetCartItemsFunc(ctx, userID)
	}
	return []model.LineItem{}, nil
}

// AddCartItem calls the configured AddCartItemFunc or succeeds.
func (m *Mock) AddCartItem(ctx context.Context, userID, productID string, qty int) error {
	if m.AddCartItemFunc != nil {
		return m.AddCartItemFunc(ctx, userID, productID, qty)
	}
	return nil
}

// RemoveCartItem calls the configured RemoveCartItemFunc or succeeds.
func (m *Mock) RemoveCartItem(ctx context.Context, userID, itemID string) error {
	if m.RemoveCartItemFunc != nil {
		return m.RemoveCartItemFunc(ctx, userID, itemID)
	}
	return nil
}

// GetOrCreateCustomer calls the configured GetOrCreateCustomerFunc or reports
// a freshly created customer.
func (m *Mock) GetOrCreateCustomer(ctx context.Context, userID, email string) (*model.Customer, bool, error) {
	if m.GetOrCreateCustomerFunc != nil {
		return m.GetOrCreateCustomerFunc(ctx, userID, email)
	}
	return &model.Customer{ID: "mock-customer", Name: userID, Email: email}, true, nil
}

// Verify Mock implements Client interface at compile time.
var _ Client = (*Mock)(nil)
