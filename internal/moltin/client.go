// Package moltin implements the Elasticpath commerce API client used by the
// storefront bot: product listing and detail, image resolution, cart CRUD,
// and customer lookup/creation. Every call is a single synchronous request
// with bearer-token auth; there is no retry logic and no partial success.
package moltin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"fishshop-bot/internal/commerce"
	"fishshop-bot/internal/model"
	"fishshop-bot/internal/transport"
)

// Verify Client implements the commerce boundary at compile time.
var _ commerce.Client = (*Client)(nil)

// defaultBaseURL is the production Elasticpath API host.
const defaultBaseURL = "https://api.moltin.com"

// userAgent identifies this client to upstream servers.
const userAgent = "fishshop-bot/1.0"

// Config holds Elasticpath client configuration.
type Config struct {
	// BaseURL overrides the API host, mainly for tests. Defaults to
	// defaultBaseURL.
	BaseURL      string
	ClientID     string
	ClientSecret string
}

// Client is the Elasticpath API client. Carts are referenced by the chat's
// user identifier, so every user gets exactly one cart.
type Client struct {
	httpClient *http.Client
	baseURL    string
	auth       *Authenticator
}

// New creates an Elasticpath client with the given configuration.
func New(cfg Config) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("API credentials are required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = trimTrailingSlash(baseURL)

	// Chrome TLS fingerprint transport avoids JA3-based rate limiting.
	// See internal/transport for rationale.
	httpClient := &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport.NewChromeTransport(30 * time.Second),
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		auth:       NewAuthenticator(baseURL, cfg.ClientID, cfg.ClientSecret, httpClient),
	}, nil
}

// Authenticator exposes the token provider, mainly so startup code can fail
// fast on bad credentials.
func (c *Client) Authenticator() *Authenticator {
	return c.auth
}

// === Catalog ===

// GetProducts fetches the full product list.
func (c *Client) GetProducts(ctx context.Context) ([]model.Product, error) {
	var resp productsResponse
	if err := c.do(ctx, http.MethodGet, "/v2/products", nil, &resp); err != nil {
		return nil, err
	}

	products := make([]model.Product, len(resp.Data))
	for i, p := range resp.Data {
		products[i] = productToModel(p)
	}
	return products, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	var resp productResponse
	if err := c.do(ctx, http.MethodGet, "/v2/products/"+productID, nil, &resp); err != nil {
		return nil, err
	}
	product := productToModel(resp.Data)
	return &product, nil
}

// GetFileURL resolves a file id (a product's main image) to a displayable URL.
func (c *Client) GetFileURL(ctx context.Context, fileID string) (string, error) {
	var resp fileResponse
	if err := c.do(ctx, http.MethodGet, "/v2/files/"+fileID, nil, &resp); err != nil {
		return "", err
	}
	return resp.Data.Link.Href, nil
}

// === Carts ===

// CreateCart creates a cart referenced by userID. The API also creates carts
// implicitly on first AddCartItem, so this is rarely needed.
func (c *Client) CreateCart(ctx context.Context, userID string) error {
	body := cartCreateRequest{
		Data: cartCreateData{
			ID:   userID,
			Name: fmt.Sprintf("cart for user %s", userID),
		},
	}
	return c.do(ctx, http.MethodPost, "/v2/carts", body, nil)
}

// GetCart fetches the cart summary (computed totals) for userID.
func (c *Client) GetCart(ctx context.Context, userID string) (*model.CartSummary, error) {
	var resp cartResponse
	if err := c.do(ctx, http.MethodGet, "/v2/carts/"+userID, nil, &resp); err != nil {
		return nil, err
	}
	return &model.CartSummary{
		TotalFormatted: resp.Data.Meta.DisplayPrice.WithTax.Formatted,
	}, nil
}

// GetCartItems fetches the cart's line items for userID.
func (c *Client) GetCartItems(ctx context.Context, userID string) ([]model.LineItem, error) {
	var resp cartItemsResponse
	if err := c.do(ctx, http.MethodGet, "/v2/carts/"+userID+"/items", nil, &resp); err != nil {
		return nil, err
	}

	items := make([]model.LineItem, len(resp.Data))
	for i, item := range resp.Data {
		items[i] = model.LineItem{
			ID:                 item.ID,
			ProductID:          item.ProductID,
			Name:               item.Name,
			Description:        item.Description,
			Quantity:           item.Quantity,
			UnitPriceFormatted: item.Meta.DisplayPrice.WithTax.Unit.Formatted,
			TotalFormatted:     item.Meta.DisplayPrice.WithTax.Value.Formatted,
		}
	}
	return items, nil
}

// AddCartItem adds qty units of a product to the user's cart, creating the
// cart lazily if absent.
func (c *Client) AddCartItem(ctx context.Context, userID, productID string, qty int) error {
	body := cartAddRequest{
		Data: cartAddData{
			ID:       productID,
			Type:     "cart_item",
			Quantity: qty,
		},
	}
	return c.do(ctx, http.MethodPost, "/v2/carts/"+userID+"/items", body, nil)
}

// RemoveCartItem removes one line item from the user's cart. itemID is the
// cart line-item id, not the product id.
func (c *Client) RemoveCartItem(ctx context.Context, userID, itemID string) error {
	return c.do(ctx, http.MethodDelete, "/v2/carts/"+userID+"/items/"+itemID, nil, nil)
}

// === Customers ===

// GetOrCreateCustomer looks up a customer by email and creates one named
// after userID when no match exists. The second return value reports whether
// a new record was created.
func (c *Client) GetOrCreateCustomer(ctx context.Context, userID, email string) (*model.Customer, bool, error) {
	filter := url.QueryEscape(fmt.Sprintf("eq(email,%s)", email))

	var existing customersResponse
	if err := c.do(ctx, http.MethodGet, "/v2/customers?filter="+filter, nil, &existing); err != nil {
		return nil, false, err
	}
	if len(existing.Data) > 0 {
		customer := customerToModel(existing.Data[0])
		return &customer, false, nil
	}

	body := customerRequest{
		Data: customerData{
			Type:  "customer",
			Name:  userID,
			Email: email,
		},
	}
	var created customerResponse
	if err := c.do(ctx, http.MethodPost, "/v2/customers", body, &created); err != nil {
		return nil, false, err
	}
	customer := customerToModel(created.Data)
	return &customer, true, nil
}

// === HTTP Helpers ===

// do executes one authenticated request and decodes the response into result
// (when non-nil). The bearer token comes from the shared Authenticator.
func (c *Client) do(ctx context.Context, method, path string, body, result interface{}) error {
	token, err := c.auth.Token(ctx)
	if err != nil {
		return err
	}

	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.NewUpstreamError("Elasticpath", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return parseError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("parsing response: %w", err)
		}
	}
	return nil
}

// parseError converts an Elasticpath error envelope to a structured error.
func parseError(statusCode int, body []byte) error {
	var envelope errorResponse
	json.Unmarshal(body, &envelope) // Best effort parse

	detail := ""
	if len(envelope.Errors) > 0 {
		detail = envelope.Errors[0].Detail
		if detail == "" {
			detail = envelope.Errors[0].Title
		}
	}

	switch statusCode {
	case 401, 403:
		return model.NewAuthError(fmt.Errorf("elasticpath rejected token: %s", detail))
	case 404:
		return model.NewNotFoundError("resource")
	case 400, 422:
		if detail == "" {
			detail = "invalid request"
		}
		return model.NewValidationError("request", detail)
	case 429:
		return model.NewRateLimitError("Elasticpath")
	default:
		return model.NewUpstreamError("Elasticpath",
			fmt.Errorf("status %d: %s", statusCode, detail))
	}
}

func productToModel(p wireProduct) model.Product {
	product := model.Product{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		PriceFormatted: p.Meta.DisplayPrice.WithTax.Formatted,
	}
	if p.Relationships.MainImage != nil {
		product.MainImageID = p.Relationships.MainImage.Data.ID
	}
	return product
}

func customerToModel(c wireCustomer) model.Customer {
	return model.Customer{
		ID:    c.ID,
		Name:  c.Name,
		Email: c.Email,
	}
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}
