package moltin

// Elasticpath v2 responses wrap every payload in a "data" envelope and expose
// display prices under meta.display_price.with_tax. The structures below must
// stay field-for-field with the API; formatted price strings are rendered to
// users exactly as returned.

// tokenResponse is the client-credentials exchange payload.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	// Expires is the absolute expiry as unix seconds.
	Expires int64 `json:"expires"`
}

// price is a single formatted amount.
type price struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

type displayPrice struct {
	WithTax price `json:"with_tax"`
}

type productMeta struct {
	DisplayPrice displayPrice `json:"display_price"`
}

type relationshipData struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

type relationship struct {
	Data relationshipData `json:"data"`
}

type productRelationships struct {
	MainImage *relationship `json:"main_image"`
}

type wireProduct struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	Meta          productMeta          `json:"meta"`
	Relationships productRelationships `json:"relationships"`
}

type productsResponse struct {
	Data []wireProduct `json:"data"`
}

type productResponse struct {
	Data wireProduct `json:"data"`
}

// Cart items expose both a unit price and a line total.
type cartItemPrices struct {
	Unit  price `json:"unit"`
	Value price `json:"value"`
}

type cartItemDisplayPrice struct {
	WithTax cartItemPrices `json:"with_tax"`
}

type cartItemMeta struct {
	DisplayPrice cartItemDisplayPrice `json:"display_price"`
}

type wireCartItem struct {
	ID          string       `json:"id"`
	ProductID   string       `json:"product_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Quantity    int          `json:"quantity"`
	Meta        cartItemMeta `json:"meta"`
}

type cartItemsResponse struct {
	Data []wireCartItem `json:"data"`
}

type cartMeta struct {
	DisplayPrice displayPrice `json:"display_price"`
}

type wireCart struct {
	ID   string   `json:"id"`
	Meta cartMeta `json:"meta"`
}

type cartResponse struct {
	Data wireCart `json:"data"`
}

// cartAddRequest adds a product to a cart. Type is always "cart_item".
type cartAddRequest struct {
	Data cartAddData `json:"data"`
}

type cartAddData struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

// cartCreateRequest creates a cart with an explicit reference id.
type cartCreateRequest struct {
	Data cartCreateData `json:"data"`
}

type cartCreateData struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type wireCustomer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type customersResponse struct {
	Data []wireCustomer `json:"data"`
}

type customerResponse struct {
	Data wireCustomer `json:"data"`
}

type customerRequest struct {
	Data customerData `json:"data"`
}

type customerData struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type fileLink struct {
	Href string `json:"href"`
}

type wireFile struct {
	ID   string   `json:"id"`
	Link fileLink `json:"link"`
}

type fileResponse struct {
	Data wireFile `json:"data"`
}

// apiError is one entry of the Elasticpath error envelope.
type apiError struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

type errorResponse struct {
	Errors []apiError `json:"errors"`
}
