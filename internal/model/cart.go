package model

// CartItem is a single line in a shopping cart, keyed by product ID.
// Name, price and image are copied from the catalogue when the item is
// added so the cart can be rendered without further lookups.
type CartItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	ImageURL string `json:"imageUrl,omitempty"`
	Quantity int    `json:"quantity"`
}

// CheckoutRequest carries the customer and delivery details collected at
// checkout. Items are filled in from the session cart by the caller, not
// taken from the request body.
type CheckoutRequest struct {
	CustomerName  string     `json:"customerName"`
	CustomerPhone string     `json:"customerPhone"`
	CustomerEmail string     `json:"customerEmail,omitempty"`
	Address       string     `json:"address"`
	City          string     `json:"city,omitempty"`
	PostalCode    string     `json:"postalCode,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	Items         []CartItem `json:"-"`
}
