// Package cart implements the shopping cart: an immutable value type with
// reducer-style operations, session-keyed stores, and the legacy
// stock-tracking ledger.
package cart

import (
	"donut-store/internal/model"
)

// Cart is a set of line items keyed by product ID. All operations return a
// new Cart and leave the receiver untouched, so a Cart value can be shared
// freely. An item with quantity below 1 never appears in a Cart.
type Cart struct {
	Items []model.CartItem `json:"items"`
}

// clone returns a copy of the cart with its own backing slice.
func (c Cart) clone() Cart {
	items := make([]model.CartItem, len(c.Items))
	copy(items, c.Items)
	return Cart{Items: items}
}

// Add merges an item into the cart. If an item with the same product ID is
// already present its quantity grows by the incoming quantity; otherwise
// the item is appended. A quantity below 1 is rejected.
func (c Cart) Add(item model.CartItem) (Cart, error) {
	if item.Quantity < 1 {
		return c, model.ErrInvalidQuantity
	}

	next := c.clone()
	for i := range next.Items {
		if next.Items[i].ID == item.ID {
			next.Items[i].Quantity += item.Quantity
			return next, nil
		}
	}

	next.Items = append(next.Items, item)
	return next, nil
}

// UpdateQuantity sets the quantity for the given product ID. A quantity of
// zero or below removes the item entirely. Unknown IDs are ignored.
func (c Cart) UpdateQuantity(id string, quantity int) Cart {
	if quantity <= 0 {
		return c.Remove(id)
	}

	next := c.clone()
	for i := range next.Items {
		if next.Items[i].ID == id {
			next.Items[i].Quantity = quantity
			break
		}
	}
	return next
}

// Remove drops the item with the given product ID. Unknown IDs are ignored.
func (c Cart) Remove(id string) Cart {
	next := Cart{Items: make([]model.CartItem, 0, len(c.Items))}
	for _, item := range c.Items {
		if item.ID != id {
			next.Items = append(next.Items, item)
		}
	}
	return next
}

// Clear returns an empty cart.
func (c Cart) Clear() Cart {
	return Cart{Items: []model.CartItem{}}
}

// Quantity returns the quantity of the item with the given product ID, or
// zero when the item is absent.
func (c Cart) Quantity(id string) int {
	for _, item := range c.Items {
		if item.ID == id {
			return item.Quantity
		}
	}
	return 0
}

// Total returns the sum of price times quantity over all items.
func (c Cart) Total() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// Empty reports whether the cart has no items.
func (c Cart) Empty() bool {
	return len(c.Items) == 0
}
