package cart

import "github.com/lankacraft/marketapi/internal/domain"

// DefaultMaxQuantity caps an item's quantity when the product doesn't
// declare its own cap.
const DefaultMaxQuantity = 99

// Item is one line of a cart.
type Item struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	UnitPrice   float64 `json:"unit_price"`
	ImageURL    string  `json:"image_url,omitempty"`
	SellerID    string  `json:"seller_id"`
	ShopName    string  `json:"shop_name"`
	Quantity    int     `json:"quantity"`
	MaxQuantity int     `json:"max_quantity,omitempty"`
}

func (i Item) cap() int {
	if i.MaxQuantity > 0 {
		return i.MaxQuantity
	}
	return DefaultMaxQuantity
}

// State is the full cart state. Totals are derived from Items after every
// transition and are never mutated independently, so they cannot drift.
type State struct {
	Items                 []Item                `json:"items"`
	TotalItems            int                   `json:"total_items"`
	TotalAmount           float64               `json:"total_amount"`
	SelectedPaymentMethod *domain.PaymentMethod `json:"selected_payment_method,omitempty"`
}

// Empty returns the initial cart state.
func Empty() State {
	return State{Items: []Item{}}
}

// All transitions are total functions: unknown ids are no-ops, quantities
// are clamped, nothing returns an error.

// AddItem merges the candidate into the cart. Re-adding an existing product
// id increments its quantity (clamped to the cap) instead of duplicating the
// entry. A quantity below 1 counts as 1.
func (s State) AddItem(candidate Item, quantity int) State {
	if quantity < 1 {
		quantity = 1
	}

	items := make([]Item, len(s.Items))
	copy(items, s.Items)

	found := false
	for i, item := range items {
		if item.ID != candidate.ID {
			continue
		}
		max := candidate.cap()
		if candidate.MaxQuantity == 0 && item.MaxQuantity > 0 {
			max = item.MaxQuantity
		}
		items[i].Quantity = clamp(item.Quantity+quantity, max)
		found = true
		break
	}

	if !found {
		candidate.Quantity = clamp(quantity, candidate.cap())
		items = append(items, candidate)
	}

	return s.recompute(items)
}

// RemoveItem drops the matching item. Absent ids are a no-op.
func (s State) RemoveItem(id string) State {
	items := make([]Item, 0, len(s.Items))
	for _, item := range s.Items {
		if item.ID != id {
			items = append(items, item)
		}
	}
	return s.recompute(items)
}

// UpdateQuantity sets an item's quantity, clamped to its cap. A quantity of
// zero or less removes the item entirely.
func (s State) UpdateQuantity(id string, quantity int) State {
	if quantity <= 0 {
		return s.RemoveItem(id)
	}

	items := make([]Item, len(s.Items))
	copy(items, s.Items)
	for i, item := range items {
		if item.ID == id {
			items[i].Quantity = clamp(quantity, item.cap())
		}
	}
	return s.recompute(items)
}

// Clear resets the cart to its initial state, payment method included.
func (s State) Clear() State {
	return Empty()
}

// SetPaymentMethod replaces the selected payment method. Totals are untouched.
func (s State) SetPaymentMethod(method domain.PaymentMethod) State {
	s.SelectedPaymentMethod = &method
	return s
}

// ItemQuantity returns the quantity of the given product id, or 0 if absent.
func (s State) ItemQuantity(id string) int {
	for _, item := range s.Items {
		if item.ID == id {
			return item.Quantity
		}
	}
	return 0
}

func (s State) recompute(items []Item) State {
	totalItems := 0
	totalAmount := 0.0
	for _, item := range items {
		totalItems += item.Quantity
		totalAmount += item.UnitPrice * float64(item.Quantity)
	}

	s.Items = items
	s.TotalItems = totalItems
	s.TotalAmount = totalAmount
	return s
}

func clamp(quantity, max int) int {
	if quantity > max {
		return max
	}
	if quantity < 1 {
		return 1
	}
	return quantity
}
