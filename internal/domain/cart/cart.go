// internal/domain/cart/cart.go
package cart

import (
	"errors"

	"nursery/internal/domain/order"
)

// DeliveryFee is the flat surcharge added to every checkout.
const DeliveryFee = 30

// Quantity bounds per line.
const (
	MinQuantity = 1
	MaxQuantity = 10
)

var ErrEmpty = errors.New("cart: empty")

// OrderValue is the sum of line totals, without the delivery fee.
func OrderValue(items []order.Item) int {
	v := 0
	for _, it := range items {
		v += it.UnitPrice * it.Quantity
	}
	return v
}

// Total is what the customer pays: order value + flat delivery fee.
func Total(items []order.Item) int {
	return OrderValue(items) + DeliveryFee
}

// ClampQuantities forces every line into [MinQuantity, MaxQuantity].
func ClampQuantities(items []order.Item) []order.Item {
	out := make([]order.Item, 0, len(items))
	for _, it := range items {
		if it.Quantity < MinQuantity {
			it.Quantity = MinQuantity
		}
		if it.Quantity > MaxQuantity {
			it.Quantity = MaxQuantity
		}
		out = append(out, it)
	}
	return out
}
