package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nursery/internal/domain/order"
)

func TestTotalAddsFlatDeliveryFee(t *testing.T) {
	items := []order.Item{
		{ProductID: "1", Name: "Ceramic Pot", UnitPrice: 250, Quantity: 2},
		{ProductID: "5", Name: "Tomato Seeds", UnitPrice: 20, Quantity: 1},
	}

	assert.Equal(t, 520, OrderValue(items))
	assert.Equal(t, 550, Total(items))
}

func TestTotalEmptyCartIsJustTheFee(t *testing.T) {
	// The usecase rejects empty carts before pricing; Total itself
	// stays a pure function.
	assert.Equal(t, DeliveryFee, Total(nil))
}

func TestClampQuantities(t *testing.T) {
	items := []order.Item{
		{ProductID: "1", Quantity: 0},
		{ProductID: "2", Quantity: -3},
		{ProductID: "3", Quantity: 5},
		{ProductID: "4", Quantity: 99},
	}

	out := ClampQuantities(items)

	assert.Equal(t, 1, out[0].Quantity)
	assert.Equal(t, 1, out[1].Quantity)
	assert.Equal(t, 5, out[2].Quantity)
	assert.Equal(t, 10, out[3].Quantity)

	// Input slice untouched.
	assert.Equal(t, 0, items[0].Quantity)
}
