// internal/domain/order/entity.go
package order

import (
	"errors"
	"strings"
	"time"

	"nursery/internal/domain/geo"
)

// ========================================
// Value types
// ========================================

// DeliveryStatus is the two-state order lifecycle.
// Pending -> Delivered, one way, nothing else.
type DeliveryStatus string

const (
	StatusPending   DeliveryStatus = "Pending"
	StatusDelivered DeliveryStatus = "Delivered"
)

// Item is one cart line frozen into the order at checkout.
type Item struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice int    `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
}

// ========================================
// Entity
// ========================================

// Order is one checkout transaction.
//
// Location is the customer's destination and never changes after
// creation. DeliveryLocation is the courier's position and is
// overwritten repeatedly while the order is Pending.
type Order struct {
	OrderID string
	UserID  string

	Name  string
	Email string

	Items []Item
	Total int

	Location           geo.Coordinate
	DeliveryStatus     DeliveryStatus
	DeliveryLocation   geo.Coordinate
	DeliveryLocationAt time.Time

	Timestamp time.Time
}

// Snapshot is what a change watcher delivers. Exists == false means
// the document is not there (yet); treat as "no update".
type Snapshot struct {
	Exists bool
	Order  Order
}

// ========================================
// Errors
// ========================================

var (
	ErrNotFound = errors.New("order: not found")

	ErrInvalidID       = errors.New("order: invalid id")
	ErrInvalidUserID   = errors.New("order: invalid userId")
	ErrInvalidItems    = errors.New("order: invalid items")
	ErrInvalidTotal    = errors.New("order: invalid total")
	ErrInvalidLocation = errors.New("order: invalid location")
)

// ========================================
// Policy
// ========================================

var (
	MinItemsRequired = 1

	// MaxQuantityPerItem mirrors the cart's clamp.
	MaxQuantityPerItem = 10
)

// ========================================
// Constructor
// ========================================

func New(
	id string,
	userID string,
	name string,
	email string,
	items []Item,
	total int,
	destination geo.Coordinate,
	createdAt time.Time,
) (Order, error) {
	o := Order{
		OrderID: strings.TrimSpace(id),
		UserID:  strings.TrimSpace(userID),
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),

		Items: normalizeItems(items),
		Total: total,

		Location:           destination,
		DeliveryStatus:     StatusPending,
		DeliveryLocation:   geo.NurseryDepot,
		DeliveryLocationAt: createdAt.UTC(),

		Timestamp: createdAt.UTC(),
	}
	if err := o.validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

// ========================================
// Behavior
// ========================================

// Delivered reports whether the order reached its terminal state.
func (o *Order) Delivered() bool {
	return o.DeliveryStatus == StatusDelivered
}

// MarkDelivered applies the one and only transition. Calling it on an
// already-Delivered order is a harmless overwrite (the two-state
// machine has nowhere else to go).
func (o *Order) MarkDelivered() {
	o.DeliveryStatus = StatusDelivered
}

// SetDeliveryPosition overwrites the courier position. Last write wins.
func (o *Order) SetDeliveryPosition(c geo.Coordinate, at time.Time) {
	o.DeliveryLocation = c
	o.DeliveryLocationAt = at.UTC()
}

// ========================================
// Validation
// ========================================

func (o *Order) validate() error {
	if o.OrderID == "" {
		return ErrInvalidID
	}
	if o.UserID == "" {
		return ErrInvalidUserID
	}
	if err := validateItems(o.Items); err != nil {
		return err
	}
	if o.Total <= 0 {
		return ErrInvalidTotal
	}
	if !o.Location.Valid() || o.Location.IsZero() {
		return ErrInvalidLocation
	}
	return nil
}

func validateItems(items []Item) error {
	if len(items) < MinItemsRequired {
		return ErrInvalidItems
	}
	for _, it := range items {
		if it.ProductID == "" || it.Name == "" {
			return ErrInvalidItems
		}
		if it.UnitPrice < 0 {
			return ErrInvalidItems
		}
		if it.Quantity < 1 || it.Quantity > MaxQuantityPerItem {
			return ErrInvalidItems
		}
	}
	return nil
}

func normalizeItems(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		it.ProductID = strings.TrimSpace(it.ProductID)
		it.Name = strings.TrimSpace(it.Name)
		out = append(out, it)
	}
	return out
}
