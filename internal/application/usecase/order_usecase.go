// internal/application/usecase/order_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"nursery/internal/domain/cart"
	"nursery/internal/domain/geo"
	orderdom "nursery/internal/domain/order"
	userdom "nursery/internal/domain/user"
)

// OrderMailer sends the two customer notices. Both are best-effort:
// a failed email never fails the order operation.
type OrderMailer interface {
	OrderConfirmation(ctx context.Context, o orderdom.Order) error
	DeliveredNotice(ctx context.Context, o orderdom.Order) error
}

// OrderUsecase orchestrates checkout and the order lifecycle.
type OrderUsecase struct {
	repo   orderdom.Repository
	users  userdom.Repository
	mailer OrderMailer // optional

	now   func() time.Time
	newID func() string
}

func NewOrderUsecase(repo orderdom.Repository, users userdom.Repository, mailer OrderMailer) *OrderUsecase {
	return &OrderUsecase{
		repo:   repo,
		users:  users,
		mailer: mailer,
		now:    time.Now,
		newID:  orderdom.NewID,
	}
}

// =======================
// Commands
// =======================

type CheckoutInput struct {
	UserID      string
	Items       []orderdom.Item
	Destination geo.Coordinate
}

// Checkout creates the order record: client-side ID, status Pending,
// deliveryLocation = nursery depot, total = order value + delivery
// fee. On any failure the error propagates untouched so the caller
// keeps the cart; the cart is cleared only after a successful write.
func (u *OrderUsecase) Checkout(ctx context.Context, in CheckoutInput) (orderdom.Order, error) {
	items := cart.ClampQuantities(in.Items)
	if len(items) == 0 {
		return orderdom.Order{}, cart.ErrEmpty
	}

	// Profile snapshot; a missing profile degrades to blanks the way
	// the storefront always has.
	name, email := "", ""
	if prof, err := u.users.GetByUID(ctx, in.UserID); err == nil {
		name, email = prof.Name, prof.Email
	} else if !errors.Is(err, userdom.ErrNotFound) {
		log.Printf("[order] checkout uid=%s: profile read failed, using blanks: %v", in.UserID, err)
	}

	o, err := orderdom.New(
		u.newID(),
		in.UserID,
		name,
		email,
		items,
		cart.Total(items),
		in.Destination,
		u.now(),
	)
	if err != nil {
		return orderdom.Order{}, err
	}

	created, err := u.repo.Create(ctx, o)
	if err != nil {
		return orderdom.Order{}, fmt.Errorf("create order: %w", err)
	}

	if u.mailer != nil {
		if err := u.mailer.OrderConfirmation(ctx, created); err != nil {
			log.Printf("[order] order=%s: confirmation mail failed: %v", created.OrderID, err)
		}
	}
	return created, nil
}

// SetDeliveryPosition overwrites the courier position on the order
// document. Unconditional, field-scoped, last write wins.
func (u *OrderUsecase) SetDeliveryPosition(ctx context.Context, userID, orderID string, c geo.Coordinate, at time.Time) error {
	if !c.Valid() {
		return geo.ErrNoFix
	}
	return u.repo.SetDeliveryPosition(ctx, strings.TrimSpace(userID), strings.TrimSpace(orderID), c, at)
}

// MarkDelivered applies the terminal transition. There is no guard
// against double invocation; a second call overwrites Delivered with
// Delivered, which changes nothing observable.
func (u *OrderUsecase) MarkDelivered(ctx context.Context, userID, orderID string) error {
	userID = strings.TrimSpace(userID)
	orderID = strings.TrimSpace(orderID)

	if err := u.repo.MarkDelivered(ctx, userID, orderID); err != nil {
		return fmt.Errorf("mark delivered: %w", err)
	}

	if u.mailer != nil {
		if o, err := u.repo.GetByID(ctx, userID, orderID); err == nil {
			if err := u.mailer.DeliveredNotice(ctx, o); err != nil {
				log.Printf("[order] order=%s: delivered mail failed: %v", orderID, err)
			}
		}
	}
	return nil
}

// =======================
// Queries
// =======================

func (u *OrderUsecase) GetByID(ctx context.Context, userID, orderID string) (orderdom.Order, error) {
	return u.repo.GetByID(ctx, strings.TrimSpace(userID), strings.TrimSpace(orderID))
}

// Destination is the one-shot read the tracking screens start with.
// An order without a usable location reads as not found.
func (u *OrderUsecase) Destination(ctx context.Context, userID, orderID string) (geo.Coordinate, error) {
	o, err := u.repo.GetByID(ctx, strings.TrimSpace(userID), strings.TrimSpace(orderID))
	if err != nil {
		return geo.Coordinate{}, err
	}
	if o.Location.IsZero() {
		return geo.Coordinate{}, orderdom.ErrNotFound
	}
	return o.Location, nil
}

// History lists the user's orders newest-first.
func (u *OrderUsecase) History(ctx context.Context, userID string) ([]orderdom.Order, error) {
	orders, err := u.repo.ListByUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return nil, err
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].Timestamp.After(orders[j].Timestamp) })
	return orders, nil
}

// PendingDeliveries lists Pending orders across all users for the
// delivery dashboard.
func (u *OrderUsecase) PendingDeliveries(ctx context.Context) ([]orderdom.Order, error) {
	return u.repo.ListPending(ctx)
}
