package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nursery/internal/domain/cart"
	"nursery/internal/domain/geo"
	orderdom "nursery/internal/domain/order"
	userdom "nursery/internal/domain/user"
)

// memOrderRepo is an in-memory orderdom.Repository.
type memOrderRepo struct {
	orders map[string]orderdom.Order // keyed by userID/orderID

	createErr error
	markErr   error
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: map[string]orderdom.Order{}}
}

func key(userID, orderID string) string { return userID + "/" + orderID }

func (m *memOrderRepo) Create(_ context.Context, o orderdom.Order) (orderdom.Order, error) {
	if m.createErr != nil {
		return orderdom.Order{}, m.createErr
	}
	m.orders[key(o.UserID, o.OrderID)] = o
	return o, nil
}

func (m *memOrderRepo) SetDeliveryPosition(_ context.Context, userID, orderID string, c geo.Coordinate, at time.Time) error {
	o, ok := m.orders[key(userID, orderID)]
	if !ok {
		return orderdom.ErrNotFound
	}
	o.SetDeliveryPosition(c, at)
	m.orders[key(userID, orderID)] = o
	return nil
}

func (m *memOrderRepo) MarkDelivered(_ context.Context, userID, orderID string) error {
	if m.markErr != nil {
		return m.markErr
	}
	o, ok := m.orders[key(userID, orderID)]
	if !ok {
		return orderdom.ErrNotFound
	}
	o.MarkDelivered()
	m.orders[key(userID, orderID)] = o
	return nil
}

func (m *memOrderRepo) GetByID(_ context.Context, userID, orderID string) (orderdom.Order, error) {
	o, ok := m.orders[key(userID, orderID)]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

func (m *memOrderRepo) ListByUser(_ context.Context, userID string) ([]orderdom.Order, error) {
	var out []orderdom.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memOrderRepo) ListPending(context.Context) ([]orderdom.Order, error) {
	var out []orderdom.Order
	for _, o := range m.orders {
		if !o.Delivered() {
			out = append(out, o)
		}
	}
	return out, nil
}

// memUserRepo returns one fixed profile.
type memUserRepo struct {
	user userdom.User
	err  error
}

func (m *memUserRepo) GetByUID(_ context.Context, uid string) (userdom.User, error) {
	if m.err != nil {
		return userdom.User{}, m.err
	}
	if m.user.UID != uid {
		return userdom.User{}, userdom.ErrNotFound
	}
	return m.user, nil
}

func (m *memUserRepo) Save(_ context.Context, u userdom.User) error {
	m.user = u
	return nil
}

// countingMailer records notices.
type countingMailer struct {
	confirmations int
	delivered     int
	err           error
}

func (m *countingMailer) OrderConfirmation(context.Context, orderdom.Order) error {
	m.confirmations++
	return m.err
}

func (m *countingMailer) DeliveredNotice(context.Context, orderdom.Order) error {
	m.delivered++
	return m.err
}

var checkoutDest = geo.Coordinate{Latitude: 15.6, Longitude: 73.8}

func newTestOrderUsecase(repo *memOrderRepo, users *memUserRepo, mailer OrderMailer) *OrderUsecase {
	u := NewOrderUsecase(repo, users, mailer)
	u.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }
	u.newID = func() string { return "ORD-fixed0001" }
	return u
}

func TestCheckout(t *testing.T) {
	repo := newMemOrderRepo()
	users := &memUserRepo{user: userdom.User{UID: "user-1", Name: "Asha", Email: "asha@example.com"}}
	mailer := &countingMailer{}
	uc := newTestOrderUsecase(repo, users, mailer)

	o, err := uc.Checkout(context.Background(), CheckoutInput{
		UserID: "user-1",
		Items: []orderdom.Item{
			{ProductID: "1", Name: "Ceramic Pot", UnitPrice: 250, Quantity: 2},
			{ProductID: "5", Name: "Tomato Seeds", UnitPrice: 20, Quantity: 1},
		},
		Destination: checkoutDest,
	})
	require.NoError(t, err)

	assert.Equal(t, "ORD-fixed0001", o.OrderID)
	assert.Equal(t, 550, o.Total, "order value 520 + delivery fee 30")
	assert.Equal(t, orderdom.StatusPending, o.DeliveryStatus)
	assert.Equal(t, geo.NurseryDepot, o.DeliveryLocation)
	assert.Equal(t, "Asha", o.Name)
	assert.Equal(t, 1, mailer.confirmations)
}

func TestCheckoutEmptyCart(t *testing.T) {
	uc := newTestOrderUsecase(newMemOrderRepo(), &memUserRepo{}, nil)

	_, err := uc.Checkout(context.Background(), CheckoutInput{UserID: "user-1", Destination: checkoutDest})
	assert.ErrorIs(t, err, cart.ErrEmpty)
}

func TestCheckoutClampsQuantities(t *testing.T) {
	repo := newMemOrderRepo()
	uc := newTestOrderUsecase(repo, &memUserRepo{}, nil)

	o, err := uc.Checkout(context.Background(), CheckoutInput{
		UserID: "user-1",
		Items: []orderdom.Item{
			{ProductID: "1", Name: "Ceramic Pot", UnitPrice: 100, Quantity: 99},
		},
		Destination: checkoutDest,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, o.Items[0].Quantity)
	assert.Equal(t, 100*10+cart.DeliveryFee, o.Total)
}

func TestCheckoutMissingProfileDegradesToBlanks(t *testing.T) {
	repo := newMemOrderRepo()
	uc := newTestOrderUsecase(repo, &memUserRepo{}, nil)

	o, err := uc.Checkout(context.Background(), CheckoutInput{
		UserID:      "user-unknown",
		Items:       []orderdom.Item{{ProductID: "1", Name: "Ceramic Pot", UnitPrice: 250, Quantity: 1}},
		Destination: checkoutDest,
	})
	require.NoError(t, err)
	assert.Empty(t, o.Name)
	assert.Empty(t, o.Email)
}

func TestCheckoutCreateFailurePropagates(t *testing.T) {
	repo := newMemOrderRepo()
	repo.createErr = errors.New("firestore down")
	mailer := &countingMailer{}
	uc := newTestOrderUsecase(repo, &memUserRepo{}, mailer)

	_, err := uc.Checkout(context.Background(), CheckoutInput{
		UserID:      "user-1",
		Items:       []orderdom.Item{{ProductID: "1", Name: "Ceramic Pot", UnitPrice: 250, Quantity: 1}},
		Destination: checkoutDest,
	})
	require.Error(t, err)
	assert.Zero(t, mailer.confirmations, "no mail for a failed order")
}

func TestCheckoutMailFailureIsBestEffort(t *testing.T) {
	repo := newMemOrderRepo()
	mailer := &countingMailer{err: errors.New("sendgrid down")}
	uc := newTestOrderUsecase(repo, &memUserRepo{}, mailer)

	_, err := uc.Checkout(context.Background(), CheckoutInput{
		UserID:      "user-1",
		Items:       []orderdom.Item{{ProductID: "1", Name: "Ceramic Pot", UnitPrice: 250, Quantity: 1}},
		Destination: checkoutDest,
	})
	assert.NoError(t, err)
}

func TestMarkDelivered(t *testing.T) {
	repo := newMemOrderRepo()
	mailer := &countingMailer{}
	uc := newTestOrderUsecase(repo, &memUserRepo{}, mailer)

	_, err := uc.Checkout(context.Background(), CheckoutInput{
		UserID:      "user-1",
		Items:       []orderdom.Item{{ProductID: "1", Name: "Ceramic Pot", UnitPrice: 250, Quantity: 1}},
		Destination: checkoutDest,
	})
	require.NoError(t, err)

	require.NoError(t, uc.MarkDelivered(context.Background(), "user-1", "ORD-fixed0001"))

	o, err := uc.GetByID(context.Background(), "user-1", "ORD-fixed0001")
	require.NoError(t, err)
	assert.True(t, o.Delivered())
	assert.Equal(t, 1, mailer.delivered)

	// Second confirmation is a harmless overwrite.
	require.NoError(t, uc.MarkDelivered(context.Background(), "user-1", "ORD-fixed0001"))
}

func TestSetDeliveryPositionRejectsInvalidFix(t *testing.T) {
	uc := newTestOrderUsecase(newMemOrderRepo(), &memUserRepo{}, nil)
	err := uc.SetDeliveryPosition(context.Background(), "user-1", "ORD-x", geo.Coordinate{Latitude: 120}, time.Now())
	assert.ErrorIs(t, err, geo.ErrNoFix)
}

func TestDestination(t *testing.T) {
	repo := newMemOrderRepo()
	uc := newTestOrderUsecase(repo, &memUserRepo{}, nil)

	_, err := uc.Destination(context.Background(), "user-1", "ORD-x")
	assert.ErrorIs(t, err, orderdom.ErrNotFound)

	_, err = uc.Checkout(context.Background(), CheckoutInput{
		UserID:      "user-1",
		Items:       []orderdom.Item{{ProductID: "1", Name: "Ceramic Pot", UnitPrice: 250, Quantity: 1}},
		Destination: checkoutDest,
	})
	require.NoError(t, err)

	dest, err := uc.Destination(context.Background(), "user-1", "ORD-fixed0001")
	require.NoError(t, err)
	assert.Equal(t, checkoutDest, dest)
}

func TestHistoryNewestFirst(t *testing.T) {
	repo := newMemOrderRepo()
	uc := newTestOrderUsecase(repo, &memUserRepo{}, nil)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"ORD-aaaaaaaa1", "ORD-aaaaaaaa2", "ORD-aaaaaaaa3"} {
		o, err := orderdom.New(id, "user-1", "", "",
			[]orderdom.Item{{ProductID: "1", Name: "Pot", UnitPrice: 100, Quantity: 1}},
			130, checkoutDest, base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
		_, err = repo.Create(context.Background(), o)
		require.NoError(t, err)
	}

	got, err := uc.History(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "ORD-aaaaaaaa3", got[0].OrderID)
	assert.Equal(t, "ORD-aaaaaaaa1", got[2].OrderID)
}
