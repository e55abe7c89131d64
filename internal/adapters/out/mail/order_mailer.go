// internal/adapters/out/mail/order_mailer.go
package mail

import (
	"context"
	"fmt"
	"strings"

	orderdom "nursery/internal/domain/order"
	userdom "nursery/internal/domain/user"
)

// OrderMailer implements usecase.OrderMailer and remind.Notifier over
// the SendGrid client. Recipients without an email on record are
// skipped silently; plenty of old profiles have none.
type OrderMailer struct {
	client *SendGridClient
	users  userdom.Repository
}

func NewOrderMailer(client *SendGridClient, users userdom.Repository) *OrderMailer {
	return &OrderMailer{client: client, users: users}
}

func (m *OrderMailer) OrderConfirmation(ctx context.Context, o orderdom.Order) error {
	if o.Email == "" {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThanks for your order %s!\n\n", o.Name, o.OrderID)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "  %s x%d; Rs. %d\n", it.Name, it.Quantity, it.UnitPrice*it.Quantity)
	}
	fmt.Fprintf(&b, "\nTotal (incl. delivery): Rs. %d\n", o.Total)
	b.WriteString("\nWe'll let you know when it's on the way.\nSai Nursery\n")

	return m.client.Send(ctx, o.Email, fmt.Sprintf("Order %s confirmed", o.OrderID), b.String())
}

func (m *OrderMailer) DeliveredNotice(ctx context.Context, o orderdom.Order) error {
	if o.Email == "" {
		return nil
	}

	body := fmt.Sprintf("Hi %s,\n\nYour order %s has been delivered. Happy planting!\n\nSai Nursery\n", o.Name, o.OrderID)
	return m.client.Send(ctx, o.Email, fmt.Sprintf("Order %s delivered", o.OrderID), body)
}

// Notify delivers a watering reminder to the user's email.
func (m *OrderMailer) Notify(ctx context.Context, userID, title string) error {
	u, err := m.users.GetByUID(ctx, userID)
	if err != nil {
		return err
	}
	if u.Email == "" {
		return nil
	}

	body := fmt.Sprintf("Hi %s,\n\nWatering reminder: %s\n\nSai Nursery\n", u.Name, title)
	return m.client.Send(ctx, u.Email, "Time to water your plants", body)
}
