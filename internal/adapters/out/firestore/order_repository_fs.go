// internal/adapters/out/firestore/order_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"nursery/internal/domain/geo"
	orderdom "nursery/internal/domain/order"
)

const (
	usersCollection       = "users"
	ordersCollection      = "orders"
	adminOrdersCollection = "adminOrders"
)

// Firestore implementation of orderdom.Repository.
//
// Order documents live at users/{userId}/orders/{orderId} and are
// mirrored into adminOrders/{orderId} so the admin and delivery
// dashboards can list across users without a collection-group index.
// The user document is the source of truth; the mirror is best-effort
// on position writes and authoritative for nothing.
type OrderRepositoryFS struct {
	Client *firestore.Client
}

func NewOrderRepositoryFS(client *firestore.Client) *OrderRepositoryFS {
	return &OrderRepositoryFS{Client: client}
}

func (r *OrderRepositoryFS) orderDoc(userID, orderID string) *firestore.DocumentRef {
	return r.Client.Collection(usersCollection).Doc(userID).Collection(ordersCollection).Doc(orderID)
}

func (r *OrderRepositoryFS) mirrorDoc(orderID string) *firestore.DocumentRef {
	return r.Client.Collection(adminOrdersCollection).Doc(orderID)
}

// ========================
// Commands
// ========================

func (r *OrderRepositoryFS) Create(ctx context.Context, o orderdom.Order) (orderdom.Order, error) {
	if r.Client == nil {
		return orderdom.Order{}, errors.New("firestore client is nil")
	}

	data := orderToData(o)

	// Create (not Set): a client-generated ID colliding with an
	// existing order must fail loudly, not overwrite history.
	if _, err := r.orderDoc(o.UserID, o.OrderID).Create(ctx, data); err != nil {
		return orderdom.Order{}, fmt.Errorf("create order %s: %w", o.OrderID, err)
	}

	// Mirror for the dashboards. The order exists either way.
	if _, err := r.mirrorDoc(o.OrderID).Set(ctx, data); err != nil {
		log.Printf("[order-fs] ⚠️ mirror write failed order=%s: %v", o.OrderID, err)
	}

	return o, nil
}

// SetDeliveryPosition is a field-scoped unconditional overwrite of
// deliveryLocation. Last write wins; the status field is never
// touched here (per-field ownership).
func (r *OrderRepositoryFS) SetDeliveryPosition(ctx context.Context, userID, orderID string, c geo.Coordinate, at time.Time) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	loc := coordinateToMap(c)
	loc["timestamp"] = at.UTC()

	_, err := r.orderDoc(userID, orderID).Update(ctx, []firestore.Update{
		{Path: "deliveryLocation", Value: loc},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return orderdom.ErrNotFound
		}
		return fmt.Errorf("set delivery position %s: %w", orderID, err)
	}

	// Keep the mirror roughly current for the dashboard list.
	if _, err := r.mirrorDoc(orderID).Update(ctx, []firestore.Update{
		{Path: "deliveryLocation", Value: loc},
	}); err != nil && status.Code(err) != codes.NotFound {
		log.Printf("[order-fs] mirror position update failed order=%s: %v", orderID, err)
	}
	return nil
}

// MarkDelivered flips deliveryStatus to Delivered. No guard against a
// second call; Delivered over Delivered changes nothing.
func (r *OrderRepositoryFS) MarkDelivered(ctx context.Context, userID, orderID string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	_, err := r.orderDoc(userID, orderID).Update(ctx, []firestore.Update{
		{Path: "deliveryStatus", Value: string(orderdom.StatusDelivered)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return orderdom.ErrNotFound
		}
		return fmt.Errorf("mark delivered %s: %w", orderID, err)
	}

	if _, err := r.mirrorDoc(orderID).Update(ctx, []firestore.Update{
		{Path: "deliveryStatus", Value: string(orderdom.StatusDelivered)},
	}); err != nil && status.Code(err) != codes.NotFound {
		log.Printf("[order-fs] mirror status update failed order=%s: %v", orderID, err)
	}
	return nil
}

// ========================
// Queries
// ========================

func (r *OrderRepositoryFS) GetByID(ctx context.Context, userID, orderID string) (orderdom.Order, error) {
	if r.Client == nil {
		return orderdom.Order{}, errors.New("firestore client is nil")
	}

	userID = strings.TrimSpace(userID)
	orderID = strings.TrimSpace(orderID)
	if userID == "" || orderID == "" {
		return orderdom.Order{}, orderdom.ErrNotFound
	}

	snap, err := r.orderDoc(userID, orderID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return orderdom.Order{}, orderdom.ErrNotFound
		}
		return orderdom.Order{}, err
	}

	return dataToOrder(snap.Ref.ID, snap.Data(), snap.CreateTime)
}

func (r *OrderRepositoryFS) ListByUser(ctx context.Context, userID string) ([]orderdom.Order, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := r.Client.Collection(usersCollection).Doc(userID).Collection(ordersCollection).Documents(ctx)
	defer it.Stop()

	var out []orderdom.Order
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		o, err := dataToOrder(doc.Ref.ID, doc.Data(), doc.CreateTime)
		if err != nil {
			// Malformed history rows are skipped, not fatal.
			log.Printf("[order-fs] skipping malformed order %s: %v", doc.Ref.ID, err)
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *OrderRepositoryFS) ListPending(ctx context.Context) ([]orderdom.Order, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	q := r.Client.Collection(adminOrdersCollection).
		Where("deliveryStatus", "==", string(orderdom.StatusPending))

	it := q.Documents(ctx)
	defer it.Stop()

	var out []orderdom.Order
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		o, err := dataToOrder(doc.Ref.ID, doc.Data(), doc.CreateTime)
		if err != nil {
			log.Printf("[order-fs] skipping malformed pending order %s: %v", doc.Ref.ID, err)
			continue
		}
		out = append(out, o)
	}
	return out, nil
}
