// internal/adapters/out/firestore/order_watcher_fs.go
package firestore

import (
	"context"
	"errors"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	orderdom "nursery/internal/domain/order"
)

// OrderWatcherFS implements orderdom.Watcher on top of Firestore's
// document snapshot stream.
//
// Every remote mutation of the watched document (including the
// initial state) is delivered to fn in order, from a dedicated
// goroutine. A missing document is a Snapshot{Exists: false}, not an
// error; the watch may start before the order is created. Decode
// failures of individual snapshots are logged and skipped so one bad
// write cannot kill a standing subscription.
type OrderWatcherFS struct {
	Client *firestore.Client
}

func NewOrderWatcherFS(client *firestore.Client) *OrderWatcherFS {
	return &OrderWatcherFS{Client: client}
}

func (w *OrderWatcherFS) Watch(ctx context.Context, userID, orderID string, fn func(orderdom.Snapshot)) (func(), error) {
	if w.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	ctx, cancel := context.WithCancel(ctx)

	ref := w.Client.Collection(usersCollection).Doc(userID).
		Collection(ordersCollection).Doc(orderID)
	it := ref.Snapshots(ctx)

	go func() {
		defer it.Stop()
		for {
			snap, err := it.Next()
			if err != nil {
				if status.Code(err) == codes.Canceled || errors.Is(err, context.Canceled) {
					return
				}
				// Stream died for real (network, permissions). The
				// subscription is over; the screen holding it will
				// tear down and resubscribe if it wants to.
				log.Printf("[order-watch] order=%s: stream ended: %v", orderID, err)
				return
			}

			if !snap.Exists() {
				fn(orderdom.Snapshot{})
				continue
			}

			o, err := dataToOrder(snap.Ref.ID, snap.Data(), snap.CreateTime)
			if err != nil {
				log.Printf("[order-watch] order=%s: bad snapshot skipped: %v", orderID, err)
				continue
			}
			fn(orderdom.Snapshot{Exists: true, Order: o})
		}
	}()

	return cancel, nil
}
