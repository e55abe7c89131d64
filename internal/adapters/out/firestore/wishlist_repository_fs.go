// internal/adapters/out/firestore/wishlist_repository_fs.go
package firestore

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	wishdom "nursery/internal/domain/wishlist"
)

const wishlistCollection = "wishlist"

// Firestore implementation of wishdom.Repository. One doc per
// favourited product at users/{uid}/wishlist/{productId}, so Add is a
// natural upsert and Remove a single delete.
type WishlistRepositoryFS struct {
	Client *firestore.Client
}

func NewWishlistRepositoryFS(client *firestore.Client) *WishlistRepositoryFS {
	return &WishlistRepositoryFS{Client: client}
}

func (r *WishlistRepositoryFS) col(userID string) *firestore.CollectionRef {
	return r.Client.Collection(usersCollection).Doc(userID).Collection(wishlistCollection)
}

func (r *WishlistRepositoryFS) List(ctx context.Context, userID string) ([]wishdom.Entry, error) {
	if r.Client == nil {
		return nil, errors.New("firestore client is nil")
	}

	it := r.col(userID).Documents(ctx)
	defer it.Stop()

	var out []wishdom.Entry
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		data := doc.Data()
		e := wishdom.Entry{
			ProductID: doc.Ref.ID,
			Name:      mapGetStr(data, "name"),
			Price:     mapGetInt(data, "price"),
			ImageURL:  mapGetStr(data, "image"),
			AddedAt:   mapGetTime(data, "addedAt"),
		}
		if e.Name == "" {
			// Malformed favourite: skip rendering, keep the list alive.
			log.Printf("[wishlist-fs] skipping malformed entry %s for uid=%s", doc.Ref.ID, userID)
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *WishlistRepositoryFS) Add(ctx context.Context, userID string, e wishdom.Entry) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	_, err := r.col(userID).Doc(e.ProductID).Set(ctx, map[string]any{
		"name":    e.Name,
		"price":   e.Price,
		"image":   e.ImageURL,
		"addedAt": e.AddedAt,
	})
	if err != nil {
		return fmt.Errorf("add wishlist entry %s: %w", e.ProductID, err)
	}
	return nil
}

func (r *WishlistRepositoryFS) Remove(ctx context.Context, userID, productID string) error {
	if r.Client == nil {
		return errors.New("firestore client is nil")
	}

	_, err := r.col(userID).Doc(productID).Delete(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return fmt.Errorf("remove wishlist entry %s: %w", productID, err)
	}
	return nil
}
