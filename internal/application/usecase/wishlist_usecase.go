// internal/application/usecase/wishlist_usecase.go
package usecase

import (
	"context"
	"strings"
	"time"

	orderdom "nursery/internal/domain/order"
	wishdom "nursery/internal/domain/wishlist"
)

// WishlistUsecase persists per-user favourites.
type WishlistUsecase struct {
	repo wishdom.Repository
	now  func() time.Time
}

func NewWishlistUsecase(repo wishdom.Repository) *WishlistUsecase {
	return &WishlistUsecase{repo: repo, now: time.Now}
}

func (u *WishlistUsecase) List(ctx context.Context, userID string) ([]wishdom.Entry, error) {
	return u.repo.List(ctx, strings.TrimSpace(userID))
}

func (u *WishlistUsecase) Add(ctx context.Context, userID, productID, name string, price int, imageURL string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return wishdom.ErrInvalidUserID
	}
	e, err := wishdom.NewEntry(productID, name, price, imageURL, u.now())
	if err != nil {
		return err
	}
	return u.repo.Add(ctx, userID, e)
}

func (u *WishlistUsecase) Remove(ctx context.Context, userID, productID string) error {
	return u.repo.Remove(ctx, strings.TrimSpace(userID), strings.TrimSpace(productID))
}

// MoveToCart removes the entry and hands back a cart line for it
// (quantity 1), the "add to cart from wishlist" gesture.
func (u *WishlistUsecase) MoveToCart(ctx context.Context, userID, productID string) (orderdom.Item, error) {
	userID = strings.TrimSpace(userID)
	productID = strings.TrimSpace(productID)

	entries, err := u.repo.List(ctx, userID)
	if err != nil {
		return orderdom.Item{}, err
	}
	for _, e := range entries {
		if e.ProductID == productID {
			if err := u.repo.Remove(ctx, userID, productID); err != nil {
				return orderdom.Item{}, err
			}
			return orderdom.Item{
				ProductID: e.ProductID,
				Name:      e.Name,
				UnitPrice: e.Price,
				Quantity:  1,
			}, nil
		}
	}
	return orderdom.Item{}, wishdom.ErrInvalidProductID
}
