// internal/domain/wishlist/entity.go
package wishlist

import (
	"errors"
	"strings"
	"time"
)

// Entry is one favourited product.
type Entry struct {
	ProductID string
	Name      string
	Price     int
	ImageURL  string
	AddedAt   time.Time
}

var (
	ErrInvalidUserID    = errors.New("wishlist: invalid userId")
	ErrInvalidProductID = errors.New("wishlist: invalid productId")
)

func NewEntry(productID, name string, price int, imageURL string, addedAt time.Time) (Entry, error) {
	e := Entry{
		ProductID: strings.TrimSpace(productID),
		Name:      strings.TrimSpace(name),
		Price:     price,
		ImageURL:  strings.TrimSpace(imageURL),
		AddedAt:   addedAt.UTC(),
	}
	if e.ProductID == "" {
		return Entry{}, ErrInvalidProductID
	}
	return e, nil
}
