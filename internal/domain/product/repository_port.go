// internal/domain/product/repository_port.go
package product

import "context"

// Repository is the catalog persistence port (Postgres-backed).
type Repository interface {
	GetByID(ctx context.Context, id string) (Product, error)
	List(ctx context.Context, f Filter) ([]Product, error)

	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, p Product) (Product, error)
	SetImageURL(ctx context.Context, id, url string) error
}
