// internal/domain/product/entity.go
package product

import (
	"errors"
	"strings"
	"time"
)

// Type is the catalog category.
type Type string

const (
	TypePot     Type = "Pot"
	TypeSeeds   Type = "Seeds"
	TypePlant   Type = "Plant"
	TypeService Type = "Service"
)

// Product is one catalog entry (pots, seeds, plants, gardening
// services). Care attributes are optional and depend on the type:
// pots carry material/size, seeds carry sowing/sunlight/growth period.
type Product struct {
	ID          string
	Name        string
	Price       int
	Type        Type
	Description string

	// Pot attributes
	Material string
	Size     string

	// Seed / plant attributes
	Sowing       string
	Sunlight     string
	GrowthPeriod string

	Tags     []string
	ImageURL string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Errors
var (
	ErrNotFound = errors.New("product: not found")

	ErrInvalidID    = errors.New("product: invalid id")
	ErrInvalidName  = errors.New("product: invalid name")
	ErrInvalidPrice = errors.New("product: invalid price")
	ErrInvalidType  = errors.New("product: invalid type")
)

// Filter narrows catalog listings.
type Filter struct {
	Type        *Type
	SearchQuery string // case-insensitive substring on name
}

func New(id, name string, price int, typ Type, createdAt time.Time) (Product, error) {
	p := Product{
		ID:        strings.TrimSpace(id),
		Name:      strings.TrimSpace(name),
		Price:     price,
		Type:      typ,
		CreatedAt: createdAt.UTC(),
		UpdatedAt: createdAt.UTC(),
	}
	if err := p.validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (p *Product) validate() error {
	if p.ID == "" {
		return ErrInvalidID
	}
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	switch p.Type {
	case TypePot, TypeSeeds, TypePlant, TypeService:
	default:
		return ErrInvalidType
	}
	return nil
}

// Matches applies f in-process (the PG adapter pushes what it can into
// SQL and uses this for the rest).
func (p *Product) Matches(f Filter) bool {
	if f.Type != nil && p.Type != *f.Type {
		return false
	}
	if q := strings.TrimSpace(f.SearchQuery); q != "" {
		if !strings.Contains(strings.ToLower(p.Name), strings.ToLower(q)) {
			return false
		}
	}
	return true
}
