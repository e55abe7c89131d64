// internal/adapters/out/db/product_repository_pg.go
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	proddom "nursery/internal/domain/product"
)

// PostgreSQL implementation of product.Repository (the catalog is
// admin-managed relational data; orders stay in Firestore).
type ProductRepositoryPG struct {
	DB *sql.DB
}

func NewProductRepositoryPG(db *sql.DB) *ProductRepositoryPG {
	return &ProductRepositoryPG{DB: db}
}

const productColumns = `
  id, name, price, type, description,
  material, size, sowing, sunlight, growth_period,
  tags, image_url, created_at, updated_at`

// ========================
// RepositoryPort impl
// ========================

func (r *ProductRepositoryPG) GetByID(ctx context.Context, id string) (proddom.Product, error) {
	const q = `SELECT` + productColumns + ` FROM products WHERE id = $1`

	row := r.DB.QueryRowContext(ctx, q, strings.TrimSpace(id))
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return proddom.Product{}, proddom.ErrNotFound
		}
		return proddom.Product{}, err
	}
	return p, nil
}

func (r *ProductRepositoryPG) List(ctx context.Context, f proddom.Filter) ([]proddom.Product, error) {
	var (
		where []string
		args  []any
	)
	if f.Type != nil {
		args = append(args, string(*f.Type))
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if q := strings.TrimSpace(f.SearchQuery); q != "" {
		args = append(args, "%"+strings.ToLower(q)+"%")
		where = append(where, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)))
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	q := `SELECT` + productColumns + ` FROM products ` + whereSQL + ` ORDER BY name ASC, id ASC`

	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []proddom.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProductRepositoryPG) Create(ctx context.Context, p proddom.Product) (proddom.Product, error) {
	const q = `
INSERT INTO products (
  id, name, price, type, description,
  material, size, sowing, sunlight, growth_period,
  tags, image_url, created_at, updated_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`

	_, err := r.DB.ExecContext(ctx, q,
		p.ID, p.Name, p.Price, string(p.Type), p.Description,
		p.Material, p.Size, p.Sowing, p.Sunlight, p.GrowthPeriod,
		pq.Array(p.Tags), p.ImageURL, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return proddom.Product{}, fmt.Errorf("insert product %s: %w", p.ID, err)
	}
	return p, nil
}

func (r *ProductRepositoryPG) Update(ctx context.Context, p proddom.Product) (proddom.Product, error) {
	const q = `
UPDATE products SET
  name = $2, price = $3, type = $4, description = $5,
  material = $6, size = $7, sowing = $8, sunlight = $9, growth_period = $10,
  tags = $11, image_url = $12, updated_at = $13
WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, q,
		p.ID, p.Name, p.Price, string(p.Type), p.Description,
		p.Material, p.Size, p.Sowing, p.Sunlight, p.GrowthPeriod,
		pq.Array(p.Tags), p.ImageURL, p.UpdatedAt,
	)
	if err != nil {
		return proddom.Product{}, fmt.Errorf("update product %s: %w", p.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return proddom.Product{}, proddom.ErrNotFound
	}
	return p, nil
}

func (r *ProductRepositoryPG) SetImageURL(ctx context.Context, id, url string) error {
	const q = `UPDATE products SET image_url = $2, updated_at = now() WHERE id = $1`

	res, err := r.DB.ExecContext(ctx, q, strings.TrimSpace(id), url)
	if err != nil {
		return fmt.Errorf("set image url %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return proddom.ErrNotFound
	}
	return nil
}

// ========================
// Scanning
// ========================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (proddom.Product, error) {
	var (
		p    proddom.Product
		typ  string
		tags pq.StringArray
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &typ, &p.Description,
		&p.Material, &p.Size, &p.Sowing, &p.Sunlight, &p.GrowthPeriod,
		&tags, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return proddom.Product{}, err
	}
	p.Type = proddom.Type(typ)
	p.Tags = tags
	return p, nil
}
