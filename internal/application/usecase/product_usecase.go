// internal/application/usecase/product_usecase.go
package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	proddom "nursery/internal/domain/product"
)

// ImageUploader stores a product image and returns its public URL.
type ImageUploader interface {
	Upload(ctx context.Context, productID string, contentType string, r io.Reader) (url string, err error)
}

// ProductUsecase serves the catalog: customer browsing plus admin
// management (create/update, image upload).
type ProductUsecase struct {
	repo     proddom.Repository
	uploader ImageUploader // optional; image upload rejected when absent
	now      func() time.Time
}

func NewProductUsecase(repo proddom.Repository, uploader ImageUploader) *ProductUsecase {
	return &ProductUsecase{repo: repo, uploader: uploader, now: time.Now}
}

func (u *ProductUsecase) GetByID(ctx context.Context, id string) (proddom.Product, error) {
	return u.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (u *ProductUsecase) List(ctx context.Context, f proddom.Filter) ([]proddom.Product, error) {
	return u.repo.List(ctx, f)
}

type CreateProductInput struct {
	ID          string
	Name        string
	Price       int
	Type        proddom.Type
	Description string

	Material string
	Size     string

	Sowing       string
	Sunlight     string
	GrowthPeriod string

	Tags     []string
	ImageURL string
}

func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (proddom.Product, error) {
	p, err := proddom.New(in.ID, in.Name, in.Price, in.Type, u.now())
	if err != nil {
		return proddom.Product{}, err
	}
	p.Description = strings.TrimSpace(in.Description)
	p.Material = strings.TrimSpace(in.Material)
	p.Size = strings.TrimSpace(in.Size)
	p.Sowing = strings.TrimSpace(in.Sowing)
	p.Sunlight = strings.TrimSpace(in.Sunlight)
	p.GrowthPeriod = strings.TrimSpace(in.GrowthPeriod)
	p.Tags = in.Tags
	p.ImageURL = strings.TrimSpace(in.ImageURL)

	return u.repo.Create(ctx, p)
}

func (u *ProductUsecase) Update(ctx context.Context, p proddom.Product) (proddom.Product, error) {
	p.UpdatedAt = u.now().UTC()
	return u.repo.Update(ctx, p)
}

// AttachImage uploads the image bytes and records the resulting URL
// on the product.
func (u *ProductUsecase) AttachImage(ctx context.Context, productID, contentType string, r io.Reader) (string, error) {
	if u.uploader == nil {
		return "", fmt.Errorf("image upload not configured")
	}
	productID = strings.TrimSpace(productID)
	if _, err := u.repo.GetByID(ctx, productID); err != nil {
		return "", err
	}
	url, err := u.uploader.Upload(ctx, productID, contentType, r)
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}
	if err := u.repo.SetImageURL(ctx, productID, url); err != nil {
		return "", err
	}
	return url, nil
}
