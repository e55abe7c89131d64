// internal/adapters/out/gcs/image_uploader.go
package gcs

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// ImageUploader implements usecase.ImageUploader on Cloud Storage.
// Objects land at products/{productId}/{uuid}{ext}; the bucket serves
// them publicly.
type ImageUploader struct {
	Client *storage.Client
	Bucket string
}

func NewImageUploader(client *storage.Client, bucket string) *ImageUploader {
	return &ImageUploader{Client: client, Bucket: bucket}
}

func (u *ImageUploader) Upload(ctx context.Context, productID, contentType string, r io.Reader) (string, error) {
	if u.Client == nil {
		return "", fmt.Errorf("storage client is nil")
	}
	if u.Bucket == "" {
		return "", fmt.Errorf("bucket is not configured")
	}

	object := fmt.Sprintf("products/%s/%s%s", productID, uuid.NewString(), extFor(contentType))

	w := u.Client.Bucket(u.Bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("upload %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize %s: %w", object, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.Bucket, object), nil
}

func extFor(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
