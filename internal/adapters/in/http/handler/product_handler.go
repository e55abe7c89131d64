// internal/adapters/in/http/handler/product_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"nursery/internal/adapters/in/http/middleware"
	"nursery/internal/application/usecase"
	proddom "nursery/internal/domain/product"
	userdom "nursery/internal/domain/user"
)

// ProductHandler は /products 関連のエンドポイントを担当します。
//
//	GET  /products              カタログ一覧（?type= / ?q= で絞り込み）
//	GET  /products/{id}         単一取得
//	POST /products              登録（admin）
//	PUT  /products/{id}         更新（admin）
//	POST /products/{id}/image   画像アップロード（admin）
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewProductHandler(uc *usecase.ProductUsecase) http.Handler {
	return &ProductHandler{uc: uc}
}

// --------------------------------------------------
// リクエスト / レスポンス型
// --------------------------------------------------

type productRequest struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Type        string `json:"type"`
	Description string `json:"description"`

	Material string `json:"material,omitempty"`
	Size     string `json:"size,omitempty"`

	Sowing       string `json:"sowing,omitempty"`
	Sunlight     string `json:"sunlight,omitempty"`
	GrowthPeriod string `json:"growthPeriod,omitempty"`

	Tags     []string `json:"tags,omitempty"`
	ImageURL string   `json:"imageUrl,omitempty"`
}

type productResponse struct {
	productRequest
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toProductResponse(p proddom.Product) productResponse {
	return productResponse{
		productRequest: productRequest{
			ID:           p.ID,
			Name:         p.Name,
			Price:        p.Price,
			Type:         string(p.Type),
			Description:  p.Description,
			Material:     p.Material,
			Size:         p.Size,
			Sowing:       p.Sowing,
			Sunlight:     p.Sunlight,
			GrowthPeriod: p.GrowthPeriod,
			Tags:         p.Tags,
			ImageURL:     p.ImageURL,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ServeHTTP はHTTPルーティングの入口です。
func (h *ProductHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/products")
	path = strings.TrimPrefix(path, "/")

	switch {
	case r.Method == http.MethodGet && path == "":
		h.list(w, r)
	case r.Method == http.MethodPost && path == "":
		h.create(w, r)
	case r.Method == http.MethodPost && strings.HasSuffix(path, "/image"):
		h.uploadImage(w, r, strings.TrimSuffix(path, "/image"))
	case r.Method == http.MethodGet && path != "":
		h.get(w, r, path)
	case r.Method == http.MethodPut && path != "":
		h.update(w, r, path)
	default:
		notFound(w)
	}
}

// GET /products?type=Pot&q=jade
func (h *ProductHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var f proddom.Filter
	if t := strings.TrimSpace(r.URL.Query().Get("type")); t != "" {
		typ := proddom.Type(t)
		f.Type = &typ
	}
	f.SearchQuery = strings.TrimSpace(r.URL.Query().Get("q"))

	products, err := h.uc.List(ctx, f)
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /products/{id}
func (h *ProductHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	id = strings.TrimSpace(id)
	if id == "" {
		badRequest(w, "invalid id")
		return
	}

	p, err := h.uc.GetByID(ctx, id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

// POST /products
func (h *ProductHandler) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !requireAdmin(w, r) {
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	p, err := h.uc.Create(ctx, usecase.CreateProductInput{
		ID:           req.ID,
		Name:         req.Name,
		Price:        req.Price,
		Type:         proddom.Type(req.Type),
		Description:  req.Description,
		Material:     req.Material,
		Size:         req.Size,
		Sowing:       req.Sowing,
		Sunlight:     req.Sunlight,
		GrowthPeriod: req.GrowthPeriod,
		Tags:         req.Tags,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(p))
}

// PUT /products/{id}
func (h *ProductHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	if !requireAdmin(w, r) {
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	existing, err := h.uc.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		writeErr(w, err)
		return
	}
	existing.Name = req.Name
	existing.Price = req.Price
	existing.Type = proddom.Type(req.Type)
	existing.Description = req.Description
	existing.Material = req.Material
	existing.Size = req.Size
	existing.Sowing = req.Sowing
	existing.Sunlight = req.Sunlight
	existing.GrowthPeriod = req.GrowthPeriod
	existing.Tags = req.Tags

	p, err := h.uc.Update(ctx, existing)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

// POST /products/{id}/image
// ボディは画像バイナリそのもので、Content-Type が拡張子を決めます。
func (h *ProductHandler) uploadImage(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	if !requireAdmin(w, r) {
		return
	}

	id = strings.TrimSpace(id)
	if id == "" {
		badRequest(w, "invalid id")
		return
	}

	contentType := r.Header.Get("Content-Type")
	url, err := h.uc.AttachImage(ctx, id, contentType, r.Body)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"imageUrl": url})
}

// requireAdmin rejects the request unless the caller carries the
// admin role. Write endpoints stay mounted on the shared mux, so the
// gate lives here rather than in the router.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if middleware.CurrentRole(r.Context()) != userdom.RoleAdmin {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "admin only"})
		return false
	}
	return true
}
