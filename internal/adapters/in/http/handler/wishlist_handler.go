// internal/adapters/in/http/handler/wishlist_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"nursery/internal/adapters/in/http/middleware"
	"nursery/internal/application/usecase"
)

// WishlistHandler は /wishlist 関連のエンドポイントを担当します。
//
//	GET    /wishlist                    一覧
//	POST   /wishlist                    追加（同一商品は上書き）
//	DELETE /wishlist/{productId}        削除
//	POST   /wishlist/{productId}/move   カートへ移動
type WishlistHandler struct {
	uc *usecase.WishlistUsecase
}

func NewWishlistHandler(uc *usecase.WishlistUsecase) http.Handler {
	return &WishlistHandler{uc: uc}
}

type wishlistAddRequest struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int    `json:"price"`
	ImageURL  string `json:"imageUrl,omitempty"`
}

// ServeHTTP はHTTPルーティングの入口です。
func (h *WishlistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/wishlist")
	path = strings.TrimPrefix(path, "/")

	switch {
	case r.Method == http.MethodGet && path == "":
		h.list(w, r)
	case r.Method == http.MethodPost && path == "":
		h.add(w, r)
	case r.Method == http.MethodPost && strings.HasSuffix(path, "/move"):
		h.moveToCart(w, r, strings.TrimSuffix(path, "/move"))
	case r.Method == http.MethodDelete && path != "":
		h.remove(w, r, path)
	default:
		notFound(w)
	}
}

// GET /wishlist
func (h *WishlistHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.CurrentUID(ctx)

	entries, err := h.uc.List(ctx, uid)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// POST /wishlist
func (h *WishlistHandler) add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.CurrentUID(ctx)

	var req wishlistAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	if err := h.uc.Add(ctx, uid, req.ProductID, req.Name, req.Price, req.ImageURL); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

// DELETE /wishlist/{productId}
func (h *WishlistHandler) remove(w http.ResponseWriter, r *http.Request, productID string) {
	ctx := r.Context()
	uid := middleware.CurrentUID(ctx)

	if err := h.uc.Remove(ctx, uid, strings.TrimSpace(productID)); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// POST /wishlist/{productId}/move
func (h *WishlistHandler) moveToCart(w http.ResponseWriter, r *http.Request, productID string) {
	ctx := r.Context()
	uid := middleware.CurrentUID(ctx)

	item, err := h.uc.MoveToCart(ctx, uid, strings.TrimSpace(productID))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
