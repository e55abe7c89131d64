// internal/adapters/in/http/handler/order_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"nursery/internal/adapters/in/http/middleware"
	"nursery/internal/application/usecase"
	"nursery/internal/domain/geo"
	orderdom "nursery/internal/domain/order"
)

// OrderHandler は /orders 関連のエンドポイントを担当します。
//
//	POST /orders        チェックアウト
//	GET  /orders        注文履歴（新しい順）
//	GET  /orders/{id}   単一取得
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) http.Handler {
	return &OrderHandler{uc: uc}
}

// --------------------------------------------------
// リクエスト / レスポンス型
// --------------------------------------------------

type checkoutRequest struct {
	Items       []orderdom.Item `json:"items"`
	Destination geo.Coordinate  `json:"destination"`
}

type orderResponse struct {
	OrderID            string          `json:"orderId"`
	Name               string          `json:"name,omitempty"`
	Email              string          `json:"email,omitempty"`
	Items              []orderdom.Item `json:"items"`
	Total              int             `json:"total"`
	Location           geo.Coordinate  `json:"location"`
	DeliveryStatus     string          `json:"deliveryStatus"`
	DeliveryLocation   geo.Coordinate  `json:"deliveryLocation"`
	DeliveryLocationAt *time.Time      `json:"deliveryLocationAt,omitempty"`
	Timestamp          time.Time       `json:"timestamp"`
}

func toOrderResponse(o orderdom.Order) orderResponse {
	resp := orderResponse{
		OrderID:          o.OrderID,
		Name:             o.Name,
		Email:            o.Email,
		Items:            o.Items,
		Total:            o.Total,
		Location:         o.Location,
		DeliveryStatus:   string(o.DeliveryStatus),
		DeliveryLocation: o.DeliveryLocation,
		Timestamp:        o.Timestamp,
	}
	if !o.DeliveryLocationAt.IsZero() {
		at := o.DeliveryLocationAt
		resp.DeliveryLocationAt = &at
	}
	return resp
}

// ServeHTTP はHTTPルーティングの入口です。
func (h *OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && (r.URL.Path == "/orders" || r.URL.Path == "/orders/"):
		h.checkout(w, r)
	case r.Method == http.MethodGet && (r.URL.Path == "/orders" || r.URL.Path == "/orders/"):
		h.history(w, r)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/orders/"):
		id := strings.TrimPrefix(r.URL.Path, "/orders/")
		h.get(w, r, id)
	default:
		notFound(w)
	}
}

// POST /orders
func (h *OrderHandler) checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.CurrentUID(ctx)

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	o, err := h.uc.Checkout(ctx, usecase.CheckoutInput{
		UserID:      uid,
		Items:       req.Items,
		Destination: req.Destination,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(o))
}

// GET /orders
func (h *OrderHandler) history(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.CurrentUID(ctx)

	orders, err := h.uc.History(ctx, uid)
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /orders/{id}
func (h *OrderHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	uid := middleware.CurrentUID(ctx)

	id = strings.TrimSpace(id)
	if id == "" {
		badRequest(w, "invalid id")
		return
	}

	o, err := h.uc.GetByID(ctx, uid, id)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}
