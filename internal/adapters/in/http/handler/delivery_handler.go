// internal/adapters/in/http/handler/delivery_handler.go
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"nursery/internal/adapters/in/http/middleware"
	"nursery/internal/adapters/out/device"
	"nursery/internal/adapters/out/screen"
	"nursery/internal/application/tracking"
	"nursery/internal/application/usecase"
	"nursery/internal/domain/geo"
	orderdom "nursery/internal/domain/order"
	userdom "nursery/internal/domain/user"
)

// DeliveryHandler は配達員側のエンドポイントを担当します。
//
//	GET    /delivery/orders                  未配達一覧
//	POST   /delivery/position                端末の現在地フィックス報告
//	POST   /delivery/sessions                配達画面のマウント
//	GET    /delivery/sessions/{id}           状態取得（ポーリング）
//	POST   /delivery/sessions/{id}/confirm   配達完了の確認ゲート
//	DELETE /delivery/sessions/{id}           画面クローズ
type DeliveryHandler struct {
	orders   *usecase.OrderUsecase
	watcher  orderdom.Watcher
	fixes    *device.FixStore
	sessions *SessionRegistry

	publishInterval time.Duration
}

func NewDeliveryHandler(
	orders *usecase.OrderUsecase,
	watcher orderdom.Watcher,
	fixes *device.FixStore,
	sessions *SessionRegistry,
	publishInterval time.Duration,
) http.Handler {
	return &DeliveryHandler{
		orders:          orders,
		watcher:         watcher,
		fixes:           fixes,
		sessions:        sessions,
		publishInterval: publishInterval,
	}
}

// --------------------------------------------------
// リクエスト型
// --------------------------------------------------

type positionReport struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	// PermissionDenied reports that the device refused location
	// access. The flag sticks until a real fix arrives.
	PermissionDenied bool `json:"permissionDenied,omitempty"`
}

type startDeliveryRequest struct {
	UserID  string `json:"userId"`
	OrderID string `json:"orderId"`
}

type confirmRequest struct {
	Confirm bool `json:"confirm"`
}

// ServeHTTP はHTTPルーティングの入口です。
func (h *DeliveryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !requireDelivery(w, r) {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/delivery")
	path = strings.TrimPrefix(path, "/")

	switch {
	case r.Method == http.MethodGet && path == "orders":
		h.pending(w, r)
	case r.Method == http.MethodPost && path == "position":
		h.reportPosition(w, r)
	case r.Method == http.MethodPost && path == "sessions":
		h.start(w, r)
	case r.Method == http.MethodPost && strings.HasPrefix(path, "sessions/") && strings.HasSuffix(path, "/confirm"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "sessions/"), "/confirm")
		h.confirm(w, r, id)
	case r.Method == http.MethodGet && strings.HasPrefix(path, "sessions/"):
		h.state(w, r, strings.TrimPrefix(path, "sessions/"))
	case r.Method == http.MethodDelete && strings.HasPrefix(path, "sessions/"):
		h.close(w, r, strings.TrimPrefix(path, "sessions/"))
	default:
		notFound(w)
	}
}

// GET /delivery/orders
func (h *DeliveryHandler) pending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orders, err := h.orders.PendingDeliveries(ctx)
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

// POST /delivery/position
func (h *DeliveryHandler) reportPosition(w http.ResponseWriter, r *http.Request) {
	uid := middleware.CurrentUID(r.Context())

	var req positionReport
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	if req.PermissionDenied {
		h.fixes.ReportPermissionDenied(uid)
		writeJSON(w, http.StatusOK, map[string]string{"status": "permission_denied"})
		return
	}

	h.fixes.Report(uid, geo.Coordinate{Latitude: req.Latitude, Longitude: req.Longitude}, time.Now())
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// POST /delivery/sessions
func (h *DeliveryHandler) start(w http.ResponseWriter, r *http.Request) {
	uid := middleware.CurrentUID(r.Context())

	var req startDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}
	userID := strings.TrimSpace(req.UserID)
	orderID := strings.TrimSpace(req.OrderID)
	if userID == "" || orderID == "" {
		badRequest(w, "userId and orderId are required")
		return
	}

	journal := screen.NewJournal()
	prompt := screen.NewRelayPrompter()
	sess := tracking.NewDeliverySession(tracking.Config{
		UserID:          userID,
		OrderID:         orderID,
		Store:           h.orders,
		Watcher:         h.watcher,
		Locator:         h.fixes.ForCourier(uid),
		Navigator:       journal,
		Prompter:        prompt,
		Alerter:         journal,
		PublishInterval: h.publishInterval,
	})
	// Publisher and subscription outlive this request.
	if err := sess.Start(context.Background()); err != nil {
		sess.Close()
		writeErr(w, err)
		return
	}

	ls := &liveSession{session: sess, journal: journal, prompt: prompt, ownerUID: uid}
	id := h.sessions.put(ls)
	writeJSON(w, http.StatusCreated, sessionState(id, ls))
}

// GET /delivery/sessions/{id}
func (h *DeliveryHandler) state(w http.ResponseWriter, r *http.Request, id string) {
	uid := middleware.CurrentUID(r.Context())

	ls, ok := h.sessions.get(id, uid)
	if !ok {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, sessionState(id, ls))
}

// POST /delivery/sessions/{id}/confirm
//
// The client runs the dialog; the request carries the outcome. A
// declined dialog changes nothing and the session stays live. A
// failed terminal write comes back as an error and the client may
// simply confirm again.
func (h *DeliveryHandler) confirm(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	uid := middleware.CurrentUID(ctx)

	ls, ok := h.sessions.get(id, uid)
	if !ok {
		notFound(w)
		return
	}

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	ls.prompt.SetAnswer(req.Confirm)
	if err := ls.session.ConfirmDelivered(ctx); err != nil {
		writeJSON(w, http.StatusOK, sessionStateWithError(id, ls, err))
		return
	}
	writeJSON(w, http.StatusOK, sessionState(id, ls))
}

// DELETE /delivery/sessions/{id}
func (h *DeliveryHandler) close(w http.ResponseWriter, r *http.Request, id string) {
	uid := middleware.CurrentUID(r.Context())

	if !h.sessions.remove(id, uid) {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}

func requireDelivery(w http.ResponseWriter, r *http.Request) bool {
	role := middleware.CurrentRole(r.Context())
	if role != userdom.RoleDelivery && role != userdom.RoleAdmin {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "delivery only"})
		return false
	}
	return true
}
