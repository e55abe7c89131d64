// internal/adapters/in/http/handler/tracking_handler.go
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"nursery/internal/adapters/in/http/middleware"
	"nursery/internal/adapters/out/screen"
	"nursery/internal/application/tracking"
	"nursery/internal/application/usecase"
	"nursery/internal/domain/geo"
	orderdom "nursery/internal/domain/order"
)

// TrackingHandler は購入者側のライブ追跡画面を担当します。
//
//	POST   /tracking/sessions        追跡開始（自分の注文のみ）
//	GET    /tracking/sessions/{id}   現在位置と画面イベントの取得
//	DELETE /tracking/sessions/{id}   画面クローズ
type TrackingHandler struct {
	orders   *usecase.OrderUsecase
	watcher  orderdom.Watcher
	sessions *SessionRegistry
}

func NewTrackingHandler(orders *usecase.OrderUsecase, watcher orderdom.Watcher, sessions *SessionRegistry) http.Handler {
	return &TrackingHandler{orders: orders, watcher: watcher, sessions: sessions}
}

type startTrackingRequest struct {
	OrderID string `json:"orderId"`
}

// sessionStateResponse is shared with the delivery handler: one poll
// returns the coordinates to draw plus the pending screen events.
type sessionStateResponse struct {
	SessionID       string          `json:"sessionId"`
	Destination     geo.Coordinate  `json:"destination"`
	CourierPosition *geo.Coordinate `json:"courierPosition,omitempty"`
	Events          []screen.Event  `json:"events"`
	// Error carries a failed confirm outcome. The session itself is
	// still live and the operation can be retried.
	Error string `json:"error,omitempty"`
}

func sessionState(id string, ls *liveSession) sessionStateResponse {
	resp := sessionStateResponse{
		SessionID:   id,
		Destination: ls.session.Destination(),
		Events:      ls.journal.Drain(),
	}
	if resp.Events == nil {
		resp.Events = []screen.Event{}
	}
	if pos, ok := ls.session.CourierPosition(); ok {
		resp.CourierPosition = &pos
	}
	return resp
}

func sessionStateWithError(id string, ls *liveSession, err error) sessionStateResponse {
	resp := sessionState(id, ls)
	resp.Error = err.Error()
	return resp
}

// ServeHTTP はHTTPルーティングの入口です。
func (h *TrackingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/tracking/sessions")
	path = strings.TrimPrefix(path, "/")

	switch {
	case r.Method == http.MethodPost && path == "":
		h.start(w, r)
	case r.Method == http.MethodGet && path != "":
		h.state(w, r, path)
	case r.Method == http.MethodDelete && path != "":
		h.close(w, r, path)
	default:
		notFound(w)
	}
}

// POST /tracking/sessions
func (h *TrackingHandler) start(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.CurrentUID(ctx)

	var req startTrackingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}
	orderID := strings.TrimSpace(req.OrderID)
	if orderID == "" {
		badRequest(w, "invalid orderId")
		return
	}

	journal := screen.NewJournal()
	sess := tracking.NewCustomerSession(tracking.Config{
		UserID:    uid,
		OrderID:   orderID,
		Store:     h.orders,
		Watcher:   h.watcher,
		Navigator: journal,
		Alerter:   journal,
	})
	// The subscription outlives this request, so it must not hang
	// off the request context.
	if err := sess.Start(context.Background()); err != nil {
		sess.Close()
		writeErr(w, err)
		return
	}

	ls := &liveSession{session: sess, journal: journal, ownerUID: uid}
	id := h.sessions.put(ls)
	writeJSON(w, http.StatusCreated, sessionState(id, ls))
}

// GET /tracking/sessions/{id}
func (h *TrackingHandler) state(w http.ResponseWriter, r *http.Request, id string) {
	uid := middleware.CurrentUID(r.Context())

	ls, ok := h.sessions.get(id, uid)
	if !ok {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, sessionState(id, ls))
}

// DELETE /tracking/sessions/{id}
func (h *TrackingHandler) close(w http.ResponseWriter, r *http.Request, id string) {
	uid := middleware.CurrentUID(r.Context())

	if !h.sessions.remove(id, uid) {
		notFound(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "closed"})
}
