// internal/adapters/in/http/handler/reminder_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"nursery/internal/adapters/in/http/middleware"
	"nursery/internal/application/usecase"
	remdom "nursery/internal/domain/reminder"
)

// ReminderHandler は /reminders 関連のエンドポイントを担当します。
//
//	GET    /reminders        一覧
//	POST   /reminders        作成
//	DELETE /reminders/{id}   削除
type ReminderHandler struct {
	uc *usecase.ReminderUsecase
}

func NewReminderHandler(uc *usecase.ReminderUsecase) http.Handler {
	return &ReminderHandler{uc: uc}
}

// --------------------------------------------------
// リクエスト / レスポンス型
// --------------------------------------------------

type reminderRequest struct {
	Title string `json:"title"`
	// Days uses 0=Sunday .. 6=Saturday.
	Days   []int `json:"days"`
	Hour   int   `json:"hour"`
	Minute int   `json:"minute"`
}

type reminderResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Days      []int     `json:"days"`
	Hour      int       `json:"hour"`
	Minute    int       `json:"minute"`
	CreatedAt time.Time `json:"createdAt"`
}

func toReminderResponse(rem remdom.Reminder) reminderResponse {
	days := make([]int, 0, len(rem.Days))
	for _, d := range rem.Days {
		days = append(days, int(d))
	}
	return reminderResponse{
		ID:        rem.ID,
		Title:     rem.Title,
		Days:      days,
		Hour:      rem.Hour,
		Minute:    rem.Minute,
		CreatedAt: rem.CreatedAt,
	}
}

// ServeHTTP はHTTPルーティングの入口です。
func (h *ReminderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/reminders")
	path = strings.TrimPrefix(path, "/")

	switch {
	case r.Method == http.MethodGet && path == "":
		h.list(w, r)
	case r.Method == http.MethodPost && path == "":
		h.create(w, r)
	case r.Method == http.MethodDelete && path != "":
		h.delete(w, r, path)
	default:
		notFound(w)
	}
}

// GET /reminders
func (h *ReminderHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.CurrentUID(ctx)

	reminders, err := h.uc.ListByUser(ctx, uid)
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]reminderResponse, 0, len(reminders))
	for _, rem := range reminders {
		out = append(out, toReminderResponse(rem))
	}
	writeJSON(w, http.StatusOK, out)
}

// POST /reminders
func (h *ReminderHandler) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := middleware.CurrentUID(ctx)

	var req reminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	days := make([]time.Weekday, 0, len(req.Days))
	for _, d := range req.Days {
		days = append(days, time.Weekday(d))
	}

	rem, err := h.uc.Create(ctx, usecase.CreateReminderInput{
		UserID: uid,
		Title:  req.Title,
		Days:   days,
		Hour:   req.Hour,
		Minute: req.Minute,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReminderResponse(rem))
}

// DELETE /reminders/{id}
func (h *ReminderHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()
	uid := middleware.CurrentUID(ctx)

	if err := h.uc.Delete(ctx, uid, strings.TrimSpace(id)); err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
