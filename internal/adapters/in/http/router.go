// internal/adapters/in/http/router.go
package httpin

import (
	"net/http"
	"time"

	usecase "nursery/internal/application/usecase"

	// ハンドラ群
	"nursery/internal/adapters/in/http/handler"
	"nursery/internal/adapters/in/http/middleware"

	"nursery/internal/adapters/out/device"
	orderdom "nursery/internal/domain/order"
)

// RouterDeps collects all usecases (and other dependencies) injected from main.go.
type RouterDeps struct {
	OrderUC    *usecase.OrderUsecase
	ProductUC  *usecase.ProductUsecase
	WishlistUC *usecase.WishlistUsecase
	ReminderUC *usecase.ReminderUsecase

	// OrderWatcher feeds the live tracking sessions.
	OrderWatcher orderdom.Watcher

	// FixStore holds the couriers' device fixes.
	FixStore *device.FixStore

	// Sessions is the shared registry of live tracking screens.
	Sessions *handler.SessionRegistry

	PublishInterval time.Duration

	// Auth is applied around every route except /healthz. nil skips
	// authentication entirely (local development).
	Auth *middleware.AuthMiddleware
}

// NewRouter sets up HTTP routing for all endpoints.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// 以降、Usecase が存在するものだけマウントする
	if deps.ProductUC != nil {
		mux.Handle("/products", handler.NewProductHandler(deps.ProductUC))
		mux.Handle("/products/", handler.NewProductHandler(deps.ProductUC))
	}

	if deps.OrderUC != nil {
		mux.Handle("/orders", handler.NewOrderHandler(deps.OrderUC))
		mux.Handle("/orders/", handler.NewOrderHandler(deps.OrderUC))
	}

	if deps.WishlistUC != nil {
		mux.Handle("/wishlist", handler.NewWishlistHandler(deps.WishlistUC))
		mux.Handle("/wishlist/", handler.NewWishlistHandler(deps.WishlistUC))
	}

	if deps.ReminderUC != nil {
		mux.Handle("/reminders", handler.NewReminderHandler(deps.ReminderUC))
		mux.Handle("/reminders/", handler.NewReminderHandler(deps.ReminderUC))
	}

	if deps.OrderUC != nil && deps.OrderWatcher != nil && deps.Sessions != nil {
		mux.Handle("/tracking/", handler.NewTrackingHandler(deps.OrderUC, deps.OrderWatcher, deps.Sessions))

		if deps.FixStore != nil {
			mux.Handle("/delivery/", handler.NewDeliveryHandler(
				deps.OrderUC, deps.OrderWatcher, deps.FixStore, deps.Sessions, deps.PublishInterval,
			))
		}
	}

	var inner http.Handler = mux
	if deps.Auth != nil {
		inner = deps.Auth.Handler(inner)
	}

	// Health check (always on, no auth)
	outer := http.NewServeMux()
	outer.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	outer.Handle("/", inner)

	return middleware.Recover(outer)
}
