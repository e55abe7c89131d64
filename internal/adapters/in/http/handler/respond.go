// internal/adapters/in/http/handler/respond.go
package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"nursery/internal/domain/cart"
	orderdom "nursery/internal/domain/order"
	proddom "nursery/internal/domain/product"
	remdom "nursery/internal/domain/reminder"
	userdom "nursery/internal/domain/user"
	wishdom "nursery/internal/domain/wishlist"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps domain errors onto status codes. Unknown errors are
// 500 with a generic body; details go to the log, not the client.
func writeErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orderdom.ErrNotFound),
		errors.Is(err, proddom.ErrNotFound),
		errors.Is(err, remdom.ErrNotFound),
		errors.Is(err, userdom.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})

	case errors.Is(err, cart.ErrEmpty),
		errors.Is(err, orderdom.ErrInvalidItems),
		errors.Is(err, orderdom.ErrInvalidLocation),
		errors.Is(err, orderdom.ErrInvalidTotal),
		errors.Is(err, proddom.ErrInvalidName),
		errors.Is(err, proddom.ErrInvalidPrice),
		errors.Is(err, proddom.ErrInvalidType),
		errors.Is(err, proddom.ErrInvalidID),
		errors.Is(err, remdom.ErrInvalidTitle),
		errors.Is(err, remdom.ErrInvalidDays),
		errors.Is(err, remdom.ErrInvalidTime),
		errors.Is(err, wishdom.ErrInvalidProductID):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})

	default:
		log.Printf("[http] internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal"})
	}
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}
