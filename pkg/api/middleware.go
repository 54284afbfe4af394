package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ssargent/venuedb/pkg/storage"
	"github.com/ssargent/venuedb/pkg/store"
)

// apiKeyMiddleware validates the X-API-Key header
func apiKeyMiddleware(expectedKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				sendError(w, "Missing X-API-Key header", http.StatusUnauthorized)
				return
			}
			if apiKey != expectedKey {
				sendError(w, "Invalid API key", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// sendSuccess sends a successful JSON response
func sendSuccess(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	response := APIResponse{
		Success: true,
		Data:    data,
	}
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(response)
}

// sendError sends an error JSON response
func sendError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	response := APIResponse{
		Success: false,
		Error:   message,
	}
	_ = json.NewEncoder(w).Encode(response)
}

// storeErrorStatus maps store errors to HTTP status codes
func storeErrorStatus(err error) int {
	switch {
	case errors.Is(err, store.ErrVenueNotFound),
		errors.Is(err, store.ErrSeatNotFound),
		errors.Is(err, storage.ErrSnapshotNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalidInput),
		errors.Is(err, store.ErrInvalidTransition),
		errors.Is(err, store.ErrNoSeatingPlan):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrSeatUnavailable):
		return http.StatusConflict
	case errors.Is(err, store.ErrSnapshotsDisabled):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// sendStoreError sends err with the status code matching its kind
func sendStoreError(w http.ResponseWriter, err error) {
	sendError(w, err.Error(), storeErrorStatus(err))
}
