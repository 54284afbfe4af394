package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ssargent/venuedb/pkg/storage"
	"github.com/ssargent/venuedb/pkg/store"
)

func TestAPIKeyMiddleware(t *testing.T) {
	protected := apiKeyMiddleware("venue-key")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendSuccess(w, "ok")
	}))

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedError  string
	}{
		{"matching key", "venue-key", http.StatusOK, ""},
		{"no header", "", http.StatusUnauthorized, "Missing X-API-Key header"},
		{"other key", "venue-key-2", http.StatusUnauthorized, "Invalid API key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/venues", nil)
			if tt.header != "" {
				req.Header.Set("X-API-Key", tt.header)
			}
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			response := decodeEnvelope(t, w)
			if response.Error != tt.expectedError {
				t.Errorf("Expected error %q, got %q", tt.expectedError, response.Error)
			}
		})
	}
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	if contentType := w.Header().Get("Content-Type"); contentType != "application/json" {
		t.Fatalf("Expected Content-Type application/json, got %s", contentType)
	}
	var response APIResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return response
}

func TestSendSuccess(t *testing.T) {
	w := httptest.NewRecorder()

	sendSuccess(w, map[string]int{"venues": 3})

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	response := decodeEnvelope(t, w)
	if !response.Success || response.Error != "" {
		t.Errorf("Expected a successful envelope, got %+v", response)
	}
	data, ok := response.Data.(map[string]interface{})
	if !ok || data["venues"] != float64(3) {
		t.Errorf("Expected data venues=3, got %v", response.Data)
	}
}

func TestSendStoreError(t *testing.T) {
	w := httptest.NewRecorder()

	sendStoreError(w, fmt.Errorf("%w: seats 4,5", store.ErrSeatUnavailable))

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", w.Code)
	}
	response := decodeEnvelope(t, w)
	if response.Success {
		t.Error("Expected success=false")
	}
	if response.Error != "seat not available: seats 4,5" {
		t.Errorf("Unexpected error message %q", response.Error)
	}
}

func TestStoreErrorStatus(t *testing.T) {
	tests := []struct {
		err            error
		expectedStatus int
	}{
		{store.ErrVenueNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: 7 in venue 1", store.ErrSeatNotFound), http.StatusNotFound},
		{storage.ErrSnapshotNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: empty seat block", store.ErrInvalidInput), http.StatusBadRequest},
		{store.ErrInvalidTransition, http.StatusBadRequest},
		{store.ErrNoSeatingPlan, http.StatusBadRequest},
		{store.ErrSeatUnavailable, http.StatusConflict},
		{store.ErrSnapshotsDisabled, http.StatusNotImplemented},
		{fmt.Errorf("failed to write data file: disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := storeErrorStatus(tt.err); got != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, got)
			}
		})
	}
}
