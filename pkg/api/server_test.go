package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ssargent/venuedb/pkg/venue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type routerClient struct {
	t      *testing.T
	router http.Handler
}

func newRouterClient(t *testing.T) *routerClient {
	server, registry := setupTestServer(t)
	return &routerClient{t: t, router: NewRouter(server, registry)}
}

func (c *routerClient) do(method, path, body string) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("X-API-Key", "test-key")
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func (c *routerClient) data(w *httptest.ResponseRecorder, out interface{}) {
	c.t.Helper()
	var response testResponse
	require.NoError(c.t, json.NewDecoder(w.Body).Decode(&response))
	require.True(c.t, response.Success, response.Error)
	require.NoError(c.t, json.Unmarshal(response.Data, out))
}

func TestRouter_RequiresAPIKey(t *testing.T) {
	c := newRouterClient(t)

	req := httptest.NewRequest("GET", "/api/v1/venues", nil)
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req.Header.Set("X-API-Key", "wrong")
	w = httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Equal(t, http.StatusOK, c.do("GET", "/api/v1/health", "").Code)

	// health sits behind the key like every other /api/v1 route
	w = httptest.NewRecorder()
	c.router.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/health", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_SeatingFlow(t *testing.T) {
	c := newRouterClient(t)

	var v venue.Venue
	c.data(c.do("POST", "/api/v1/venues", `{"name":"Studio","city":"Portland","capacity":6}`), &v)
	require.Equal(t, int32(1), v.ID)

	// no plan yet
	assert.Equal(t, http.StatusBadRequest, c.do("GET", "/api/v1/venues/1/plan", "").Code)
	assert.Equal(t, http.StatusBadRequest, c.do("PUT", "/api/v1/venues/1/plan", `{"rows":0,"columns":3}`).Code)

	c.data(c.do("PUT", "/api/v1/venues/1/plan", `{"rows":2,"columns":3}`), &v)
	assert.Equal(t, int32(2), v.Rows)

	var seats []venue.Seat
	c.data(c.do("POST", "/api/v1/venues/1/plan/standard", `{"seat_type":"standard"}`), &seats)
	require.Len(t, seats, 6)
	assert.Equal(t, "B3", seats[5].RowLabel+seats[5].ColLabel)

	w := c.do("GET", "/api/v1/venues/1/plan", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "    1   2   3\nA  [A] [A] [A]\nB  [A] [A] [A]\n", w.Body.String())

	w = c.do("GET", "/api/v1/venues/1/plan?color=true", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "\x1b[32m[A]\x1b[0m")

	var blocks [][]venue.Seat
	c.data(c.do("GET", "/api/v1/venues/1/adjacent?size=3", ""), &blocks)
	assert.Len(t, blocks, 2)
	assert.Equal(t, http.StatusBadRequest, c.do("GET", "/api/v1/venues/1/adjacent", "").Code)

	assert.Equal(t, http.StatusOK, c.do("POST", "/api/v1/venues/1/reservations", `{"seat_ids":[1,2]}`).Code)
	assert.Equal(t, http.StatusConflict, c.do("POST", "/api/v1/venues/1/reservations", `{"seat_ids":[2,3]}`).Code)
	assert.Equal(t, http.StatusBadRequest, c.do("POST", "/api/v1/venues/1/reservations", `{"seat_ids":[]}`).Code)
	assert.Equal(t, http.StatusNotFound, c.do("POST", "/api/v1/venues/1/reservations", `{"seat_ids":[99]}`).Code)

	var seat venue.Seat
	c.data(c.do("PUT", "/api/v1/venues/1/seats/1/status", `{"status":"checked_in"}`), &seat)
	assert.Equal(t, venue.StatusCheckedIn, seat.Status)
	assert.Equal(t, http.StatusBadRequest, c.do("PUT", "/api/v1/venues/1/seats/1/status", `{"status":"available"}`).Code)
	assert.Equal(t, http.StatusBadRequest, c.do("PUT", "/api/v1/venues/1/seats/3/status", `{"status":"bogus"}`).Code)

	c.data(c.do("GET", "/api/v1/venues/1/plan/cells/0/1", ""), &seat)
	assert.Equal(t, venue.StatusReserved, seat.Status)
	assert.Equal(t, http.StatusNotFound, c.do("GET", "/api/v1/venues/1/plan/cells/5/5", "").Code)

	c.data(c.do("GET", "/api/v1/venues/1/plan/rows/1", ""), &seats)
	assert.Len(t, seats, 3)

	w = c.do("GET", "/api/v1/venues/1/plan", "")
	assert.Equal(t, "    1   2   3\nA  [C] [S] [A]\nB  [A] [A] [A]\n", w.Body.String())

	assert.Equal(t, http.StatusOK, c.do("DELETE", "/api/v1/venues/1/seats/6", "").Code)
	assert.Equal(t, http.StatusNotFound, c.do("DELETE", "/api/v1/venues/1/seats/6", "").Code)

	c.data(c.do("POST", "/api/v1/venues/1/seats", `{"seat_type":"vip","row":1,"col":2}`), &seat)
	assert.Equal(t, int32(6), seat.ID)
	assert.Equal(t, http.StatusBadRequest, c.do("POST", "/api/v1/venues/1/seats", `{"seat_type":"vip","row":1}`).Code)
	c.data(c.do("POST", "/api/v1/venues/1/seats", `{"seat_type":"standing","row_label":"GA","col_label":"floor"}`), &seat)
	assert.Equal(t, int32(7), seat.ID)

	assert.Equal(t, http.StatusOK, c.do("DELETE", "/api/v1/venues/1", "").Code)
	c.data(c.do("GET", "/api/v1/venues/1/adjacent?size=1", ""), &blocks)
	assert.Empty(t, blocks)
}

func TestRouter_Snapshots(t *testing.T) {
	c := newRouterClient(t)

	// the test store has no snapshot archive
	assert.Equal(t, http.StatusNotImplemented, c.do("POST", "/api/v1/snapshots", "").Code)
	assert.Equal(t, http.StatusNotImplemented, c.do("GET", "/api/v1/snapshots", "").Code)
	assert.Equal(t, http.StatusBadRequest, c.do("POST", "/api/v1/snapshots/not-a-ksuid/restore", "").Code)
}

func TestRouter_MetricsAndDocs(t *testing.T) {
	c := newRouterClient(t)
	c.do("POST", "/api/v1/venues", `{"name":"Studio"}`)

	w := c.do("GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "venuedb_venues_total 1")
	assert.Contains(t, body, `venuedb_store_operations_total{operation="create_venue",status="success"} 1`)
	assert.Contains(t, body, "venuedb_http_requests_total")

	w = c.do("GET", "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "2.0", doc["swagger"])
	assert.Contains(t, doc["paths"], "/venues/{id}/reservations")

	assert.Equal(t, http.StatusNotFound, c.do("GET", "/swagger/other", "").Code)
}
