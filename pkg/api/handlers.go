package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/ssargent/venuedb/pkg/store"
	"github.com/ssargent/venuedb/pkg/venue"
)

// Server holds the API server state
type Server struct {
	store   IVenueStore
	config  ServerConfig
	metrics *Metrics
	logger  *logrus.Logger

	// mu serializes access to the store, which is not safe for concurrent use
	mu sync.Mutex
}

// NewServer creates a new API server
func NewServer(store IVenueStore, config ServerConfig, metrics *Metrics, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Server{
		store:   store,
		config:  config,
		metrics: metrics,
		logger:  logger,
	}
}

// serialized runs handler while holding the store lock. Responses are
// encoded under the lock too because they reference store-owned venues.
func (s *Server) serialized(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		handler(w, r)
	}
}

// finish records a store operation and, on success, refreshes the gauges
func (s *Server) finish(operation string, start time.Time, err error) {
	s.metrics.RecordStoreOperation(operation, err == nil, time.Since(start))
	if err != nil {
		s.logger.WithError(err).WithField("op", operation).Debug("store operation failed")
		return
	}
	s.metrics.UpdateStoreStats(s.store.Stats())
}

func parseID(r *http.Request, name string) (int32, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return int32(id), nil
}

func parseInt(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return n, nil
}

func parseQueryInt32(r *http.Request, name string) (int32, bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s %q", name, raw)
	}
	return int32(n), true, nil
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
//	@Security		ApiKeyAuth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleStats godoc
//
//	@Summary		Get store statistics
//	@Description	Venue and seat counts, seats per status and data file size
//	@Tags			diagnostics
//	@Produce		json
//	@Success		200	{object}	store.Stats
//	@Router			/stats [get]
//	@Security		ApiKeyAuth
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := s.store.Stats()
	s.metrics.UpdateStoreStats(stats)
	sendSuccess(w, stats)
}

// handleListVenues godoc
//
//	@Summary		List or search venues
//	@Description	Without filters every venue is returned. Filters are name (substring), city (exact) and min_capacity/max_capacity; the first one given wins in that order.
//	@Tags			venues
//	@Produce		json
//	@Param			name			query		string	false	"Name substring, case-insensitive"
//	@Param			city			query		string	false	"City, case-insensitive"
//	@Param			min_capacity	query		int		false	"Minimum capacity"
//	@Param			max_capacity	query		int		false	"Maximum capacity"
//	@Success		200				{array}		venue.Venue
//	@Failure		400				{object}	APIResponse
//	@Router			/venues [get]
//	@Security		ApiKeyAuth
func (s *Server) handleListVenues(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	minCap, hasMin, err := parseQueryInt32(r, "min_capacity")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	maxCap, hasMax, err := parseQueryInt32(r, "max_capacity")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var venues []*venue.Venue
	switch {
	case query.Get("name") != "":
		venues = s.store.FindByName(query.Get("name"))
	case query.Get("city") != "":
		venues = s.store.FindByCity(query.Get("city"))
	case hasMax:
		venues = s.store.FindByCapacityRange(minCap, maxCap)
	case hasMin:
		venues = s.store.FindByCapacity(minCap)
	default:
		venues = s.store.ListVenues()
	}
	sendSuccess(w, venues)
}

// handleCreateVenue godoc
//
//	@Summary		Create a venue
//	@Description	Create a venue under the next unused id
//	@Tags			venues
//	@Accept			json
//	@Produce		json
//	@Param			venue	body		store.VenueInput	true	"Venue fields"
//	@Success		200		{object}	venue.Venue
//	@Failure		400		{object}	APIResponse
//	@Failure		500		{object}	APIResponse
//	@Router			/venues [post]
//	@Security		ApiKeyAuth
func (s *Server) handleCreateVenue(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var input store.VenueInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	v, err := s.store.CreateVenue(input)
	s.finish("create_venue", start, err)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, v)
}

// handleGetVenue godoc
//
//	@Summary		Get a venue
//	@Tags			venues
//	@Produce		json
//	@Param			id	path		int	true	"Venue ID"
//	@Success		200	{object}	venue.Venue
//	@Failure		404	{object}	APIResponse
//	@Router			/venues/{id} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleGetVenue(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	v, ok := s.store.GetVenueByID(id)
	if !ok {
		sendError(w, "Venue not found", http.StatusNotFound)
		return
	}
	sendSuccess(w, v)
}

// handleUpdateVenue godoc
//
//	@Summary		Update a venue
//	@Description	Only the fields present in the body are changed; an empty string or zero is written as given.
//	@Tags			venues
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Venue ID"
//	@Param			update	body		store.VenueUpdate	true	"Fields to change"
//	@Success		200		{object}	venue.Venue
//	@Failure		400		{object}	APIResponse
//	@Failure		404		{object}	APIResponse
//	@Router			/venues/{id} [patch]
//	@Security		ApiKeyAuth
func (s *Server) handleUpdateVenue(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := parseID(r, "id")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var update store.VenueUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	err = s.store.UpdateVenue(id, update)
	s.finish("update_venue", start, err)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	v, _ := s.store.GetVenueByID(id)
	sendSuccess(w, v)
}

// handleDeleteVenue godoc
//
//	@Summary		Delete a venue
//	@Description	Removes the venue together with its seats and seating plan
//	@Tags			venues
//	@Produce		json
//	@Param			id	path		int	true	"Venue ID"
//	@Success		200	{object}	map[string]string
//	@Failure		404	{object}	APIResponse
//	@Router			/venues/{id} [delete]
//	@Security		ApiKeyAuth
func (s *Server) handleDeleteVenue(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := parseID(r, "id")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = s.store.DeleteVenue(id)
	s.finish("delete_venue", start, err)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, map[string]string{"message": "Venue deleted successfully"})
}
