package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"
	"github.com/ssargent/venuedb/pkg/grid"
	"github.com/ssargent/venuedb/pkg/store"
	"github.com/ssargent/venuedb/pkg/venue"
)

// handleInitializePlan godoc
//
//	@Summary		Initialize a seating plan
//	@Description	Set the grid dimensions and rebuild the grid from the existing seat labels
//	@Tags			plans
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int			true	"Venue ID"
//	@Param			plan	body		PlanRequest	true	"Dimensions"
//	@Success		200		{object}	venue.Venue
//	@Failure		400		{object}	APIResponse
//	@Failure		404		{object}	APIResponse
//	@Router			/venues/{id}/plan [put]
//	@Security		ApiKeyAuth
func (s *Server) handleInitializePlan(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := parseID(r, "id")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	err = s.store.InitializeSeatingPlan(id, req.Rows, req.Columns)
	s.finish("initialize_plan", start, err)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	v, _ := s.store.GetVenueByID(id)
	sendSuccess(w, v)
}

// handleRenderPlan godoc
//
//	@Summary		Render a seating plan
//	@Description	Text grid with one glyph per cell; [A] available, [S] reserved, [C] checked in, [X] cancelled or expired, -- empty
//	@Tags			plans
//	@Produce		plain
//	@Param			id		path		int		true	"Venue ID"
//	@Param			color	query		bool	false	"ANSI colors"
//	@Success		200		{string}	string
//	@Failure		400		{object}	APIResponse
//	@Failure		404		{object}	APIResponse
//	@Router			/venues/{id}/plan [get]
//	@Security		ApiKeyAuth
func (s *Server) handleRenderPlan(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	opts := grid.RenderOptions{Color: s.config.Color}
	if raw := r.URL.Query().Get("color"); raw != "" {
		colored, err := strconv.ParseBool(raw)
		if err != nil {
			sendError(w, "invalid color flag", http.StatusBadRequest)
			return
		}
		opts.Color = colored
	}

	plan, err := s.store.RenderSeatingPlan(id, opts)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(plan))
}

// handleStandardSeats godoc
//
//	@Summary		Create the standard seats
//	@Description	Fill every empty cell of the plan with an available seat labelled A1, A2, ...
//	@Tags			plans
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Venue ID"
//	@Param			request	body		StandardSeatsRequest	true	"Seat type"
//	@Success		200		{array}		venue.Seat
//	@Failure		400		{object}	APIResponse
//	@Failure		404		{object}	APIResponse
//	@Router			/venues/{id}/plan/standard [post]
//	@Security		ApiKeyAuth
func (s *Server) handleStandardSeats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := parseID(r, "id")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req StandardSeatsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	seats, err := s.store.CreateStandardSeats(id, req.SeatType)
	s.finish("create_standard_seats", start, err)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, seats)
}

// handleRowSeats godoc
//
//	@Summary		List the seats of a row
//	@Tags			plans
//	@Produce		json
//	@Param			id	path		int	true	"Venue ID"
//	@Param			row	path		int	true	"Zero-based row index"
//	@Success		200	{array}		venue.Seat
//	@Router			/venues/{id}/plan/rows/{row} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleRowSeats(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	row, err := parseInt(r, "row")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	sendSuccess(w, s.store.RowSeats(id, row))
}

// handleSeatAt godoc
//
//	@Summary		Get the seat at a grid position
//	@Tags			plans
//	@Produce		json
//	@Param			id	path		int	true	"Venue ID"
//	@Param			row	path		int	true	"Zero-based row index"
//	@Param			col	path		int	true	"Zero-based column index"
//	@Success		200	{object}	venue.Seat
//	@Failure		404	{object}	APIResponse
//	@Router			/venues/{id}/plan/cells/{row}/{col} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleSeatAt(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	row, err := parseInt(r, "row")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	col, err := parseInt(r, "col")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	seat, ok := s.store.SeatAt(id, row, col)
	if !ok {
		sendError(w, "No seat at that position", http.StatusNotFound)
		return
	}
	sendSuccess(w, seat)
}

// handleAddSeat godoc
//
//	@Summary		Add a seat
//	@Description	With row and col the seat is placed at that grid position; otherwise it is added by label
//	@Tags			seats
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int				true	"Venue ID"
//	@Param			seat	body		AddSeatRequest	true	"Seat"
//	@Success		200		{object}	venue.Seat
//	@Failure		400		{object}	APIResponse
//	@Failure		404		{object}	APIResponse
//	@Router			/venues/{id}/seats [post]
//	@Security		ApiKeyAuth
func (s *Server) handleAddSeat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := parseID(r, "id")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req AddSeatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}
	if (req.Row == nil) != (req.Col == nil) {
		sendError(w, "row and col must be given together", http.StatusBadRequest)
		return
	}

	var seat *venue.Seat
	if req.Row != nil {
		seat, err = s.store.AddSeatAt(id, req.SeatType, *req.Row, *req.Col)
	} else {
		seat, err = s.store.AddSeat(id, store.SeatInput{
			SeatType: req.SeatType,
			RowLabel: req.RowLabel,
			ColLabel: req.ColLabel,
		})
	}
	s.finish("add_seat", start, err)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, seat)
}

// handleRemoveSeat godoc
//
//	@Summary		Remove a seat
//	@Tags			seats
//	@Produce		json
//	@Param			id		path		int	true	"Venue ID"
//	@Param			seatID	path		int	true	"Seat ID"
//	@Success		200		{object}	map[string]string
//	@Failure		404		{object}	APIResponse
//	@Router			/venues/{id}/seats/{seatID} [delete]
//	@Security		ApiKeyAuth
func (s *Server) handleRemoveSeat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := parseID(r, "id")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	seatID, err := parseID(r, "seatID")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = s.store.RemoveSeat(id, seatID)
	s.finish("remove_seat", start, err)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, map[string]string{"message": "Seat removed successfully"})
}

// handleUpdateSeatStatus godoc
//
//	@Summary		Change a seat's status
//	@Description	available -> reserved -> checked_in; available -> cancelled; available or reserved -> expired
//	@Tags			seats
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Venue ID"
//	@Param			seatID	path		int					true	"Seat ID"
//	@Param			status	body		SeatStatusRequest	true	"New status"
//	@Success		200		{object}	venue.Seat
//	@Failure		400		{object}	APIResponse
//	@Failure		404		{object}	APIResponse
//	@Router			/venues/{id}/seats/{seatID}/status [put]
//	@Security		ApiKeyAuth
func (s *Server) handleUpdateSeatStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := parseID(r, "id")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	seatID, err := parseID(r, "seatID")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req SeatStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	err = s.store.UpdateSeatStatus(id, seatID, req.Status)
	s.finish("update_seat_status", start, err)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	v, _ := s.store.GetVenueByID(id)
	seat, _ := v.Seat(seatID)
	sendSuccess(w, seat)
}

// handleFindAdjacent godoc
//
//	@Summary		Find adjacent available seats
//	@Description	Every window of size adjacent available seats within one row. Overlapping windows are all returned.
//	@Tags			seats
//	@Produce		json
//	@Param			id		path		int	true	"Venue ID"
//	@Param			size	query		int	true	"Block size"
//	@Success		200		{array}		[]venue.Seat
//	@Failure		400		{object}	APIResponse
//	@Router			/venues/{id}/adjacent [get]
//	@Security		ApiKeyAuth
func (s *Server) handleFindAdjacent(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := parseID(r, "id")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil {
		sendError(w, "size query parameter must be an integer", http.StatusBadRequest)
		return
	}

	blocks := s.store.FindAdjacentSeats(id, size)
	s.metrics.RecordStoreOperation("find_adjacent", true, time.Since(start))
	sendSuccess(w, blocks)
}

// handleReserveBlock godoc
//
//	@Summary		Reserve a block of seats
//	@Description	All listed seats become reserved, or none do
//	@Tags			seats
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int				true	"Venue ID"
//	@Param			request	body		ReserveRequest	true	"Seat ids"
//	@Success		200		{object}	map[string]int
//	@Failure		400		{object}	APIResponse
//	@Failure		404		{object}	APIResponse
//	@Failure		409		{object}	APIResponse
//	@Router			/venues/{id}/reservations [post]
//	@Security		ApiKeyAuth
func (s *Server) handleReserveBlock(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := parseID(r, "id")
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req ReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON request", http.StatusBadRequest)
		return
	}

	err = s.store.ReserveSeatBlock(id, req.SeatIDs)
	s.finish("reserve_block", start, err)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, map[string]int{"reserved": len(req.SeatIDs)})
}

// handleCreateSnapshot godoc
//
//	@Summary		Snapshot the collection
//	@Tags			snapshots
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Failure		501	{object}	APIResponse
//	@Router			/snapshots [post]
//	@Security		ApiKeyAuth
func (s *Server) handleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := s.store.Snapshot()
	s.metrics.RecordStoreOperation("snapshot", err == nil, time.Since(start))
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, map[string]string{"id": id.String()})
}

// handleListSnapshots godoc
//
//	@Summary		List snapshots
//	@Tags			snapshots
//	@Produce		json
//	@Success		200	{array}		storage.SnapshotInfo
//	@Failure		501	{object}	APIResponse
//	@Router			/snapshots [get]
//	@Security		ApiKeyAuth
func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	infos, err := s.store.ListSnapshots()
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, infos)
}

// handleRestoreSnapshot godoc
//
//	@Summary		Restore a snapshot
//	@Description	Replace the collection with an archived snapshot and persist it
//	@Tags			snapshots
//	@Produce		json
//	@Param			snapshotID	path		string	true	"Snapshot KSUID"
//	@Success		200			{object}	store.LoadResult
//	@Failure		400			{object}	APIResponse
//	@Failure		404			{object}	APIResponse
//	@Router			/snapshots/{snapshotID}/restore [post]
//	@Security		ApiKeyAuth
func (s *Server) handleRestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id, err := ksuid.Parse(chi.URLParam(r, "snapshotID"))
	if err != nil {
		sendError(w, "Invalid snapshot id", http.StatusBadRequest)
		return
	}

	result, err := s.store.RestoreSnapshot(id)
	s.finish("restore_snapshot", start, err)
	if err != nil {
		sendStoreError(w, err)
		return
	}
	sendSuccess(w, result)
}
