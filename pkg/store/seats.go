package store

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/ssargent/venuedb/pkg/grid"
	"github.com/ssargent/venuedb/pkg/venue"
)

// InitializeSeatingPlan sets the venue's grid dimensions and rebuilds its
// grid from the existing seat labels.
func (s *VenueStore) InitializeSeatingPlan(id int32, rows, cols int32) error {
	v, err := s.lookup(id)
	if err != nil {
		return err
	}
	g, err := grid.Build(int(rows), int(cols), v.Seats)
	if err != nil {
		return fmt.Errorf("%w: %dx%d: %v", ErrInvalidInput, rows, cols, err)
	}

	checkpoint := s.checkpoint()
	v.Rows, v.Columns = rows, cols
	s.grids[id] = g

	return s.commit(checkpoint, "initialize_plan", logrus.Fields{"venue_id": id, "rows": rows, "columns": cols})
}

func (s *VenueStore) planOf(id int32) (*venue.Venue, *grid.Grid, error) {
	v, err := s.lookup(id)
	if err != nil {
		return nil, nil, err
	}
	g, ok := s.grids[id]
	if !ok {
		return nil, nil, fmt.Errorf("%w: venue %d", ErrNoSeatingPlan, id)
	}
	return v, g, nil
}

// CreateStandardSeats fills every empty cell with an available seat
// labelled by its position (A1, A2, ..., B1, ...), in row-major order.
func (s *VenueStore) CreateStandardSeats(id int32, seatType string) ([]*venue.Seat, error) {
	v, g, err := s.planOf(id)
	if err != nil {
		return nil, err
	}

	checkpoint := s.checkpoint()
	next := v.NextSeatID()
	created := []*venue.Seat{}
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Columns(); col++ {
			if _, taken := g.At(row, col); taken {
				continue
			}
			seat := &venue.Seat{
				ID:       next,
				SeatType: seatType,
				RowLabel: grid.RowLabel(row),
				ColLabel: grid.ColLabel(col),
				Status:   venue.StatusAvailable,
			}
			next++
			v.Seats = append(v.Seats, seat)
			g.Place(seat, row, col)
			created = append(created, seat)
		}
	}

	if err := s.commit(checkpoint, "create_standard_seats", logrus.Fields{"venue_id": id, "seats": len(created)}); err != nil {
		return nil, err
	}
	return created, nil
}

// AddSeat adds an available seat by label. When the labels name a free
// cell of the venue's grid the seat is indexed there; otherwise it exists
// only in the seat list.
func (s *VenueStore) AddSeat(id int32, input SeatInput) (*venue.Seat, error) {
	v, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	seat := &venue.Seat{
		ID:       v.NextSeatID(),
		SeatType: input.SeatType,
		RowLabel: input.RowLabel,
		ColLabel: input.ColLabel,
		Status:   venue.StatusAvailable,
	}

	checkpoint := s.checkpoint()
	v.Seats = append(v.Seats, seat)
	if g, ok := s.grids[id]; ok {
		if row, col, ok := grid.Position(seat); ok {
			if _, taken := g.At(row, col); !taken {
				g.Place(seat, row, col)
			}
		}
	}

	if err := s.commit(checkpoint, "add_seat", logrus.Fields{"venue_id": id, "seat_id": seat.ID}); err != nil {
		return nil, err
	}
	return seat, nil
}

// AddSeatAt adds an available seat at a grid position. The cell must be
// inside the grid and empty.
func (s *VenueStore) AddSeatAt(id int32, seatType string, row, col int) (*venue.Seat, error) {
	v, g, err := s.planOf(id)
	if err != nil {
		return nil, err
	}
	if row < 0 || row >= g.Rows() || col < 0 || col >= g.Columns() {
		return nil, fmt.Errorf("%w: position (%d,%d) outside %dx%d grid", ErrInvalidInput, row, col, g.Rows(), g.Columns())
	}
	if occupant, taken := g.At(row, col); taken {
		return nil, fmt.Errorf("%w: position (%d,%d) holds seat %d", ErrInvalidInput, row, col, occupant.ID)
	}

	seat := &venue.Seat{
		ID:       v.NextSeatID(),
		SeatType: seatType,
		RowLabel: grid.RowLabel(row),
		ColLabel: grid.ColLabel(col),
		Status:   venue.StatusAvailable,
	}

	checkpoint := s.checkpoint()
	v.Seats = append(v.Seats, seat)
	g.Place(seat, row, col)

	if err := s.commit(checkpoint, "add_seat", logrus.Fields{"venue_id": id, "seat_id": seat.ID}); err != nil {
		return nil, err
	}
	return seat, nil
}

// RemoveSeat deletes a seat from the venue and its grid
func (s *VenueStore) RemoveSeat(id, seatID int32) error {
	v, err := s.lookup(id)
	if err != nil {
		return err
	}
	if _, ok := v.Seat(seatID); !ok {
		return fmt.Errorf("%w: %d in venue %d", ErrSeatNotFound, seatID, id)
	}

	checkpoint := s.checkpoint()
	seat, _ := v.RemoveSeat(seatID)
	if g, ok := s.grids[id]; ok {
		g.Remove(seat)
	}

	return s.commit(checkpoint, "remove_seat", logrus.Fields{"venue_id": id, "seat_id": seatID})
}

// UpdateSeatStatus moves a seat to status if the transition is allowed
func (s *VenueStore) UpdateSeatStatus(id, seatID int32, status venue.SeatStatus) error {
	v, err := s.lookup(id)
	if err != nil {
		return err
	}
	if !status.Valid() {
		return fmt.Errorf("%w: status %d", ErrInvalidInput, int32(status))
	}
	seat, ok := v.Seat(seatID)
	if !ok {
		return fmt.Errorf("%w: %d in venue %d", ErrSeatNotFound, seatID, id)
	}
	if !seat.Status.CanTransition(status) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, seat.Status, status)
	}

	checkpoint := s.checkpoint()
	seat.Status = status

	return s.commit(checkpoint, "update_seat_status", logrus.Fields{
		"venue_id": id,
		"seat_id":  seatID,
		"status":   status.String(),
	})
}

// SeatAt returns the seat at a grid position
func (s *VenueStore) SeatAt(id int32, row, col int) (*venue.Seat, bool) {
	g, ok := s.grids[id]
	if !ok || !s.isOpen {
		return nil, false
	}
	return g.At(row, col)
}

// RowSeats returns the seats of one grid row, left to right
func (s *VenueStore) RowSeats(id int32, row int) []*venue.Seat {
	g, ok := s.grids[id]
	if !ok || !s.isOpen {
		return []*venue.Seat{}
	}
	return g.RowSeats(row)
}

// FindAdjacentSeats returns every block of k adjacent available seats in
// one row. An unknown venue or a venue without a plan has no blocks.
func (s *VenueStore) FindAdjacentSeats(id int32, k int) [][]*venue.Seat {
	if !s.isOpen {
		return [][]*venue.Seat{}
	}
	return grid.FindAdjacent(s.grids[id], k)
}

// ReserveSeatBlock reserves every listed seat, or none of them. The set
// must be non-empty, free of duplicates and made of available seats.
func (s *VenueStore) ReserveSeatBlock(id int32, seatIDs []int32) error {
	v, err := s.lookup(id)
	if err != nil {
		return err
	}
	if len(seatIDs) == 0 {
		return fmt.Errorf("%w: empty seat block", ErrInvalidInput)
	}

	seen := make(map[int32]struct{}, len(seatIDs))
	seats := make([]*venue.Seat, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		if _, dup := seen[seatID]; dup {
			return fmt.Errorf("%w: seat %d listed twice", ErrInvalidInput, seatID)
		}
		seen[seatID] = struct{}{}

		seat, ok := v.Seat(seatID)
		if !ok {
			return fmt.Errorf("%w: %d in venue %d", ErrSeatNotFound, seatID, id)
		}
		if !seat.Available() {
			return fmt.Errorf("%w: seat %d is %s", ErrSeatUnavailable, seatID, seat.Status)
		}
		seats = append(seats, seat)
	}

	checkpoint := s.checkpoint()
	for _, seat := range seats {
		seat.Status = venue.StatusReserved
	}

	return s.commit(checkpoint, "reserve_block", logrus.Fields{"venue_id": id, "seats": len(seats)})
}

// RenderSeatingPlan draws the venue's grid as text
func (s *VenueStore) RenderSeatingPlan(id int32, opts grid.RenderOptions) (string, error) {
	_, g, err := s.planOf(id)
	if err != nil {
		return "", err
	}
	return grid.Render(g, opts), nil
}
