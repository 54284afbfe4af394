package api

import (
	"github.com/segmentio/ksuid"
	"github.com/ssargent/venuedb/pkg/grid"
	"github.com/ssargent/venuedb/pkg/storage"
	"github.com/ssargent/venuedb/pkg/store"
	"github.com/ssargent/venuedb/pkg/venue"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// PlanRequest sets a venue's grid dimensions
type PlanRequest struct {
	Rows    int32 `json:"rows"`
	Columns int32 `json:"columns"`
}

// StandardSeatsRequest fills a plan with seats of one type
type StandardSeatsRequest struct {
	SeatType string `json:"seat_type"`
}

// AddSeatRequest adds a seat. With Row and Col set the seat is placed at
// that grid position and the labels are derived from it.
type AddSeatRequest struct {
	SeatType string `json:"seat_type"`
	RowLabel string `json:"row_label,omitempty"`
	ColLabel string `json:"col_label,omitempty"`
	Row      *int   `json:"row,omitempty"`
	Col      *int   `json:"col,omitempty"`
}

// SeatStatusRequest changes a seat's status
type SeatStatusRequest struct {
	Status venue.SeatStatus `json:"status"`
}

// ReserveRequest reserves a block of seats
type ReserveRequest struct {
	SeatIDs []int32 `json:"seat_ids"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	Bind   string
	APIKey string
	Color  bool // colored seating plans by default
}

// IVenueStore defines the venue store operations served over HTTP
type IVenueStore interface {
	CreateVenue(input store.VenueInput) (*venue.Venue, error)
	GetVenueByID(id int32) (*venue.Venue, bool)
	ListVenues() []*venue.Venue
	FindByName(name string) []*venue.Venue
	FindByCity(city string) []*venue.Venue
	FindByCapacity(min int32) []*venue.Venue
	FindByCapacityRange(min, max int32) []*venue.Venue
	UpdateVenue(id int32, update store.VenueUpdate) error
	DeleteVenue(id int32) error

	InitializeSeatingPlan(id int32, rows, cols int32) error
	CreateStandardSeats(id int32, seatType string) ([]*venue.Seat, error)
	AddSeat(id int32, input store.SeatInput) (*venue.Seat, error)
	AddSeatAt(id int32, seatType string, row, col int) (*venue.Seat, error)
	RemoveSeat(id, seatID int32) error
	UpdateSeatStatus(id, seatID int32, status venue.SeatStatus) error
	SeatAt(id int32, row, col int) (*venue.Seat, bool)
	RowSeats(id int32, row int) []*venue.Seat
	FindAdjacentSeats(id int32, k int) [][]*venue.Seat
	ReserveSeatBlock(id int32, seatIDs []int32) error
	RenderSeatingPlan(id int32, opts grid.RenderOptions) (string, error)

	Snapshot() (ksuid.KSUID, error)
	ListSnapshots() ([]storage.SnapshotInfo, error)
	RestoreSnapshot(id ksuid.KSUID) (*store.LoadResult, error)

	Stats() store.Stats
}
