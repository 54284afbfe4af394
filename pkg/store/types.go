package store

import (
	"time"

	"github.com/ssargent/venuedb/pkg/venue"
)

// Config holds configuration for the venue store
type Config struct {
	DataDir     string // Directory for the data file
	DataFile    string // Name of the data file inside DataDir
	SnapshotDir string // Pebble snapshot archive, empty disables snapshots
	BufferSize  int    // Write buffer size
}

// DefaultDataFile is used when Config.DataFile is empty
const DefaultDataFile = "venues.db"

// DataFileConfig holds configuration for the data file writer
type DataFileConfig struct {
	FilePath   string // Path to the data file
	BufferSize int    // Write buffer size
}

// VenueInput carries the fields of a new venue
type VenueInput struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	Country     string `json:"country"`
	Capacity    int32  `json:"capacity"`
	Description string `json:"description"`
	Contact     string `json:"contact"`
	Seatmap     string `json:"seatmap"`
}

// VenueUpdate lists the fields to change. A nil field is left as is; a
// non-nil field is written even when it holds "" or 0.
type VenueUpdate struct {
	Name        *string `json:"name,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	Zip         *string `json:"zip,omitempty"`
	Country     *string `json:"country,omitempty"`
	Capacity    *int32  `json:"capacity,omitempty"`
	Description *string `json:"description,omitempty"`
	Contact     *string `json:"contact,omitempty"`
	Seatmap     *string `json:"seatmap,omitempty"`
}

// SeatInput carries the fields of a seat added without a grid position
type SeatInput struct {
	SeatType string `json:"seat_type"`
	RowLabel string `json:"row_label"`
	ColLabel string `json:"col_label"`
}

// LoadResult reports what a load read from disk
type LoadResult struct {
	Venues   int           `json:"venues"`
	Seats    int           `json:"seats"`
	Bytes    int64         `json:"bytes"`
	Duration time.Duration `json:"duration"`
}

// Stats summarizes the store contents
type Stats struct {
	Venues       int                      `json:"venues"`
	Seats        int                      `json:"seats"`
	GriddedSeats int                      `json:"gridded_seats"`
	ByStatus     map[venue.SeatStatus]int `json:"by_status"`
	DataBytes    int64                    `json:"data_bytes"`
}

// Errors
var (
	ErrVenueNotFound     = &StoreError{"venue not found"}
	ErrSeatNotFound      = &StoreError{"seat not found"}
	ErrInvalidInput      = &StoreError{"invalid input"}
	ErrSeatUnavailable   = &StoreError{"seat not available"}
	ErrInvalidTransition = &StoreError{"invalid seat status transition"}
	ErrNoSeatingPlan     = &StoreError{"venue has no seating plan"}
	ErrNotOpen           = &StoreError{"store is not open"}
	ErrSnapshotsDisabled = &StoreError{"snapshots are not configured"}
)

// StoreError represents a venue store error
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
