// Package venue defines the Venue and Seat entities and their binary records.
package venue

// Seat is a single seat owned by exactly one Venue. Its ID is unique within
// that venue and never changes once assigned.
type Seat struct {
	ID       int32      `json:"id"`
	SeatType string     `json:"seat_type"`
	RowLabel string     `json:"row_label"`
	ColLabel string     `json:"col_label"`
	Status   SeatStatus `json:"status"`
}

// Label returns the row and column labels joined, e.g. "B12"
func (s *Seat) Label() string {
	return s.RowLabel + s.ColLabel
}

// Available reports whether the seat can still be reserved
func (s *Seat) Available() bool {
	return s.Status == StatusAvailable
}

// MaxPlanCells bounds rows x columns of a seating plan
const MaxPlanCells = 1 << 20

// ValidPlan reports whether rows x cols can be stored: neither negative and
// at most MaxPlanCells cells. A zero dimension means no plan.
func ValidPlan(rows, cols int32) bool {
	return rows >= 0 && cols >= 0 && int64(rows)*int64(cols) <= MaxPlanCells
}

// Venue is a place with an optional rows x columns seating plan. Rows and
// Columns of zero mean the venue has no 2D plan.
type Venue struct {
	ID          int32   `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Zip         string  `json:"zip"`
	Country     string  `json:"country"`
	Capacity    int32   `json:"capacity"`
	Description string  `json:"description"`
	Contact     string  `json:"contact"`
	Seatmap     string  `json:"seatmap"`
	Rows        int32   `json:"rows"`
	Columns     int32   `json:"columns"`
	Seats       []*Seat `json:"seats"`
}

// HasPlan reports whether the venue has grid dimensions
func (v *Venue) HasPlan() bool {
	return v.Rows > 0 && v.Columns > 0
}

// Seat returns the seat with the given id
func (v *Venue) Seat(id int32) (*Seat, bool) {
	for _, s := range v.Seats {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}

// NextSeatID returns one more than the highest seat id in use
func (v *Venue) NextSeatID() int32 {
	var max int32
	for _, s := range v.Seats {
		if s.ID > max {
			max = s.ID
		}
	}
	return max + 1
}

// RemoveSeat drops the seat with the given id from the seat list, keeping
// the order of the remaining seats.
func (v *Venue) RemoveSeat(id int32) (*Seat, bool) {
	for i, s := range v.Seats {
		if s.ID == id {
			v.Seats = append(v.Seats[:i], v.Seats[i+1:]...)
			return s, true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the venue and its seats
func (v *Venue) Clone() *Venue {
	c := *v
	c.Seats = make([]*Seat, len(v.Seats))
	for i, s := range v.Seats {
		seat := *s
		c.Seats[i] = &seat
	}
	return &c
}

// StatusCounts tallies the venue's seats by status
func (v *Venue) StatusCounts() map[SeatStatus]int {
	counts := make(map[SeatStatus]int)
	for _, s := range v.Seats {
		counts[s.Status]++
	}
	return counts
}
