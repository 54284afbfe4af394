// Package grid indexes a venue's seats by (row, column) and searches the
// index for blocks of adjacent available seats.
//
// A Grid never owns seats. It holds references into the seat list of the
// venue it was built from and can always be rebuilt from that list.
package grid

import (
	"errors"

	"github.com/ssargent/venuedb/pkg/venue"
)

// MaxCells is the largest rows x columns a grid may have
const MaxCells = venue.MaxPlanCells

// ErrInvalidDimensions is returned for a zero or negative row or column
// count, or for more than MaxCells cells
var ErrInvalidDimensions = errors.New("grid dimensions must be positive and within MaxCells")

// Grid is a row-major sparse index of seats
type Grid struct {
	rows  int
	cols  int
	cells []*venue.Seat
}

// New allocates an empty rows x cols grid
func New(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 || int64(rows)*int64(cols) > MaxCells {
		return nil, ErrInvalidDimensions
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]*venue.Seat, rows*cols),
	}, nil
}

// Build creates a grid and places every seat whose labels resolve to a cell
// inside it. Seats with unparseable or out-of-bounds labels are skipped;
// when two seats resolve to the same cell the first one wins.
func Build(rows, cols int, seats []*venue.Seat) (*Grid, error) {
	g, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	for _, s := range seats {
		row, col, ok := Position(s)
		if !ok {
			continue
		}
		if _, taken := g.At(row, col); taken {
			continue
		}
		g.Place(s, row, col)
	}
	return g, nil
}

// Rows returns the number of rows
func (g *Grid) Rows() int { return g.rows }

// Columns returns the number of columns
func (g *Grid) Columns() int { return g.cols }

func (g *Grid) inBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Place indexes seat at (row, col). It returns false, and leaves the grid
// unchanged, when the position is outside the grid.
func (g *Grid) Place(seat *venue.Seat, row, col int) bool {
	if seat == nil || !g.inBounds(row, col) {
		return false
	}
	g.cells[row*g.cols+col] = seat
	return true
}

// At returns the seat at (row, col). ok is false for an empty cell or a
// position outside the grid.
func (g *Grid) At(row, col int) (seat *venue.Seat, ok bool) {
	if !g.inBounds(row, col) {
		return nil, false
	}
	seat = g.cells[row*g.cols+col]
	return seat, seat != nil
}

// RowSeats returns the seats present in row, in column order
func (g *Grid) RowSeats(row int) []*venue.Seat {
	if row < 0 || row >= g.rows {
		return []*venue.Seat{}
	}
	seats := make([]*venue.Seat, 0, g.cols)
	for _, s := range g.cells[row*g.cols : (row+1)*g.cols] {
		if s != nil {
			seats = append(seats, s)
		}
	}
	return seats
}

// Remove clears every cell that references seat. It reports whether the
// seat was indexed.
func (g *Grid) Remove(seat *venue.Seat) bool {
	found := false
	for i, s := range g.cells {
		if s == seat {
			g.cells[i] = nil
			found = true
		}
	}
	return found
}

// Locate returns the position of seat in the grid
func (g *Grid) Locate(seat *venue.Seat) (row, col int, ok bool) {
	for i, s := range g.cells {
		if s == seat {
			return i / g.cols, i % g.cols, true
		}
	}
	return 0, 0, false
}

// Len returns the number of occupied cells
func (g *Grid) Len() int {
	n := 0
	for _, s := range g.cells {
		if s != nil {
			n++
		}
	}
	return n
}
