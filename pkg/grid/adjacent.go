package grid

import "github.com/ssargent/venuedb/pkg/venue"

// FindAdjacent returns every window of k consecutive cells in a single row
// where each cell holds an available seat. Overlapping windows are all
// returned, ordered by row and then by starting column. k <= 0 or k wider
// than the grid yields no windows.
func FindAdjacent(g *Grid, k int) [][]*venue.Seat {
	blocks := [][]*venue.Seat{}
	if g == nil || k <= 0 || k > g.cols {
		return blocks
	}

	for row := 0; row < g.rows; row++ {
		cells := g.cells[row*g.cols : (row+1)*g.cols]

		// run counts the available seats ending at the current column
		run := 0
		for col, s := range cells {
			if s == nil || !s.Available() {
				run = 0
				continue
			}
			run++
			if run >= k {
				block := make([]*venue.Seat, k)
				copy(block, cells[col-k+1:col+1])
				blocks = append(blocks, block)
			}
		}
	}

	return blocks
}
