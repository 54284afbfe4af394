package grid

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/ssargent/venuedb/pkg/venue"
)

const emptyCell = "--"

// RenderOptions controls seating plan output
type RenderOptions struct {
	// Color wraps each glyph in ANSI colors
	Color bool
}

// glyphColors ignore color.NoColor: plans are rendered into strings that
// may end up in a pipe or an HTTP response.
var glyphColors = map[venue.SeatStatus]*color.Color{
	venue.StatusAvailable: forcedColor(color.FgGreen),
	venue.StatusReserved:  forcedColor(color.FgYellow),
	venue.StatusCheckedIn: forcedColor(color.FgCyan),
	venue.StatusCancelled: forcedColor(color.FgRed),
	venue.StatusExpired:   forcedColor(color.FgRed),
}

func forcedColor(attr color.Attribute) *color.Color {
	c := color.New(attr)
	c.EnableColor()
	return c
}

// Render draws the grid as text: a header of 1-based column numbers, then
// one line per row with its label and a glyph per cell.
//
//	    1   2   3
//	A  [A] [S] --
//	B  [A] [C] [X]
func Render(g *Grid, opts RenderOptions) string {
	if g == nil {
		return ""
	}

	labelWidth := len(RowLabel(g.rows-1)) + 1
	var sb strings.Builder

	header := strings.Repeat(" ", labelWidth)
	for col := 0; col < g.cols; col++ {
		header += " " + fmt.Sprintf("%-3s", " "+ColLabel(col))
	}
	sb.WriteString(strings.TrimRight(header, " "))
	sb.WriteByte('\n')

	for row := 0; row < g.rows; row++ {
		line := fmt.Sprintf("%-*s", labelWidth, RowLabel(row))
		for col := 0; col < g.cols; col++ {
			line += " " + renderCell(g.cells[row*g.cols+col], opts)
		}
		sb.WriteString(strings.TrimRight(line, " "))
		sb.WriteByte('\n')
	}

	return sb.String()
}

func renderCell(s *venue.Seat, opts RenderOptions) string {
	if s == nil {
		return fmt.Sprintf("%-3s", emptyCell)
	}
	glyph := s.Status.Glyph()
	if opts.Color {
		if c, ok := glyphColors[s.Status]; ok {
			return c.Sprint(glyph)
		}
	}
	return glyph
}
