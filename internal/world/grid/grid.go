// Package grid holds the rectangular cell map the world is built on.
// Cell 0 is open floor; any positive code N is a wall drawn with texture N-1.
package grid

import (
	"errors"
	"fmt"

	"chosenoffset.com/lucid/internal/core/geom"
)

var (
	// ErrEmpty is returned for a grid with no rows or no columns.
	ErrEmpty = errors.New("grid has no cells")
	// ErrRagged is returned when rows differ in length.
	ErrRagged = errors.New("grid rows have unequal length")
	// ErrOpenBoundary is returned when the outer ring contains an open cell.
	ErrOpenBoundary = errors.New("grid boundary is not solid")
)

// Grid is a read-only rectangular map of cell codes indexed [y][x].
type Grid struct {
	cells  [][]int
	width  int
	height int
}

// New validates rows and wraps them in a Grid. Rows are copied.
func New(rows [][]int) (*Grid, error) {
	if err := Validate(rows); err != nil {
		return nil, err
	}
	cells := make([][]int, len(rows))
	for y, row := range rows {
		cells[y] = append([]int(nil), row...)
	}
	return &Grid{cells: cells, width: len(rows[0]), height: len(rows)}, nil
}

// MustNew is New for fixtures known to be valid.
func MustNew(rows [][]int) *Grid {
	g, err := New(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// Validate checks that rows are non-empty, uniform in length and ringed by walls.
func Validate(rows [][]int) error {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return ErrEmpty
	}
	width := len(rows[0])
	for y, row := range rows {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d cells, expected %d", ErrRagged, y, len(row), width)
		}
	}
	height := len(rows)
	for x := 0; x < width; x++ {
		if rows[0][x] <= 0 || rows[height-1][x] <= 0 {
			return fmt.Errorf("%w: column %d", ErrOpenBoundary, x)
		}
	}
	for y := 0; y < height; y++ {
		if rows[y][0] <= 0 || rows[y][width-1] <= 0 {
			return fmt.Errorf("%w: row %d", ErrOpenBoundary, y)
		}
	}
	return nil
}

// Ring builds a width x height grid with a solid outer ring of code wall.
func Ring(width, height, wall int) *Grid {
	rows := make([][]int, height)
	for y := range rows {
		rows[y] = make([]int, width)
		for x := range rows[y] {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				rows[y][x] = wall
			}
		}
	}
	return MustNew(rows)
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) indexes a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Cell returns the code at (x, y). ok is false outside the grid.
func (g *Grid) Cell(x, y int) (code int, ok bool) {
	if !g.InBounds(x, y) {
		return 0, false
	}
	return g.cells[y][x], true
}

// IsSolid reports whether (x, y) blocks movement. Out-of-range cells are solid.
func (g *Grid) IsSolid(x, y int) bool {
	code, ok := g.Cell(x, y)
	return !ok || code > 0
}

// SolidAt reports whether the cell containing p is solid.
func (g *Grid) SolidAt(p geom.Point) bool {
	x, y := p.Cell()
	return g.IsSolid(x, y)
}

// Rows returns a copy of the cell codes.
func (g *Grid) Rows() [][]int {
	out := make([][]int, g.height)
	for y, row := range g.cells {
		out[y] = append([]int(nil), row...)
	}
	return out
}
