package raycaster

import (
	"math"

	"chosenoffset.com/lucid/internal/core/geom"
	"chosenoffset.com/lucid/internal/world/grid"
)

// Side records which kind of grid line a ray crossed last.
type Side uint8

const (
	// SideVertical is a face perpendicular to the X axis.
	SideVertical Side = iota
	// SideHorizontal is a face perpendicular to the Y axis.
	SideHorizontal
)

// minDistance keeps projected heights finite when the camera sits on a cell edge.
const minDistance = 1e-4

// Hit describes where a ray stopped.
type Hit struct {
	// Distance is measured perpendicular to the camera plane, not along the ray.
	Distance float64
	Side     Side
	MapX     int
	MapY     int
	// Code is the wall code of the hit cell, 0 when the ray left the grid.
	Code int
	// WallX is the fractional position of the hit along the wall face, in [0,1).
	WallX float64
}

// Cast walks the grid from pos along ray until it reaches a wall.
// A ray that escapes the grid stops at the first outside cell with Code 0.
// A zero ray hits nothing and reports an infinite distance.
func Cast(g *grid.Grid, pos, ray geom.Point) Hit {
	mapX, mapY := pos.Cell()
	if ray.X == 0 && ray.Y == 0 {
		return Hit{Distance: math.Inf(1), MapX: mapX, MapY: mapY}
	}

	deltaX, sideX, stepX := axis(pos.X, float64(mapX), ray.X)
	deltaY, sideY, stepY := axis(pos.Y, float64(mapY), ray.Y)

	var (
		side Side
		code int
	)
	for {
		if sideX < sideY {
			sideX += deltaX
			mapX += stepX
			side = SideVertical
		} else {
			sideY += deltaY
			mapY += stepY
			side = SideHorizontal
		}

		c, ok := g.Cell(mapX, mapY)
		if !ok {
			break
		}
		if c > 0 {
			code = c
			break
		}
	}

	var dist float64
	if side == SideVertical {
		dist = sideX - deltaX
	} else {
		dist = sideY - deltaY
	}
	if dist < minDistance || math.IsNaN(dist) {
		dist = minDistance
	}

	var wallX float64
	if side == SideVertical {
		wallX = pos.Y + dist*ray.Y
	} else {
		wallX = pos.X + dist*ray.X
	}
	wallX -= math.Floor(wallX)

	return Hit{Distance: dist, Side: side, MapX: mapX, MapY: mapY, Code: code, WallX: wallX}
}

// axis returns the per-cell ray length, the length to the first grid line and
// the cell step for one axis. A zero component never crosses a line on that axis.
func axis(pos, cell, dir float64) (delta, side float64, step int) {
	if dir == 0 {
		return math.Inf(1), math.Inf(1), 0
	}
	delta = math.Abs(1 / dir)
	if dir < 0 {
		return delta, (pos - cell) * delta, -1
	}
	return delta, (cell + 1 - pos) * delta, 1
}
