// Package term presents frames in a terminal with tcell. Every character cell
// shows two vertically stacked pixels using an upper half block, so a terminal
// of cols x rows displays a cols x 2*rows frame.
package term

import "github.com/gdamore/tcell/v2"

// HalfBlock paints its foreground over the top half of a cell.
const HalfBlock = '▀'

// Cells is the part of tcell.Screen the blitter writes through.
type Cells interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Blit writes a width x height RGBA frame into cells, two pixel rows per cell
// row. A trailing odd row is paired with black.
func Blit(dst Cells, frame []byte, width, height int) {
	if len(frame) < width*height*4 {
		return
	}
	for cy := 0; cy*2 < height; cy++ {
		top := cy * 2
		bottom := top + 1
		for x := 0; x < width; x++ {
			fg := rgbAt(frame, width, x, top)
			bg := tcell.NewRGBColor(0, 0, 0)
			if bottom < height {
				bg = rgbAt(frame, width, x, bottom)
			}
			dst.SetContent(x, cy, HalfBlock, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}
}

func rgbAt(frame []byte, width, x, y int) tcell.Color {
	i := (y*width + x) * 4
	return tcell.NewRGBColor(int32(frame[i]), int32(frame[i+1]), int32(frame[i+2]))
}

// screen adapts a tcell.Screen to render.Screen.
type screen struct {
	cells  tcell.Screen
	width  int
	height int
}

func (s *screen) Size() (int, int) { return s.width, s.height }

func (s *screen) WritePixels(pix []byte) {
	Blit(s.cells, pix, s.width, s.height)
}
