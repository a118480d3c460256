// Package texture stores decoded images as packed RGBA words for the software
// raycaster. Pixels are read-only once loaded and can be shared freely.
package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// ErrEmpty is returned when an image has no pixels.
var ErrEmpty = errors.New("texture has zero size")

// Texture is a fixed-size grid of packed pixels, 0xRRGGBBAA.
type Texture struct {
	Width  int
	Height int
	pixels []uint32
}

// New allocates a fully transparent texture.
func New(width, height int) *Texture {
	return &Texture{Width: width, Height: height, pixels: make([]uint32, width*height)}
}

// Pack combines channels into a single pixel word.
func Pack(r, g, b, a uint8) uint32 {
	return uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a)
}

// Unpack splits a pixel word into its channels.
func Unpack(c uint32) (r, g, b, a uint8) {
	return uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// FromImage converts any image to a texture using non-premultiplied RGBA.
func FromImage(img image.Image) (*Texture, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmpty
	}
	t := New(b.Dx(), b.Dy())
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			t.pixels[y*t.Width+x] = Pack(c.R, c.G, c.B, c.A)
		}
	}
	return t, nil
}

// Load decodes a PNG or JPEG file into a texture.
func Load(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	t, err := FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("failed to convert texture %s: %w", path, err)
	}
	return t, nil
}

// Pixel returns the packed pixel at (x, y), or transparent black outside.
func (t *Texture) Pixel(x, y int) uint32 {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return 0
	}
	return t.pixels[y*t.Width+x]
}

// SetPixel writes a packed pixel; out-of-range writes are ignored.
func (t *Texture) SetPixel(x, y int, c uint32) {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return
	}
	t.pixels[y*t.Width+x] = c
}
