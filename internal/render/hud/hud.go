// Package hud draws the heads-up display over a rendered frame: the held
// weapon, the health bar, run counters and full-screen banners.
package hud

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"chosenoffset.com/lucid/internal/render/texture"
)

// ErrFrameSize is returned when the frame does not match the HUD size.
var ErrFrameSize = errors.New("frame buffer does not match screen size")

// Config selects what the HUD shows.
type Config struct {
	ShowWeapon bool
	ShowHealth bool
	ShowStats  bool
	// Opacity of panel backgrounds, 0-1.
	Opacity float64
}

// DefaultConfig shows everything.
func DefaultConfig() *Config {
	return &Config{
		ShowWeapon: true,
		ShowHealth: true,
		ShowStats:  true,
		Opacity:    0.6,
	}
}

// Status is the per-frame data the HUD displays.
type Status struct {
	Health    int
	MaxHealth int
	Weapon    texture.ID
	Bob       float64
	Kills     int
	Enemies   int
	Elapsed   float64
	// Hurt tints the screen red, 0-1.
	Hurt float64
	// Message is shown centered below the health bar when set.
	Message string
}

// HUD draws into RGBA frames of a fixed size.
type HUD struct {
	config   *Config
	width    int
	height   int
	textures *texture.Cache
	face     font.Face
}

// New creates a HUD for width x height frames.
func New(config *Config, width, height int, textures *texture.Cache) *HUD {
	if config == nil {
		config = DefaultConfig()
	}
	return &HUD{
		config:   config,
		width:    width,
		height:   height,
		textures: textures,
		face:     basicfont.Face7x13,
	}
}

// SetScreenSize updates the frame dimensions.
func (h *HUD) SetScreenSize(width, height int) {
	h.width = width
	h.height = height
}

// canvas views frame as an image without copying.
func (h *HUD) canvas(frame []byte) (*image.RGBA, error) {
	if len(frame) != h.width*h.height*4 {
		return nil, fmt.Errorf("%w: got %d bytes for %dx%d", ErrFrameSize, len(frame), h.width, h.height)
	}
	return &image.RGBA{Pix: frame, Stride: h.width * 4, Rect: image.Rect(0, 0, h.width, h.height)}, nil
}

// Draw overlays the HUD for s onto frame.
func (h *HUD) Draw(frame []byte, s Status) error {
	img, err := h.canvas(frame)
	if err != nil {
		return err
	}
	if s.Hurt > 0 {
		h.tint(img, color.RGBA{200, 0, 0, 255}, s.Hurt*0.4)
	}
	if h.config.ShowWeapon {
		h.drawWeapon(img, s.Weapon, s.Bob)
	}
	if h.config.ShowHealth {
		h.drawHealthBar(img, 10, 10, s.Health, s.MaxHealth)
	}
	if h.config.ShowStats {
		line := fmt.Sprintf("Kills %d  Enemies %d  %02d:%02d", s.Kills, s.Enemies, int(s.Elapsed)/60, int(s.Elapsed)%60)
		h.text(img, line, h.width-h.measure(line)-10, 22, color.RGBA{220, 220, 220, 255})
	}
	if s.Message != "" {
		h.text(img, s.Message, (h.width-h.measure(s.Message))/2, 48, color.RGBA{255, 255, 200, 255})
	}
	return nil
}

// Banner dims the frame and centers a title with optional lines below it.
func (h *HUD) Banner(frame []byte, title string, lines ...string) error {
	img, err := h.canvas(frame)
	if err != nil {
		return err
	}
	h.tint(img, color.RGBA{0, 0, 0, 255}, h.config.Opacity)

	lineHeight := h.face.Metrics().Height.Ceil() + 4
	y := h.height/2 - (len(lines)*lineHeight)/2
	h.text(img, title, (h.width-h.measure(title))/2, y, color.RGBA{255, 255, 200, 255})
	y += lineHeight * 2
	for _, line := range lines {
		h.text(img, line, (h.width-h.measure(line))/2, y, color.RGBA{200, 200, 200, 255})
		y += lineHeight
	}
	return nil
}

// drawWeapon scales the weapon frame to a third of the screen width and pins it
// to the bottom center, pushed down by bob.
func (h *HUD) drawWeapon(img *image.RGBA, id texture.ID, bob float64) {
	if h.textures == nil {
		return
	}
	tex, ok := h.textures.Get(id)
	if !ok || tex.Width == 0 || tex.Height == 0 {
		return
	}
	w := h.width / 3
	if w == 0 {
		return
	}
	ht := w * tex.Height / tex.Width
	x0 := (h.width - w) / 2
	y0 := h.height - ht + int(bob)

	for y := 0; y < ht; y++ {
		fy := y0 + y
		if fy < 0 || fy >= h.height {
			continue
		}
		ty := y * tex.Height / ht
		for x := 0; x < w; x++ {
			fx := x0 + x
			if fx < 0 || fx >= h.width {
				continue
			}
			r, g, b, a := texture.Unpack(tex.Pixel(x*tex.Width/w, ty))
			if a == 0 {
				continue
			}
			blend(img.Pix, fy*img.Stride+fx*4, r, g, b, a)
		}
	}
}

// barWidth and barHeight size the health bar.
const (
	barWidth  = 160
	barHeight = 12
)

func (h *HUD) drawHealthBar(img *image.RGBA, x, y, health, max int) {
	h.fill(img, image.Rect(x-2, y-2, x+barWidth+2, y+barHeight+2), color.RGBA{20, 20, 30, 255}, h.config.Opacity)
	h.fill(img, image.Rect(x, y, x+barWidth, y+barHeight), color.RGBA{60, 20, 20, 255}, 1)

	if max > 0 && health > 0 {
		pct := float64(health) / float64(max)
		if pct > 1 {
			pct = 1
		}
		fw := int(float64(barWidth-2) * pct)
		if fw < 1 {
			fw = 1
		}
		h.fill(img, image.Rect(x+1, y+1, x+1+fw, y+barHeight-1), HealthColor(pct), 1)
	}

	label := fmt.Sprintf("%d/%d", health, max)
	h.text(img, label, x+barWidth/2-h.measure(label)/2, y+barHeight-2, color.RGBA{255, 255, 255, 255})
}

// HealthColor is green above 60%, yellow above 30% and red below.
func HealthColor(pct float64) color.RGBA {
	switch {
	case pct > 0.6:
		return color.RGBA{50, 180, 50, 255}
	case pct > 0.3:
		return color.RGBA{200, 180, 50, 255}
	default:
		return color.RGBA{200, 50, 50, 255}
	}
}

// fill blends c over r at the given opacity.
func (h *HUD) fill(img *image.RGBA, r image.Rectangle, c color.RGBA, opacity float64) {
	r = r.Intersect(img.Rect)
	if r.Empty() || opacity <= 0 {
		return
	}
	if opacity >= 1 {
		draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
		return
	}
	a := uint8(opacity * 255)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			blend(img.Pix, y*img.Stride+x*4, c.R, c.G, c.B, a)
		}
	}
}

func (h *HUD) tint(img *image.RGBA, c color.RGBA, amount float64) {
	if amount > 1 {
		amount = 1
	}
	h.fill(img, img.Rect, c, amount)
}

// text draws s with a one pixel shadow; y is the baseline.
func (h *HUD) text(img *image.RGBA, s string, x, y int, c color.RGBA) {
	d := &font.Drawer{Dst: img, Src: image.NewUniform(color.RGBA{0, 0, 0, 255}), Face: h.face}
	d.Dot = fixed.P(x+1, y+1)
	d.DrawString(s)
	d.Src = image.NewUniform(c)
	d.Dot = fixed.P(x, y)
	d.DrawString(s)
}

func (h *HUD) measure(s string) int {
	return font.MeasureString(h.face, s).Ceil()
}

// blend composites an RGBA texel over an opaque destination pixel.
func blend(pix []byte, idx int, r, g, b, a uint8) {
	if a == 255 {
		pix[idx], pix[idx+1], pix[idx+2], pix[idx+3] = r, g, b, 255
		return
	}
	af := float64(a) / 255
	pix[idx] = uint8(float64(r)*af + float64(pix[idx])*(1-af))
	pix[idx+1] = uint8(float64(g)*af + float64(pix[idx+1])*(1-af))
	pix[idx+2] = uint8(float64(b)*af + float64(pix[idx+2])*(1-af))
	pix[idx+3] = 255
}
