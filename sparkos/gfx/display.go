// Package gfx draws into an RGB565 hal.Framebuffer through the tinygo
// drivers.Displayer contract so tinyfont can render onto it.
package gfx

import (
	"errors"
	"image/color"

	"toybox/hal"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*Display)(nil)

var errUnsupportedRotation = errors.New("gfx: rotation not supported")

// Display adapts a framebuffer to drivers.Displayer.
type Display struct {
	fb hal.Framebuffer
}

// NewDisplay returns nil if fb is nil or not RGB565.
func NewDisplay(fb hal.Framebuffer) *Display {
	if fb == nil || fb.Format() != hal.PixelFormatRGB565 {
		return nil
	}
	return &Display{fb: fb}
}

func (d *Display) Framebuffer() hal.Framebuffer { return d.fb }

func (d *Display) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *Display) SetPixel(x, y int16, c color.RGBA) {
	buf := d.fb.Buffer()
	ix := int(x)
	iy := int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}

	pixel := RGB565(c)
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

// Display presents the framebuffer.
func (d *Display) Display() error {
	return d.fb.Present()
}

// SetScroll is a no-op: framebuffers have no hardware scroll.
func (d *Display) SetScroll(line int16) {}

// SetRotation accepts only the native orientation.
func (d *Display) SetRotation(rotation drivers.Rotation) error {
	if rotation != drivers.Rotation0 {
		return errUnsupportedRotation
	}
	return nil
}

func (d *Display) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	buf := d.fb.Buffer()
	w := d.fb.Width()
	h := d.fb.Height()

	x0 := clampInt(int(x), 0, w)
	y0 := clampInt(int(y), 0, h)
	x1 := clampInt(int(x)+int(width), 0, w)
	y1 := clampInt(int(y)+int(height), 0, h)
	if x0 >= x1 || y0 >= y1 {
		return nil
	}

	pixel := RGB565(c)
	lo := byte(pixel)
	hi := byte(pixel >> 8)

	stride := d.fb.StrideBytes()
	for py := y0; py < y1; py++ {
		row := py * stride
		for px := x0; px < x1; px++ {
			off := row + px*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
	return nil
}

// Clear fills the whole framebuffer with c.
func (d *Display) Clear(c color.RGBA) {
	d.fb.ClearRGB(c.R, c.G, c.B)
}

// PixelAt decodes the pixel at (x, y) back to 8-bit channels.
func (d *Display) PixelAt(x, y int) color.RGBA {
	if x < 0 || x >= d.fb.Width() || y < 0 || y >= d.fb.Height() {
		return color.RGBA{}
	}
	buf := d.fb.Buffer()
	off := y*d.fb.StrideBytes() + x*2
	if off < 0 || off+1 >= len(buf) {
		return color.RGBA{}
	}
	p := uint16(buf[off]) | uint16(buf[off+1])<<8
	return RGBA(p)
}

// RGB565 packs c into rrrrrggggggbbbbb.
func RGB565(c color.RGBA) uint16 {
	return uint16((uint16(c.R>>3)&0x1F)<<11 | (uint16(c.G>>2)&0x3F)<<5 | (uint16(c.B>>3) & 0x1F))
}

// RGBA expands an RGB565 pixel to an opaque color.
func RGBA(p uint16) color.RGBA {
	r := (p >> 11) & 0x1F
	g := (p >> 5) & 0x3F
	b := p & 0x1F
	return color.RGBA{R: uint8(r * 255 / 31), G: uint8(g * 255 / 63), B: uint8(b * 255 / 31), A: 0xFF}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
