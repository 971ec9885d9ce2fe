package gfx

import (
	"image/color"
	"testing"

	"toybox/hal/haltest"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont/proggy"
)

var (
	white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	red   = color.RGBA{R: 0xFF, A: 0xFF}
	black = color.RGBA{A: 0xFF}
)

func TestFillRectangleClips(t *testing.T) {
	d := NewDisplay(haltest.NewFramebuffer(10, 10))
	d.Clear(black)
	if err := d.FillRectangle(8, 8, 5, 5, red); err != nil {
		t.Fatalf("FillRectangle: %v", err)
	}
	if got := d.PixelAt(9, 9); got != red {
		t.Fatalf("pixel (9,9) = %v, want red", got)
	}
	if got := d.PixelAt(7, 7); got != black {
		t.Fatalf("pixel (7,7) = %v, want black", got)
	}
}

func TestSetPixelOutOfBounds(t *testing.T) {
	d := NewDisplay(haltest.NewFramebuffer(4, 4))
	d.SetPixel(-1, 0, white)
	d.SetPixel(4, 0, white)
	d.SetPixel(0, 4, white)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if d.PixelAt(x, y) != black {
				t.Fatalf("pixel (%d,%d) written by out-of-bounds SetPixel", x, y)
			}
		}
	}
}

func TestNewDisplayNil(t *testing.T) {
	if NewDisplay(nil) != nil {
		t.Fatal("expected nil display for nil framebuffer")
	}
}

func TestDrawTextInkInsideBox(t *testing.T) {
	fb := haltest.NewFramebuffer(80, 20)
	d := NewDisplay(fb)
	d.Clear(black)
	d.DrawTextIn(&proggy.TinySZ8pt7b, 0, 0, 80, 20, "42", white, AlignCenter)

	ink := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 80; x++ {
			if d.PixelAt(x, y) == white {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Fatal("expected text pixels")
	}
	if w := TextWidth(&proggy.TinySZ8pt7b, "42"); w <= 0 {
		t.Fatalf("TextWidth = %d", w)
	}
}

func TestRGB565RoundTrip(t *testing.T) {
	for _, c := range []color.RGBA{white, red, black} {
		if got := RGBA(RGB565(c)); got != c {
			t.Fatalf("RGBA(RGB565(%v)) = %v", c, got)
		}
	}
}

func TestSetRotation(t *testing.T) {
	d := NewDisplay(haltest.NewFramebuffer(4, 4))
	if err := d.SetRotation(drivers.Rotation0); err != nil {
		t.Fatalf("SetRotation(0): %v", err)
	}
	if err := d.SetRotation(drivers.Rotation90); err == nil {
		t.Fatal("expected an error for a rotated display")
	}
}
