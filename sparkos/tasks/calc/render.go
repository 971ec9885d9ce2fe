package calc

import (
	"image/color"

	"toybox/sparkos/gfx"

	"tinygo.org/x/tinyfont/freemono"
)

var (
	colorBackground = color.RGBA{R: 0x20, G: 0x20, B: 0x24, A: 0xFF}
	colorDisplayBG  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	colorDisplayFG  = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF}
	colorErrorFG    = color.RGBA{R: 0xD0, G: 0x20, B: 0x20, A: 0xFF}
	colorButton     = color.RGBA{R: 0xDD, G: 0xDD, B: 0xDD, A: 0xFF}
	colorOperator   = color.RGBA{R: 0xF0, G: 0xA0, B: 0x30, A: 0xFF}
	colorPressed    = color.RGBA{R: 0x90, G: 0x90, B: 0x90, A: 0xFF}
	colorLabel      = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xFF}
)

const (
	buttonGap  = 2
	displayPad = 12
)

// render draws the display row and the button grid, then presents the frame.
func render(d *gfx.Display, l layout, disp Display, pressed Operator, hasPressed bool) {
	d.Clear(colorBackground)

	r := l.display()
	_ = d.FillRectangle(int16(r.x), int16(r.y), int16(r.w), int16(r.h), colorDisplayBG)
	fg := colorDisplayFG
	if disp.Err() {
		fg = colorErrorFG
	}
	d.DrawTextIn(&freemono.Bold18pt7b, r.x+displayPad, r.y, r.w-2*displayPad, r.h, disp.String(), fg, gfx.AlignRight)

	for _, op := range Operators() {
		b := l.button(op)
		bg := colorButton
		switch {
		case hasPressed && op == pressed:
			bg = colorPressed
		case op.IsBinary() || op == Equals || op == Clear:
			bg = colorOperator
		}
		_ = d.FillRectangle(int16(b.x+buttonGap), int16(b.y+buttonGap), int16(b.w-2*buttonGap), int16(b.h-2*buttonGap), bg)
		d.DrawTextIn(&freemono.Bold18pt7b, b.x, b.y, b.w, b.h, op.String(), colorLabel, gfx.AlignCenter)
	}

	_ = d.Display()
}
