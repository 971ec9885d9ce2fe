package gfx

import (
	"image/color"

	"tinygo.org/x/tinyfont"
)

// Align positions text horizontally inside a box.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextWidth returns the advance width of s in pixels.
func TextWidth(font tinyfont.Fonter, s string) int {
	_, outbox := tinyfont.LineWidth(font, s)
	return int(outbox)
}

// DrawText draws s with its baseline at y.
func (d *Display) DrawText(font tinyfont.Fonter, x, y int, s string, c color.RGBA) {
	tinyfont.WriteLine(d, font, int16(x), int16(y), s, c)
}

// DrawTextIn draws s inside the box (x, y, w, h), vertically centred on the
// font's line height and aligned horizontally per align. Text wider than the
// box is right-aligned so the tail of a long number stays visible.
func (d *Display) DrawTextIn(font tinyfont.Fonter, x, y, w, h int, s string, c color.RGBA, align Align) {
	tw := TextWidth(font, s)
	tx := x
	switch {
	case tw > w:
		tx = x + w - tw
	case align == AlignCenter:
		tx = x + (w-tw)/2
	case align == AlignRight:
		tx = x + w - tw
	}

	lh := int(font.GetYAdvance())
	baseline := y + (h+lh)/2 - lh/4
	d.DrawText(font, tx, baseline, s, c)
}
