package snake

import (
	"fmt"
	"image/color"

	"toybox/sparkos/gfx"

	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"
)

// TileSize is the edge of one grid cell in pixels.
const TileSize = 10

var (
	colorBackground = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
	colorWall       = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xFF}
	colorHead       = color.RGBA{R: 0x50, G: 0xD1, B: 0xFF, A: 0xFF}
	colorBody       = color.RGBA{R: 0x50, G: 0xFF, B: 0x50, A: 0xFF}
	colorApple      = color.RGBA{R: 0xFF, G: 0x50, B: 0x50, A: 0xFF}
	colorText       = color.RGBA{R: 0xEE, G: 0xEE, B: 0xEE, A: 0xFF}
	colorBanner     = color.RGBA{R: 0xFF, G: 0xD1, B: 0x4A, A: 0xFF}
)

// FramebufferSize returns the pixel size needed to draw board.
func FramebufferSize(board Board) (width, height int) {
	return board.Width * TileSize, board.Height * TileSize
}

func drawCell(d *gfx.Display, p Point, c color.RGBA) {
	_ = d.FillRectangle(int16(p.X*TileSize), int16(p.Y*TileSize), TileSize, TileSize, c)
}

// render draws the wall, apple and snake plus the score line and any banner.
func render(d *gfx.Display, s *Sim, paused bool) {
	d.Clear(colorBackground)

	b := s.Board()
	w, h := FramebufferSize(b)
	_ = d.FillRectangle(0, 0, int16(w), TileSize, colorWall)
	_ = d.FillRectangle(0, int16(h-TileSize), int16(w), TileSize, colorWall)
	_ = d.FillRectangle(0, 0, TileSize, int16(h), colorWall)
	_ = d.FillRectangle(int16(w-TileSize), 0, TileSize, int16(h), colorWall)

	drawCell(d, s.Apple(), colorApple)
	for i, p := range s.Body() {
		c := colorBody
		if i == 0 {
			c = colorHead
		}
		drawCell(d, p, c)
	}

	points := fmt.Sprintf("Points: %d", s.Score())
	d.DrawText(&proggy.TinySZ8pt7b, TileSize, TileSize-1, points, colorText)

	switch {
	case !s.Alive():
		cy := h / 2
		d.DrawTextIn(&freemono.Bold12pt7b, 0, cy-40, w, 30, "GameOver!", colorBanner, gfx.AlignCenter)
		d.DrawTextIn(&freemono.Bold12pt7b, 0, cy+10, w, 30, points, colorBanner, gfx.AlignCenter)
		d.DrawTextIn(&proggy.TinySZ8pt7b, 0, cy+40, w, 12, "r restart | q quit", colorText, gfx.AlignCenter)
	case paused:
		d.DrawTextIn(&freemono.Bold12pt7b, 0, h/2-15, w, 30, "PAUSED", colorBanner, gfx.AlignCenter)
	}

	_ = d.Display()
}
