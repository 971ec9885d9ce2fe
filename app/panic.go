package app

import (
	"fmt"
	"image/color"
	"strings"

	"toybox/hal"
	"toybox/sparkos/gfx"
	"toybox/sparkos/kernel"

	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

var colorPanicBG = color.RGBA{A: 0xFF}

// panicHandler logs a task panic, paints it on the framebuffer and hands it to record.
func panicHandler(h hal.HAL, record func(kernel.PanicInfo)) func(kernel.PanicInfo) {
	return func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}
		showPanic(h, lines)
		if record != nil {
			record(info)
		}
	}
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		"toybox panic:",
		fmt.Sprintf("task: %d", info.TaskID),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
	}
	return lines
}

// showPanic writes lines onto a terminal covering the whole framebuffer,
// stopping at the last row so the terminal never scrolls.
func showPanic(h hal.HAL, lines []string) {
	disp := h.Display()
	if disp == nil {
		return
	}
	d := gfx.NewDisplay(disp.Framebuffer())
	if d == nil {
		return
	}

	font := &proggy.TinySZ8pt7b
	fontHeight := int16(font.GetYAdvance())
	colWidth := int16(gfx.TextWidth(font, "0"))
	w, ht := d.Size()
	if fontHeight <= 0 || colWidth <= 0 {
		return
	}
	rows := int(ht / fontHeight)
	cols := int(w / colWidth)
	if rows <= 0 || cols <= 0 {
		return
	}

	d.Clear(colorPanicBG)
	term := tinyterm.NewTerminal(d)
	term.Configure(&tinyterm.Config{
		Font:       font,
		FontHeight: fontHeight,
		FontOffset: fontHeight * 3 / 4,
	})

	row := 0
	for _, line := range lines {
		for len(line) > 0 && row < rows {
			chunk, rest := takeRunes(line, cols)
			row++
			if row < rows {
				chunk += "\r\n"
			}
			_, _ = term.Write([]byte(chunk))
			line = rest
		}
	}
	_ = d.Display()
}

// takeRunes splits s after at most n runes.
func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 {
		return "", s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i], s[i:]
		}
		count++
	}
	return s, ""
}
