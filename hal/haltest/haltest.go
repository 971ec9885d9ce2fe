// Package haltest provides an in-memory hal.HAL for tests.
package haltest

import (
	"strings"
	"sync"

	"toybox/hal"
)

// Framebuffer is an RGB565 framebuffer backed by a byte slice.
type Framebuffer struct {
	mu       sync.Mutex
	width    int
	height   int
	buf      []byte
	presents int
}

func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{width: width, height: height, buf: make([]byte, width*height*2)}
}

func (f *Framebuffer) Width() int              { return f.width }
func (f *Framebuffer) Height() int             { return f.height }
func (f *Framebuffer) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *Framebuffer) StrideBytes() int        { return f.width * 2 }
func (f *Framebuffer) Buffer() []byte          { return f.buf }

func (f *Framebuffer) ClearRGB(r, g, b uint8) {
	pixel := uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(pixel)
		f.buf[i+1] = byte(pixel >> 8)
	}
}

func (f *Framebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presents++
	return nil
}

// Presents returns how many frames have been presented.
func (f *Framebuffer) Presents() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presents
}

// Logger records lines.
type Logger struct {
	mu    sync.Mutex
	lines []string
}

func (l *Logger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, s)
}

func (l *Logger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

// Lines returns a copy of the recorded lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

// Contains reports whether any recorded line contains sub.
func (l *Logger) Contains(sub string) bool {
	for _, line := range l.Lines() {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

// HAL is a hal.HAL whose inputs are fed by the test.
type HAL struct {
	FB   *Framebuffer
	Log  *Logger
	Keys chan hal.KeyEvent
	Ptrs chan hal.PointerEvent
	Tick chan uint64
}

func New(width, height int) *HAL {
	return &HAL{
		FB:   NewFramebuffer(width, height),
		Log:  &Logger{},
		Keys: make(chan hal.KeyEvent, 64),
		Ptrs: make(chan hal.PointerEvent, 64),
		Tick: make(chan uint64, 1024),
	}
}

func (h *HAL) Logger() hal.Logger   { return h.Log }
func (h *HAL) Display() hal.Display { return display{fb: h.FB} }
func (h *HAL) Input() hal.Input     { return input{h: h} }
func (h *HAL) Time() hal.Time       { return ticks{ch: h.Tick} }

type display struct{ fb *Framebuffer }

func (d display) Framebuffer() hal.Framebuffer { return d.fb }

type input struct{ h *HAL }

func (in input) Keyboard() hal.Keyboard { return keyboard{ch: in.h.Keys} }
func (in input) Pointer() hal.Pointer   { return pointer{ch: in.h.Ptrs} }

type keyboard struct{ ch chan hal.KeyEvent }

func (k keyboard) Events() <-chan hal.KeyEvent { return k.ch }

type pointer struct{ ch chan hal.PointerEvent }

func (p pointer) Events() <-chan hal.PointerEvent { return p.ch }

type ticks struct{ ch chan uint64 }

func (t ticks) Ticks() <-chan uint64 { return t.ch }
