//go:build !tinygo && !cgo

package hal

import "errors"

// WindowConfig sizes and names the desktop window.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	Scale  int
}

func RunWindow(_ WindowConfig, _ func(h HAL) func() error) error {
	return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
}
