//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"toybox/app"
	"toybox/hal"
	"toybox/sparkos/tasks/snake"
)

func main() {
	var hcfg hal.HeadlessConfig
	var cfg app.Config
	var board string
	var tickMS int
	var scale int
	var seed int64

	flag.StringVar(&cfg.App, "app", app.AppCalc, "Program to run: calc or snake.")
	flag.BoolVar(&hcfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&hcfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.IntVar(&scale, "scale", 2, "Window scale factor.")
	flag.StringVar(&board, "board", "30x30", "Snake board size as WxH cells.")
	flag.IntVar(&tickMS, "tick-ms", snake.DefaultStepTicks, "Snake step interval in milliseconds.")
	flag.Int64Var(&seed, "seed", 0, "Snake apple seed (0 = time based).")
	flag.Parse()

	w, h, err := parseBoard(board)
	if err != nil {
		fail(err)
	}
	if tickMS <= 0 {
		fail(fmt.Errorf("invalid -tick-ms: %d", tickMS))
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg.Snake = snake.Config{Width: w, Height: h, Seed: uint32(seed)}
	cfg.StepTicks = uint64(tickMS)

	fbW, fbH, err := app.FramebufferSize(cfg)
	if err != nil {
		fail(err)
	}
	newApp := func(h hal.HAL) func() error { return app.NewWithConfig(h, cfg) }

	if hcfg.Enabled {
		hcfg.Width, hcfg.Height = fbW, fbH
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, hcfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fail(err)
		}
		return
	}

	wcfg := hal.WindowConfig{Title: "toybox " + cfg.App, Width: fbW, Height: fbH, Scale: scale}
	if err := hal.RunWindow(wcfg, newApp); err != nil {
		fail(err)
	}
}

func parseBoard(s string) (int, int, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("invalid -board %q: want WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid -board %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid -board %q: %w", s, err)
	}
	return w, h, nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
