// Package app wires the kernel, the system services and one front-end task
// into a step function for the host runners.
package app

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"toybox/hal"
	"toybox/internal/buildinfo"
	"toybox/sparkos/kernel"
	"toybox/sparkos/proto"
	"toybox/sparkos/services/input"
	"toybox/sparkos/services/logger"
	"toybox/sparkos/tasks/calc"
	"toybox/sparkos/tasks/snake"
)

const (
	AppCalc  = "calc"
	AppSnake = "snake"

	shutdownRetries = 100
)

var ErrUnknownApp = errors.New("unknown app")

// Config selects the front end and its parameters.
type Config struct {
	App string

	Snake snake.Config
	// StepTicks is the snake step interval in ticks (milliseconds). Zero uses the default.
	StepTicks uint64
}

// FramebufferSize validates cfg and returns the framebuffer size its app needs.
func FramebufferSize(cfg Config) (width, height int, err error) {
	switch cfg.App {
	case AppCalc, "":
		return calc.DefaultWidth, calc.DefaultHeight, nil
	case AppSnake:
		sim, err := snake.New(cfg.Snake)
		if err != nil {
			return 0, 0, err
		}
		w, h := snake.FramebufferSize(sim.Board())
		return w, h, nil
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnknownApp, cfg.App)
	}
}

type system struct {
	h hal.HAL
	k *kernel.Kernel

	logEP   kernel.Capability
	ctlEP   kernel.Capability
	inputEP kernel.Capability
	taskEP  kernel.Capability

	exit     chan struct{}
	stop     chan struct{}
	panicked atomic.Pointer[kernel.PanicInfo]
	closing  sync.Once
}

// New starts the calculator with default config.
func New(h hal.HAL) func() error {
	return NewWithConfig(h, Config{})
}

// NewWithConfig starts the system and returns its step function.
//
// The step function returns hal.ErrExit once the front end asks to quit and a
// kernel.PanicInfo after a task panics. Either way the system is shut down first.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	s, err := newSystem(h, cfg)
	if err != nil {
		if l := h.Logger(); l != nil {
			l.WriteLineString("toybox: " + err.Error())
		}
		return func() error { return err }
	}
	return s.step
}

func newSystem(h hal.HAL, cfg Config) (*system, error) {
	s := &system{
		h:    h,
		k:    kernel.New(),
		exit: make(chan struct{}),
		stop: make(chan struct{}),
	}
	kernel.SetPanicHandler(panicHandler(h, func(info kernel.PanicInfo) { s.panicked.Store(&info) }))

	rw := kernel.RightSend | kernel.RightRecv
	s.logEP = s.k.NewEndpoint(rw)
	s.ctlEP = s.k.NewEndpoint(rw)
	s.inputEP = s.k.NewEndpoint(rw)
	s.taskEP = s.k.NewEndpoint(rw)

	logSend := s.logEP.Restrict(kernel.RightSend)
	ctlSend := s.ctlEP.Restrict(kernel.RightSend)
	taskRecv := s.taskEP.Restrict(kernel.RightRecv)

	var task kernel.Task
	switch cfg.App {
	case AppCalc, "":
		task = calc.NewTask(h.Display(), taskRecv, logSend, ctlSend)
	case AppSnake:
		sim, err := snake.New(cfg.Snake)
		if err != nil {
			return nil, err
		}
		task = snake.NewTask(h.Display(), taskRecv, logSend, ctlSend, sim, cfg.StepTicks)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownApp, cfg.App)
	}

	if l := h.Logger(); l != nil {
		name := cfg.App
		if name == "" {
			name = AppCalc
		}
		l.WriteLineString(fmt.Sprintf("toybox %s: starting %s", buildinfo.Long(), name))
	}

	s.k.AddTask(logger.New(h.Logger(), s.logEP.Restrict(kernel.RightRecv), ""))
	s.k.AddTask(control{ep: s.ctlEP.Restrict(kernel.RightRecv), exit: s.exit})
	if in := h.Input(); in != nil {
		s.k.AddTask(input.New(in, s.inputEP.Restrict(kernel.RightRecv), s.taskEP.Restrict(kernel.RightSend)))
	}
	s.k.AddTask(task)

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go s.pumpTicks(ch)
		}
	}
	return s, nil
}

func (s *system) pumpTicks(ch <-chan uint64) {
	for {
		select {
		case <-s.stop:
			return
		case seq, ok := <-ch:
			if !ok {
				return
			}
			s.k.TickTo(seq)
		}
	}
}

func (s *system) step() error {
	if info := s.panicked.Load(); info != nil {
		s.shutdown()
		return *info
	}
	select {
	case <-s.exit:
		s.shutdown()
		return hal.ErrExit
	default:
		return nil
	}
}

// shutdown stops every task and waits for them.
func (s *system) shutdown() {
	s.closing.Do(func() {
		for _, ep := range []kernel.Capability{s.taskEP, s.inputEP, s.ctlEP, s.logEP} {
			s.postShutdown(ep)
		}
		close(s.stop)
		s.k.Close()
		s.k.Wait()
	})
}

func (s *system) postShutdown(ep kernel.Capability) {
	for i := 0; i < shutdownRetries; i++ {
		if s.k.Post(ep, uint16(proto.MsgAppShutdown), nil) != kernel.SendErrQueueFull {
			return
		}
		time.Sleep(time.Millisecond)
	}
}

// control turns MsgAppExit into a closed exit channel.
type control struct {
	ep   kernel.Capability
	exit chan struct{}
}

func (c control) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(c.ep)
	if !ok {
		return
	}
	exited := false
	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgAppShutdown:
			return
		case proto.MsgAppExit:
			if !exited {
				exited = true
				close(c.exit)
			}
		}
	}
}
