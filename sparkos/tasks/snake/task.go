package snake

import (
	"toybox/hal"
	"toybox/sparkos/client/logger"
	"toybox/sparkos/gfx"
	"toybox/sparkos/kernel"
	"toybox/sparkos/proto"
)

const (
	// DefaultStepTicks is the time between simulation steps (1 tick = 1 ms).
	DefaultStepTicks = 200

	exitRetries = 8
)

// Task drives a Sim from the kernel tick and draws it after every step.
type Task struct {
	disp    hal.Display
	ep      kernel.Capability
	logCap  kernel.Capability
	exitCap kernel.Capability

	sim      *Sim
	interval uint64
	d        *gfx.Display

	paused   bool
	lastStep uint64
}

// NewTask returns a task that steps sim every interval ticks. A zero interval
// uses DefaultStepTicks.
func NewTask(disp hal.Display, ep, logCap, exitCap kernel.Capability, sim *Sim, interval uint64) *Task {
	if interval == 0 {
		interval = DefaultStepTicks
	}
	return &Task{
		disp:     disp,
		ep:       ep,
		logCap:   logCap,
		exitCap:  exitCap,
		sim:      sim,
		interval: interval,
	}
}

// Sim returns the simulation the task drives.
func (t *Task) Sim() *Sim { return t.sim }

// Paused reports whether stepping is suspended.
func (t *Task) Paused() bool { return t.paused }

// Run steps the simulation on the kernel tick and handles keys until MsgAppShutdown.
func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok || t.disp == nil || t.sim == nil {
		return
	}
	t.d = gfx.NewDisplay(t.disp.Framebuffer())
	if t.d == nil {
		return
	}

	done := make(chan struct{})
	defer close(done)
	ticks := ctx.TickPump(done)

	t.lastStep = ctx.NowTick()
	logger.Logf(ctx, t.logCap, "snake: start %dx%d", t.sim.Board().Width, t.sim.Board().Height)
	t.render()

	for {
		select {
		case msg := <-ch:
			switch proto.Kind(msg.Kind) {
			case proto.MsgAppShutdown:
				return
			case proto.MsgKey:
				ev, ok := proto.DecodeKeyPayload(msg.Payload())
				if !ok || !ev.Press {
					continue
				}
				t.handleKey(ctx, ev)
			}

		case now := <-ticks:
			if t.paused || !t.sim.Alive() {
				continue
			}
			if now-t.lastStep < t.interval {
				continue
			}
			t.lastStep = now
			st := t.sim.Tick()
			if !st.Alive {
				logger.Logf(ctx, t.logCap, "snake: game over, points %d", st.Score)
			}
			t.render()
		}
	}
}

func (t *Task) handleKey(ctx *kernel.Context, ev hal.KeyEvent) {
	cmd, dir := commandForKey(ev)
	switch cmd {
	case cmdTurn:
		if !t.paused {
			t.sim.SetDirection(dir)
		}
	case cmdPause:
		if !t.sim.Alive() {
			return
		}
		t.paused = !t.paused
		t.render()
	case cmdRestart:
		t.sim.Reset()
		t.paused = false
		t.lastStep = ctx.NowTick()
		logger.Log(ctx, t.logCap, "snake: restart")
		t.render()
	case cmdExit:
		t.requestExit(ctx)
	}
}

func (t *Task) requestExit(ctx *kernel.Context) {
	logger.Log(ctx, t.logCap, "snake: exit requested")
	if !t.exitCap.Valid() {
		return
	}
	if res := ctx.SendToCapRetry(t.exitCap, uint16(proto.MsgAppExit), nil, kernel.Capability{}, exitRetries); res != kernel.SendOK {
		logger.Logf(ctx, t.logCap, "snake: exit request failed: %s", res)
	}
}

func (t *Task) render() {
	render(t.d, t.sim, t.paused)
}
