package calc

import (
	"toybox/hal"
	"toybox/sparkos/client/logger"
	"toybox/sparkos/gfx"
	"toybox/sparkos/kernel"
	"toybox/sparkos/proto"
)

// exitRetries bounds how many ticks the task waits for room in the app queue.
const exitRetries = 8

// Task is the calculator front end: it turns key and pointer messages into
// operator inputs and redraws whenever the engine reports a change.
type Task struct {
	disp    hal.Display
	ep      kernel.Capability
	logCap  kernel.Capability
	exitCap kernel.Capability

	engine *Engine
	d      *gfx.Display
	layout layout

	pressed    Operator
	hasPressed bool
	dirty      bool
	wasErr     bool
}

// NewTask returns a calculator task that reads input on ep, logs to logCap and
// sends MsgAppExit to exitCap when the user quits.
func NewTask(disp hal.Display, ep, logCap, exitCap kernel.Capability) *Task {
	return &Task{
		disp:    disp,
		ep:      ep,
		logCap:  logCap,
		exitCap: exitCap,
		engine:  NewEngine(),
	}
}

// Engine returns the state machine the task drives.
func (t *Task) Engine() *Engine { return t.engine }

// Run draws the first frame, then handles messages until MsgAppShutdown.
func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok || t.disp == nil {
		return
	}
	t.d = gfx.NewDisplay(t.disp.Framebuffer())
	if t.d == nil {
		return
	}
	w, h := t.d.Size()
	t.layout = layout{width: int(w), height: int(h)}

	cancel := t.engine.Subscribe(func(d Display) {
		t.dirty = true
		if d.Err() && !t.wasErr {
			logger.Log(ctx, t.logCap, "calc: division by zero")
		}
		t.wasErr = d.Err()
	})
	defer cancel()

	logger.Log(ctx, t.logCap, "calc: ready")
	t.render()

	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgAppShutdown:
			return

		case proto.MsgKey:
			ev, ok := proto.DecodeKeyPayload(msg.Payload())
			if !ok || !ev.Press {
				continue
			}
			if isExitKey(ev) {
				t.requestExit(ctx)
				continue
			}
			if op, ok := OperatorForKey(ev); ok {
				t.engine.Apply(op)
			}

		case proto.MsgPointer:
			ev, ok := proto.DecodePointerPayload(msg.Payload())
			if !ok {
				continue
			}
			t.handlePointer(ev)
		}

		if t.dirty {
			t.render()
		}
	}
}

// handlePointer fires a button on release when the press started on the same button.
func (t *Task) handlePointer(ev hal.PointerEvent) {
	op, hit := t.layout.hit(ev.X, ev.Y)
	if ev.Press {
		t.pressed, t.hasPressed = op, hit
		t.dirty = true
		return
	}
	if !t.hasPressed {
		return
	}
	fire := hit && op == t.pressed
	t.hasPressed = false
	t.dirty = true
	if fire {
		t.engine.Apply(op)
	}
}

func (t *Task) requestExit(ctx *kernel.Context) {
	logger.Log(ctx, t.logCap, "calc: exit requested")
	if !t.exitCap.Valid() {
		return
	}
	if res := ctx.SendToCapRetry(t.exitCap, uint16(proto.MsgAppExit), nil, kernel.Capability{}, exitRetries); res != kernel.SendOK {
		logger.Logf(ctx, t.logCap, "calc: exit request failed: %s", res)
	}
}

func (t *Task) render() {
	t.dirty = false
	render(t.d, t.layout, t.engine.Display(), t.pressed, t.hasPressed)
}
