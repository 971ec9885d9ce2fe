package input

import (
	"sync/atomic"

	"toybox/hal"
	"toybox/sparkos/kernel"
	"toybox/sparkos/proto"
)

// Service forwards HAL key and pointer events to a consumer task as
// MsgKey/MsgPointer messages.
type Service struct {
	in      hal.Input
	ctlCap  kernel.Capability
	outCap  kernel.Capability
	dropped atomic.Uint64
}

// New forwards events from in to outCap. A MsgAppShutdown on ctlCap stops the service.
func New(in hal.Input, ctlCap, outCap kernel.Capability) *Service {
	return &Service{in: in, ctlCap: ctlCap, outCap: outCap}
}

// Dropped reports how many events were lost because the consumer queue was full.
func (s *Service) Dropped() uint64 { return s.dropped.Load() }

func (s *Service) Run(ctx *kernel.Context) {
	if ctx == nil || s.in == nil {
		return
	}
	ctl, ok := ctx.RecvChan(s.ctlCap)
	if !ok {
		return
	}

	var keys <-chan hal.KeyEvent
	if kbd := s.in.Keyboard(); kbd != nil {
		keys = kbd.Events()
	}
	var ptrs <-chan hal.PointerEvent
	if p := s.in.Pointer(); p != nil {
		ptrs = p.Events()
	}

	for {
		select {
		case msg := <-ctl:
			if proto.Kind(msg.Kind) == proto.MsgAppShutdown {
				return
			}
		case ev, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			s.forward(ctx, proto.MsgKey, proto.KeyPayload(ev))
		case ev, ok := <-ptrs:
			if !ok {
				ptrs = nil
				continue
			}
			s.forward(ctx, proto.MsgPointer, proto.PointerPayload(ev))
		}
	}
}

func (s *Service) forward(ctx *kernel.Context, kind proto.Kind, payload []byte) {
	if res := ctx.SendToCapResult(s.outCap, uint16(kind), payload, kernel.Capability{}); res != kernel.SendOK {
		s.dropped.Add(1)
	}
}
