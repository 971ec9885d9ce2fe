package input

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"toybox/hal"
	"toybox/hal/haltest"
	"toybox/sparkos/kernel"
	"toybox/sparkos/proto"
)

type recorder struct {
	ep  kernel.Capability
	out chan kernel.Message
}

func (r recorder) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(r.ep)
	if !ok {
		return
	}
	for msg := range ch {
		if proto.Kind(msg.Kind) == proto.MsgAppShutdown {
			return
		}
		r.out <- msg
	}
}

func TestServiceForwardsEvents(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	k := kernel.New()
	h := haltest.New(10, 10)
	rw := kernel.RightSend | kernel.RightRecv
	ctl := k.NewEndpoint(rw)
	out := k.NewEndpoint(rw)
	got := make(chan kernel.Message, 8)

	svc := New(h.Input(), ctl.Restrict(kernel.RightRecv), out.Restrict(kernel.RightSend))
	k.AddTask(svc)
	k.AddTask(recorder{ep: out.Restrict(kernel.RightRecv), out: got})

	h.Keys <- hal.KeyEvent{Code: hal.KeyLeft, Press: true}
	h.Ptrs <- hal.PointerEvent{X: 3, Y: 4, Press: true}

	var msg kernel.Message
	g.Eventually(got, time.Second).Should(Receive(&msg))
	g.Expect(proto.Kind(msg.Kind)).To(Equal(proto.MsgKey))
	ev, ok := proto.DecodeKeyPayload(msg.Payload())
	g.Expect(ok).To(BeTrue())
	g.Expect(ev).To(Equal(hal.KeyEvent{Code: hal.KeyLeft, Press: true}))

	g.Eventually(got, time.Second).Should(Receive(&msg))
	g.Expect(proto.Kind(msg.Kind)).To(Equal(proto.MsgPointer))
	pe, ok := proto.DecodePointerPayload(msg.Payload())
	g.Expect(ok).To(BeTrue())
	g.Expect(pe).To(Equal(hal.PointerEvent{X: 3, Y: 4, Press: true}))

	g.Expect(k.Post(ctl, uint16(proto.MsgAppShutdown), nil)).To(Equal(kernel.SendOK))
	g.Expect(k.Post(out, uint16(proto.MsgAppShutdown), nil)).To(Equal(kernel.SendOK))
	k.Wait()
	g.Expect(svc.Dropped()).To(BeZero())
}

func TestServiceCountsDrops(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	k := kernel.New()
	h := haltest.New(10, 10)
	rw := kernel.RightSend | kernel.RightRecv
	ctl := k.NewEndpoint(rw)
	out := k.NewEndpoint(rw)

	// Nobody drains out, so its queue fills up.
	svc := New(h.Input(), ctl.Restrict(kernel.RightRecv), out.Restrict(kernel.RightSend))
	k.AddTask(svc)
	for i := 0; i < 20; i++ {
		h.Keys <- hal.KeyEvent{Rune: 'a', Press: true}
	}
	g.Eventually(svc.Dropped, time.Second).Should(BeNumerically(">=", 4))

	g.Expect(k.Post(ctl, uint16(proto.MsgAppShutdown), nil)).To(Equal(kernel.SendOK))
	k.Wait()
}
