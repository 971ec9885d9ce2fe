package kernel

import (
	"testing"
	"time"
)

const testTimeout = 1 * time.Second

func TestMessagePayloadClampsLen(t *testing.T) {
	var msg Message
	msg.Len = MaxMessageBytes + 10
	if got := len(msg.Payload()); got != MaxMessageBytes {
		t.Fatalf("expected payload length %d, got %d", MaxMessageBytes, got)
	}
}

func TestCapabilityRestrict(t *testing.T) {
	k := New()
	cap := k.NewEndpoint(RightSend | RightRecv)
	if !cap.Valid() {
		t.Fatal("expected valid capability")
	}
	if r := cap.Restrict(RightSend); !r.canSend() || r.canRecv() {
		t.Fatal("Restrict(RightSend) kept the recv right")
	}
	if r := cap.Restrict(RightSend).Restrict(RightRecv); r.Valid() {
		t.Fatal("expected invalid capability after dropping every right")
	}
}

func TestContextRecvNeedsRight(t *testing.T) {
	k := New()
	cap := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k}

	if _, ok := ctx.RecvChan(cap.Restrict(RightSend)); ok {
		t.Fatal("expected RecvChan to refuse a send-only capability")
	}
	if res := ctx.SendToCapResult(cap.Restrict(RightRecv), 1, nil, Capability{}); res != SendErrToNoSendRight {
		t.Fatalf("expected SendErrToNoSendRight, got %s", res)
	}
	if res := ctx.SendToCapResult(Capability{}, 1, nil, Capability{}); res != SendErrInvalidToCap {
		t.Fatalf("expected SendErrInvalidToCap, got %s", res)
	}
}

func TestSendDeliversInOrder(t *testing.T) {
	k := New()
	cap := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k}

	for i := 0; i < 4; i++ {
		if res := ctx.SendToCapResult(cap, uint16(i), []byte{byte(i)}, Capability{}); res != SendOK {
			t.Fatalf("send %d: %s", i, res)
		}
	}
	for i := 0; i < 4; i++ {
		msg, ok := ctx.TryRecv(cap)
		if !ok {
			t.Fatalf("TryRecv %d: empty", i)
		}
		if msg.Kind != uint16(i) || msg.Payload()[0] != byte(i) {
			t.Fatalf("message %d out of order: kind=%d", i, msg.Kind)
		}
	}
	if _, ok := ctx.TryRecv(cap); ok {
		t.Fatal("expected empty endpoint")
	}
}

func TestSendRejectsLargePayload(t *testing.T) {
	k := New()
	cap := k.NewEndpoint(RightSend | RightRecv)
	if res := k.Post(cap, 1, make([]byte, MaxMessageBytes+1)); res != SendErrPayloadTooLarge {
		t.Fatalf("expected SendErrPayloadTooLarge, got %s", res)
	}
}

func TestSendToCapRetryZeroLimitDoesNotBlock(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k}
	to := ep.Restrict(RightSend)

	for i := 0; i < mailboxSlots; i++ {
		if res := ctx.SendToCapResult(to, 1, []byte("x"), Capability{}); res != SendOK {
			t.Fatalf("expected SendOK filling queue, got %s", res)
		}
	}

	res := ctx.SendToCapRetry(to, 1, []byte("y"), Capability{}, 0)
	if res != SendErrQueueFull {
		t.Fatalf("expected SendErrQueueFull, got %s", res)
	}
}

func TestSendToCapRetrySucceedsAfterDrain(t *testing.T) {
	k := New()
	ep := k.NewEndpoint(RightSend | RightRecv)
	ctx := &Context{k: k}
	to := ep.Restrict(RightSend)
	ch, ok := ctx.RecvChan(ep.Restrict(RightRecv))
	if !ok || ch == nil {
		t.Fatal("expected recv channel")
	}

	for i := 0; i < mailboxSlots; i++ {
		if res := ctx.SendToCapResult(to, 1, []byte("x"), Capability{}); res != SendOK {
			t.Fatalf("expected SendOK filling queue, got %s", res)
		}
	}

	resultCh := make(chan SendResult, 1)
	go func() {
		resultCh <- ctx.SendToCapRetry(to, 1, []byte("y"), Capability{}, 5)
	}()

	<-ch
	go func() {
		for i := uint64(1); i <= 10; i++ {
			k.TickTo(i)
			time.Sleep(1 * time.Millisecond)
		}
	}()

	select {
	case res := <-resultCh:
		if res != SendOK {
			t.Fatalf("expected SendOK after drain, got %s", res)
		}
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for send retry")
	}
}

func TestWaitTickReleasedByClose(t *testing.T) {
	k := New()
	ctx := &Context{k: k}

	done := make(chan uint64, 1)
	go func() { done <- ctx.WaitTick(0) }()

	k.Close()
	select {
	case got := <-done:
		if got != 0 {
			t.Fatalf("WaitTick after Close = %d, want 0", got)
		}
	case <-time.After(testTimeout):
		t.Fatal("WaitTick not released by Close")
	}
}

func TestTickPumpForwardsTicks(t *testing.T) {
	k := New()
	ctx := &Context{k: k}
	done := make(chan struct{})
	defer close(done)

	ticks := ctx.TickPump(done)
	k.TickTo(3)
	select {
	case got := <-ticks:
		if got != 3 {
			t.Fatalf("tick = %d, want 3", got)
		}
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for tick")
	}
	k.Close()
}

type panicTask struct{}

func (panicTask) Run(*Context) { panic("boom") }

func TestTaskPanicIsRecovered(t *testing.T) {
	got := make(chan PanicInfo, 1)
	SetPanicHandler(func(info PanicInfo) { got <- info })

	k := New()
	id := k.AddTask(panicTask{})
	k.Wait()

	select {
	case info := <-got:
		if info.TaskID != id || info.Value != "boom" {
			t.Fatalf("panic info = %+v", info)
		}
		if len(info.Stack) == 0 {
			t.Fatal("expected a captured stack")
		}
	case <-time.After(testTimeout):
		t.Fatal("panic handler not called")
	}
	if !InPanicMode() {
		t.Fatal("expected panic mode")
	}
	if first, ok := FirstPanic(); !ok || first.Value != "boom" {
		t.Fatalf("FirstPanic = %+v, %v", first, ok)
	}
}
