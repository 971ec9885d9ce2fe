package logger

import (
	"testing"

	. "github.com/onsi/gomega"

	"toybox/hal/haltest"
	client "toybox/sparkos/client/logger"
	"toybox/sparkos/kernel"
	"toybox/sparkos/proto"
)

// writer sends lines through the client package, then stops the service.
type writer struct {
	logCap kernel.Capability
	lines  []string
	result chan kernel.SendResult
}

func (w writer) Run(ctx *kernel.Context) {
	for _, line := range w.lines {
		w.result <- client.Log(ctx, w.logCap, line)
	}
	w.result <- ctx.SendToCapResult(w.logCap, uint16(proto.MsgAppShutdown), nil, kernel.Capability{})
}

func TestServiceWritesPrefixedLines(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	log := &haltest.Logger{}

	results := make(chan kernel.SendResult, 8)
	k.AddTask(New(log, ep.Restrict(kernel.RightRecv), "[app] "))
	k.AddTask(writer{logCap: ep.Restrict(kernel.RightSend), lines: []string{"one", "two"}, result: results})
	k.Wait()

	for i := 0; i < 3; i++ {
		g.Expect(<-results).To(Equal(kernel.SendOK))
	}
	g.Expect(log.Lines()).To(Equal([]string{"[app] one", "[app] two"}))
}

func TestClientRejectsInvalidCap(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(client.Log(&kernel.Context{}, kernel.Capability{}, "x")).To(Equal(kernel.SendErrInvalidToCap))
	g.Expect(client.Log(nil, kernel.Capability{}, "x")).To(Equal(kernel.SendErrInvalidToCap))
}

func TestClientTruncatesLongLines(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	k := kernel.New()
	ep := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	log := &haltest.Logger{}

	long := make([]byte, kernel.MaxMessageBytes+40)
	for i := range long {
		long[i] = 'a'
	}
	results := make(chan kernel.SendResult, 4)
	k.AddTask(New(log, ep.Restrict(kernel.RightRecv), ""))
	k.AddTask(writer{logCap: ep.Restrict(kernel.RightSend), lines: []string{string(long)}, result: results})
	k.Wait()

	g.Expect(<-results).To(Equal(kernel.SendOK))
	g.Expect(log.Lines()).To(HaveLen(1))
	g.Expect(log.Lines()[0]).To(HaveLen(kernel.MaxMessageBytes))
}
