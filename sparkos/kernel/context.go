package kernel

// Context provides task-local access to kernel operations.
type Context struct {
	k *Kernel
}

// RecvChan returns the inbound message channel for an endpoint capability.
func (c *Context) RecvChan(epCap Capability) (<-chan Message, bool) {
	if c.k == nil || !epCap.valid() || !epCap.canRecv() {
		return nil, false
	}

	c.k.mu.Lock()
	if epCap.ep >= c.k.endpointCount {
		c.k.mu.Unlock()
		return nil, false
	}
	ch := c.k.endpoints[epCap.ep].ch
	c.k.mu.Unlock()
	if ch == nil {
		return nil, false
	}
	return ch, true
}

// TryRecv reads one message from the capability endpoint without blocking.
func (c *Context) TryRecv(epCap Capability) (Message, bool) {
	ch, ok := c.RecvChan(epCap)
	if !ok {
		return Message{}, false
	}
	select {
	case msg, ok := <-ch:
		return msg, ok
	default:
		return Message{}, false
	}
}

// SendToCapResult sends a message and transfers an optional capability.
//
// The message From field is set to 0 (unknown).
func (c *Context) SendToCapResult(toCap Capability, kind uint16, payload []byte, xfer Capability) SendResult {
	if !toCap.valid() {
		return SendErrInvalidToCap
	}
	if !toCap.canSend() {
		return SendErrToNoSendRight
	}
	if c.k == nil {
		return SendErrNoEndpoint
	}
	return c.k.send(0, toCap.ep, kind, payload, xfer)
}

// SendToCapRetry is SendToCapResult that waits one tick and retries while the
// destination queue is full, at most limit times.
func (c *Context) SendToCapRetry(toCap Capability, kind uint16, payload []byte, xfer Capability, limit int) SendResult {
	for attempt := 0; ; attempt++ {
		res := c.SendToCapResult(toCap, kind, payload, xfer)
		if res != SendErrQueueFull || attempt >= limit {
			return res
		}
		c.BlockOnTick()
	}
}

// NowTick returns the last observed tick value.
func (c *Context) NowTick() uint64 {
	if c.k == nil {
		return 0
	}
	return c.k.nowTick()
}

// WaitTick blocks until tick advances past the provided value and returns the new tick.
//
// After Kernel.Close it returns after unchanged.
func (c *Context) WaitTick(after uint64) uint64 {
	if c.k == nil {
		return after
	}
	return c.k.waitTick(after)
}

// BlockOnTick blocks the task until the tick advances.
func (c *Context) BlockOnTick() {
	if c.k == nil {
		return
	}
	_ = c.k.waitTick(c.k.nowTick())
}

// TickPump forwards tick values to a channel until done is closed or the kernel closes.
//
// The pump starts from the tick current at the call. Slow consumers miss ticks
// rather than stalling the pump.
func (c *Context) TickPump(done <-chan struct{}) <-chan uint64 {
	tickCh := make(chan uint64, 16)
	last := c.NowTick()
	go func() {
		for {
			select {
			case <-done:
				return
			default:
			}
			next := c.WaitTick(last)
			if next == last {
				return
			}
			last = next
			select {
			case tickCh <- last:
			default:
			}
		}
	}()
	return tickCh
}
