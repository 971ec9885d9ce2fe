package logger

import (
	"toybox/hal"
	"toybox/sparkos/kernel"
	"toybox/sparkos/proto"
)

// Service drains MsgLogLine messages into the HAL logger.
type Service struct {
	log    hal.Logger
	ep     kernel.Capability
	prefix string
}

func New(log hal.Logger, ep kernel.Capability, prefix string) *Service {
	return &Service{log: log, ep: ep, prefix: prefix}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	for msg := range ch {
		switch proto.Kind(msg.Kind) {
		case proto.MsgAppShutdown:
			return
		case proto.MsgLogLine:
			if s.log == nil {
				continue
			}
			if s.prefix == "" {
				s.log.WriteLineBytes(msg.Payload())
				continue
			}
			s.log.WriteLineString(s.prefix + string(msg.Payload()))
		}
	}
}
