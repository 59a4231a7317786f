package workers

import (
	"context"

	"world-sync/domain/event"
)

// TelemetrySink hands every applied event to the handler chain.
type TelemetrySink struct {
	handlers []event.Handler
}

func NewTelemetrySink(handlers ...event.Handler) *TelemetrySink {
	return &TelemetrySink{handlers: handlers}
}

func (s *TelemetrySink) Consume(_ context.Context, e event.Event) error {
	for _, h := range s.handlers {
		h.Handle(e)
	}
	return nil
}
