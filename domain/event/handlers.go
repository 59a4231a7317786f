package event

import (
	"log/slog"
	"sync"
)

// Handler Each kind of event has his own handler
// Based on the Chain of responsibility pattern
type Handler interface {
	Handle(event Event)
}

// Counter keeps how many events of each name went through the session.
type Counter struct {
	mu     sync.RWMutex
	counts map[string]uint64
}

func NewCounter() *Counter {
	return &Counter{counts: make(map[string]uint64)}
}

func (c *Counter) Increment(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[name]++
}

func (c *Counter) Get(name string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counts[name]
}

// Snapshot returns a copy safe to range over.
func (c *Counter) Snapshot() map[string]uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	res := make(map[string]uint64, len(c.counts))
	for name, count := range c.counts {
		res[name] = count
	}
	return res
}

// CountingHandler counts every handled event, logging the protocol rejections.
type CountingHandler struct {
	log     *slog.Logger
	counter *Counter
}

func NewCountingHandler(log *slog.Logger, counter *Counter) *CountingHandler {
	return &CountingHandler{log: log, counter: counter}
}

func (h *CountingHandler) Handle(e Event) {
	h.counter.Increment(e.Name())
	switch evt := e.(type) {
	case TradeOpenFailed:
		h.log.Debug("trade open rejected", "reason", evt.Reason)
	case TradeOtherNotAllowed, TradeYouNotAllowed:
		h.log.Debug("trade not allowed", "event", e.Name())
	case RoomInviteFailed:
		h.log.Debug("room invite rejected", "error_code", evt.ErrorCode, "recipients", len(evt.FailedRecipients))
	}
}
