package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"world-sync/contract"
	"world-sync/domain/event"
)

// EventFanout hands every applied event to the permanent sinks and to the
// subscribers of the event topic.
//
// Delivery is best effort: a failing sink is logged, a slow sink is given up
// on once sinkTimeout elapses. All sinks of one event are served concurrently
// and the next event waits for them, so each sink sees events in order unless
// it timed out.
//
// It is intended for side effects (journal, search, console), never for
// session state.
type EventFanout struct {
	log         *slog.Logger
	applied     <-chan event.Event
	sinks       []contract.EventSink
	registry    contract.IRegistry
	sinkTimeout time.Duration
	drained     chan struct{}
	drainOnce   sync.Once
}

func NewEventFanout(log *slog.Logger,
	applied <-chan event.Event,
	sinks []contract.EventSink,
	registry contract.IRegistry,
	sinkTimeout time.Duration) *EventFanout {
	return &EventFanout{
		log:         log,
		applied:     applied,
		sinks:       sinks,
		registry:    registry,
		sinkTimeout: sinkTimeout,
		drained:     make(chan struct{}),
	}
}

// Drained is closed once the applied channel is closed and its last event delivered.
func (w *EventFanout) Drained() <-chan struct{} {
	return w.drained
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping event fanout")
			return nil
		case evt, ok := <-w.applied:
			if !ok {
				w.log.Debug("Applied events channel is closed")
				w.drainOnce.Do(func() { close(w.drained) })
				return nil
			}
			w.Fanout(ctx, evt)
		}
	}
}

// Fanout returns once every sink consumed the event or timed out.
func (w *EventFanout) Fanout(ctx context.Context, evt event.Event) {
	sinks := append(append([]contract.EventSink(nil), w.sinks...), w.registry.GetSinksForTopic(evt.Topic())...)

	var wg sync.WaitGroup
	for _, sink := range sinks {
		wg.Add(1)
		go func(sink contract.EventSink) {
			defer wg.Done()
			w.deliver(ctx, sink, evt)
		}(sink)
	}
	wg.Wait()
}

func (w *EventFanout) deliver(ctx context.Context, sink contract.EventSink, evt event.Event) {
	sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- sink.Consume(sinkCtx, evt) }()

	select {
	case err := <-done:
		if err != nil {
			w.log.Warn("Sink failed to consume event", "event", evt.Name(), "error", err)
		}
	case <-sinkCtx.Done():
		w.log.Warn("Sink timed out", "event", evt.Name(), "timeout", w.sinkTimeout)
	}
}
