// Package runtime moves events through the session: inbox, single writer, fanout.
// It holds no business rule; the subsystems own those.
package runtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"world-sync/contract"
	"world-sync/domain/event"
	"world-sync/errors"
	"world-sync/runtime/workers"
)

type Orchestrator struct {
	mu             sync.Mutex
	log            *slog.Logger
	supervisor     contract.ISupervisor
	registry       contract.IRegistry
	applier        workers.Applier
	permanentSinks []contract.EventSink
	extraWorkers   []contract.Worker
	inbox          chan event.Event
	applied        chan event.Event
	sinkTimeout    time.Duration
	fanout         *workers.EventFanout
	started        chan struct{}

	// closing guards the inbox: dispatches hold it shared, Shutdown closes the inbox under it.
	closing sync.RWMutex
	closed  bool
}

func NewOrchestrator(log *slog.Logger, supervisor contract.ISupervisor,
	registry contract.IRegistry, applier workers.Applier,
	bufferSize int, sinkTimeout time.Duration) *Orchestrator {
	return &Orchestrator{
		log:         log,
		supervisor:  supervisor,
		registry:    registry,
		applier:     applier,
		inbox:       make(chan event.Event, bufferSize),
		applied:     make(chan event.Event, bufferSize),
		sinkTimeout: sinkTimeout,
		started:     make(chan struct{}),
	}
}

// Add registers sinks receiving every applied event. Call it before Start.
func (o *Orchestrator) Add(sinks ...contract.EventSink) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.permanentSinks = append(o.permanentSinks, sinks...)
}

// AddWorkers supervises side workers next to the session pipeline. Call it before Start.
func (o *Orchestrator) AddWorkers(w ...contract.Worker) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.extraWorkers = append(o.extraWorkers, w...)
}

// Dispatch queues an event or intent for the session worker.
// It blocks while the inbox is full, events are never dropped.
// Once Shutdown has been called every dispatch fails with ErrSessionClosed.
func (o *Orchestrator) Dispatch(ctx context.Context, evt event.Event) error {
	o.closing.RLock()
	defer o.closing.RUnlock()
	if o.closed {
		return errors.ErrSessionClosed
	}
	select {
	case o.inbox <- evt:
		return nil
	case <-ctx.Done():
		o.log.Warn("Event not dispatched", "event", evt.Name(), "error", ctx.Err())
		return ctx.Err()
	}
}

// Channels names the pipeline channels for capacity sampling.
func (o *Orchestrator) Channels() []workers.NamedChannel {
	return []workers.NamedChannel{
		{Name: "inbox", Channel: o.inbox},
		{Name: "applied", Channel: o.applied},
	}
}

func (o *Orchestrator) RegisterSubscriber(subscriberID string, topic event.Topic, sink contract.EventSink) {
	o.registry.Subscribe(subscriberID, topic, sink)
}

func (o *Orchestrator) UnregisterSubscriber(subscriberID string, topic event.Topic) {
	o.registry.Unsubscribe(subscriberID, topic)
}

// Start blocks until the context is cancelled or Stop is called.
func (o *Orchestrator) Start(ctx context.Context) {
	o.mu.Lock()
	sinks := append([]contract.EventSink(nil), o.permanentSinks...)
	o.fanout = workers.NewEventFanout(o.log, o.applied, sinks, o.registry, o.sinkTimeout)
	o.supervisor.Add(
		workers.NewSessionWorker(o.inbox, o.applied, o.applier, o.log),
		o.fanout,
	)
	o.supervisor.Add(o.extraWorkers...)
	close(o.started)
	o.mu.Unlock()

	o.log.Info("Starting orchestrator and all supervised workers")
	o.supervisor.Run(ctx)
}

// Shutdown stops accepting events and waits until the queued ones are applied
// and handed to every sink, or ctx is done. Side workers keep running until Stop.
// It waits for Start when called first.
func (o *Orchestrator) Shutdown(ctx context.Context) error {
	o.closing.Lock()
	if !o.closed {
		o.closed = true
		close(o.inbox)
	}
	o.closing.Unlock()

	select {
	case <-o.started:
	case <-ctx.Done():
		return ctx.Err()
	}
	o.mu.Lock()
	fanout := o.fanout
	o.mu.Unlock()

	o.log.Info("Draining queued events")
	select {
	case <-fanout.Drained():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.supervisor.Stop()
}
