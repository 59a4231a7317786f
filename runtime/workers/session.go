package workers

import (
	"context"
	"log/slog"

	"world-sync/contract"
	"world-sync/domain/event"
)

var _ contract.Worker = (*SessionWorker)(nil)

// Applier mutates session state for one event and reports whether it was accepted.
type Applier interface {
	Apply(evt event.Event) bool
}

// SessionWorker is the only goroutine touching session state.
// Events and user intents share its inbox and are applied one at a time, in arrival order.
// Closing the inbox drains it, then closes applied.
type SessionWorker struct {
	inbox   <-chan event.Event
	applied chan<- event.Event
	applier Applier
	log     *slog.Logger
}

func NewSessionWorker(inbox <-chan event.Event, applied chan<- event.Event, applier Applier, log *slog.Logger) *SessionWorker {
	return &SessionWorker{inbox: inbox, applied: applied, applier: applier, log: log}
}

func (w *SessionWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping worker")
			return ctx.Err()
		case evt, ok := <-w.inbox:
			if !ok {
				// Everything queued has been applied, the fanout can finish too
				w.log.Debug("Inbox is closed")
				close(w.applied)
				return nil
			}
			if !w.applier.Apply(evt) {
				continue
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case w.applied <- evt:
			}
		}
	}
}
