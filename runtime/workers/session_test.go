package workers

import (
	"context"
	"log/slog"
	"testing"

	"world-sync/domain/event"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type recordingApplier struct {
	seen   []event.Event
	reject map[string]bool
}

func (a *recordingApplier) Apply(evt event.Event) bool {
	a.seen = append(a.seen, evt)
	return !a.reject[evt.Name()]
}

func TestSessionWorker_AppliesInOrderAndForwards(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	inbox := make(chan event.Event, 3)
	applied := make(chan event.Event, 3)
	applier := &recordingApplier{reject: map[string]bool{event.TradeNotOpen{}.Name(): true}}

	// Given an event, a rejected one and an intent
	inbox <- event.TradeOpened{UserID: 1, OtherUserID: 2}
	inbox <- event.TradeNotOpen{}
	inbox <- event.AdvanceTrade{}
	close(inbox)

	// When the worker drains its inbox
	err := NewSessionWorker(inbox, applied, applier, log).Run(context.Background())

	// Then everything was applied in order and only accepted events are forwarded
	req.NoError(err)
	req.Equal([]event.Event{event.TradeOpened{UserID: 1, OtherUserID: 2}, event.TradeNotOpen{}, event.AdvanceTrade{}}, applier.seen)
	// And applied was closed behind the last one
	var forwarded []event.Event
	for evt := range applied {
		forwarded = append(forwarded, evt)
	}
	req.Equal([]event.Event{event.TradeOpened{UserID: 1, OtherUserID: 2}, event.AdvanceTrade{}}, forwarded)
}

func TestSessionWorker_StopsOnCancel(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewSessionWorker(make(chan event.Event), make(chan event.Event), &recordingApplier{}, log).Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
}
