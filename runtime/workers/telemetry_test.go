package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"world-sync/domain/event"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestTelemetrySink_CountsAppliedEvents(t *testing.T) {
	req := require.New(t)
	counter := event.NewCounter()
	sink := NewTelemetrySink(event.NewCountingHandler(logs.GetLoggerFromLevel(slog.LevelDebug), counter))

	req.NoError(sink.Consume(context.Background(), event.TradeCompleted{}))
	req.NoError(sink.Consume(context.Background(), event.TradeCompleted{}))

	req.Equal(uint64(2), counter.Get("trade.completed"))
}

func TestChannelCapacityWorker_Samples(t *testing.T) {
	req := require.New(t)
	inbox := make(chan event.Event, 4)
	inbox <- event.TradeCompleted{}
	worker := NewChannelCapacityWorker(logs.GetLoggerFromLevel(slog.LevelDebug), []NamedChannel{
		{Name: "inbox", Channel: inbox},
		{Name: "not a channel", Channel: 3},
	}, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	// When
	go func() { done <- worker.Run(ctx) }()

	// Then
	req.Eventually(func() bool { return len(worker.Last()) == 1 }, time.Second, 10*time.Millisecond)
	req.Equal([]ChannelCapacity{{Name: "inbox", Capacity: 4, Length: 1}}, worker.Last())
	cancel()
	req.ErrorIs(<-done, context.Canceled)
}
