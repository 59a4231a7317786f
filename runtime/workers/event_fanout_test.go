package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"world-sync/contract"
	"world-sync/domain/event"
	"world-sync/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEventFanout_Fanout(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	mockRegistry := mocks.NewMockIRegistry(ctrl)
	permanent := mocks.NewMockEventSink(ctrl)
	subscriber := mocks.NewMockEventSink(ctrl)

	fanout := NewEventFanout(log, nil, []contract.EventSink{permanent}, mockRegistry, time.Second)
	evt := event.ChatMessageReceived{SenderID: 2, Text: "hi"}

	// Given one subscriber on the messenger topic
	mockRegistry.EXPECT().GetSinksForTopic(event.TopicMessenger).Return([]contract.EventSink{subscriber}).Times(1)

	// Then both sinks consume the event
	permanent.EXPECT().Consume(gomock.Any(), evt).Return(nil).Times(1)
	subscriber.EXPECT().Consume(gomock.Any(), evt).Return(nil).Times(1)

	// When the event is fanned out
	fanout.Fanout(context.Background(), evt)
}

func TestEventFanout_SinkTimeout(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	mockRegistry := mocks.NewMockIRegistry(ctrl)
	slow := mocks.NewMockEventSink(ctrl)
	fast := mocks.NewMockEventSink(ctrl)

	fanout := NewEventFanout(log, nil, []contract.EventSink{slow, fast}, mockRegistry, 20*time.Millisecond)

	mockRegistry.EXPECT().GetSinksForTopic(gomock.Any()).Return(nil).Times(1)
	slow.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, evt event.Event) error {
			<-ctx.Done()
			return ctx.Err()
		}).
		Times(1)
	fast.EXPECT().Consume(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	// When one sink never answers
	start := time.Now()
	fanout.Fanout(context.Background(), event.TradeCompleted{})

	// Then the fanout gives up after the timeout
	req.Less(time.Since(start), time.Second)
}

func TestEventFanout_Run(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	mockRegistry := mocks.NewMockIRegistry(ctrl)
	sink := mocks.NewMockEventSink(ctrl)

	applied := make(chan event.Event, 2)
	fanout := NewEventFanout(log, applied, []contract.EventSink{sink}, mockRegistry, time.Second)

	mockRegistry.EXPECT().GetSinksForTopic(gomock.Any()).Return(nil).Times(2)
	gomock.InOrder(
		sink.EXPECT().Consume(gomock.Any(), event.RoomUnitAdded{RoomIndex: 1}).Return(nil),
		sink.EXPECT().Consume(gomock.Any(), event.RoomUnitAdded{RoomIndex: 2}).Return(nil),
	)

	// When two events are applied and the channel is closed
	applied <- event.RoomUnitAdded{RoomIndex: 1}
	applied <- event.RoomUnitAdded{RoomIndex: 2}
	close(applied)

	// Then they are delivered in order and the worker ends cleanly
	require.NoError(t, fanout.Run(context.Background()))
	select {
	case <-fanout.Drained():
	default:
		require.Fail(t, "fanout should report it is drained")
	}
}
