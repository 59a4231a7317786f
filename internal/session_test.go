package internal

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"world-sync/domain"
	"world-sync/domain/event"
	"world-sync/errors"
	"world-sync/infrastructure/bus"
	"world-sync/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestSession(t *testing.T, config Config, dictionaries fstest.MapFS) (*Session, error) {
	ctrl := gomock.NewController(t)
	outputs := Outputs{
		Commands: &bytes.Buffer{},
		Notifier: mocks.NewMockNotifier(ctrl),
		Sound:    mocks.NewMockSoundPlayer(ctrl),
	}
	if dictionaries != nil {
		outputs.Dictionaries = dictionaries
	}
	return NewSession(config, logs.GetLoggerFromLevel(slog.LevelDebug), outputs)
}

func baseConfig() Config {
	return Config{
		LocalUserID:     1,
		BufferSize:      4,
		SinkTimeout:     time.Second,
		CharReplacement: "*",
		SearchLimit:     10,
		TimelineLimit:   10,
		HealthInterval:  time.Hour,
	}
}

func TestNewSession_RejectsLongReplacement(t *testing.T) {
	config := baseConfig()
	config.CensoredWords = "snake"
	config.CharReplacement = "##"

	_, err := newTestSession(t, config, nil)

	require.Error(t, err)
}

func TestNewTextFilter_Dictionaries(t *testing.T) {
	req := require.New(t)
	config := baseConfig()
	config.CensoredDir = "censored"
	config.CensoredWords = "badger"
	dictionaries := fstest.MapFS{"en.txt": {Data: []byte("snake\n")}}

	filter, err := newTextFilter(config, logs.GetLoggerFromLevel(slog.LevelDebug), dictionaries)

	req.NoError(err)
	req.Equal("****** and *****", filter.Censor("badger and snake"))
}

func TestNewTextFilter_Disabled(t *testing.T) {
	filter, err := newTextFilter(baseConfig(), logs.GetLoggerFromLevel(slog.LevelDebug), nil)

	require.NoError(t, err)
	require.Nil(t, filter)
}

func TestCommands_Handle(t *testing.T) {
	req := require.New(t)
	session, err := newTestSession(t, baseConfig(), nil)
	req.NoError(err)
	defer func() { _ = session.Close() }()
	var out bytes.Buffer
	commands := NewCommands(session, &out)

	req.False(commands.Handle(context.Background(), `{"type":"trade.completed"}`))
	req.True(commands.Handle(context.Background(), "/health"))
	req.True(commands.Handle(context.Background(), "/search"))
	req.True(commands.Handle(context.Background(), "/nope"))

	req.Contains(out.String(), "no health sample yet")
	req.Contains(out.String(), "usage: /search <words>")
	req.Contains(out.String(), `unknown command "nope"`)
}

func TestStateView_Consume(t *testing.T) {
	req := require.New(t)
	session, err := newTestSession(t, baseConfig(), nil)
	req.NoError(err)
	defer func() { _ = session.Close() }()
	var out bytes.Buffer

	err = NewStateView(session, &out).Consume(context.Background(), event.TradeCompleted{})

	req.NoError(err)
	req.Equal("trade: READY\n", out.String())
}

func TestSession_ShutdownAppliesEverythingRead(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	sound := mocks.NewMockSoundPlayer(ctrl)
	notifier.EXPECT().Alert(gomock.Any()).AnyTimes()
	sound.EXPECT().Play(gomock.Any()).AnyTimes()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	session, err := NewSession(baseConfig(), log, Outputs{Commands: &bytes.Buffer{}, Notifier: notifier, Sound: sound})
	req.NoError(err)
	defer func() { _ = session.Close() }()

	// Given a piped script much longer than the inbox
	const chats = 50
	var script strings.Builder
	script.WriteString(`{"type":"friends.list","payload":{"friends":[{"id":2,"name":"bob"}]}}` + "\n")
	for i := 0; i < chats; i++ {
		_, _ = fmt.Fprintf(&script, `{"type":"messenger.chat","payload":{"sender_id":2,"text":"line %d"}}`+"\n", i)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		session.Run(ctx)
	}()

	// When the input ends and the session shuts down
	req.NoError(bus.NewReader(strings.NewReader(script.String()), log, session.Orchestrator.Dispatch, nil).Run(ctx))
	req.NoError(session.Shutdown(ctx))

	// Then every line was applied and reached the sinks
	req.Equal(uint64(1), session.Counter.Get("friends.list"))
	req.Equal(uint64(chats), session.Counter.Get("messenger.chat"))
	thread, ok := session.Messenger.Thread(domain.ThreadIDFor(2))
	req.True(ok)
	req.Len(thread.Messages, chats+1)
	req.Equal("line 49", thread.Messages[chats].Text)

	// And later input is refused
	req.ErrorIs(session.Orchestrator.Dispatch(ctx, event.TradeCompleted{}), errors.ErrSessionClosed)

	session.Orchestrator.Stop()
	<-done
}
