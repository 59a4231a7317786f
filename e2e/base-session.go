package e2e

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"world-sync/domain"
	"world-sync/domain/event"
	"world-sync/internal"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

type BaseSessionSuite struct {
	suite.Suite
	Config Config
}

// SetupSuite loads the environment configuration before running tests
func (s *BaseSessionSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
}

// Harness is a running session with its outputs captured.
type Harness struct {
	*internal.Session
	ctx      context.Context
	commands *lockedBuffer
	mu       sync.Mutex
	alerts   []domain.Notification
	sounds   []domain.SoundCue
}

func (h *Harness) Alert(notification domain.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.alerts = append(h.alerts, notification)
}

func (h *Harness) Play(cue domain.SoundCue) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.sounds = append(h.sounds, cue)
}

func (h *Harness) Alerts() []domain.Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]domain.Notification(nil), h.alerts...)
}

func (h *Harness) Sounds() []domain.SoundCue {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]domain.SoundCue(nil), h.sounds...)
}

// Commands lists the JSON lines sent to the server so far.
func (h *Harness) Commands() []string {
	return h.commands.Lines()
}

// WithSession runs fn against a fresh session, printing a header for the step.
func (s *BaseSessionSuite) WithSession(name string, fn func(h *Harness)) {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	s.T().Log(header)

	config := internal.Config{
		LocalUserID:     s.Config.LocalUserID,
		BufferSize:      16,
		SinkTimeout:     time.Second,
		CensoredWords:   "snake",
		CharReplacement: "*",
		SearchLimit:     10,
		TimelineLimit:   50,
		HealthInterval:  time.Hour,
	}
	h := &Harness{commands: &lockedBuffer{}}
	session, err := internal.NewSession(config, logs.GetLoggerFromLevel(slog.LevelDebug), internal.Outputs{
		Commands: h.commands,
		Notifier: h,
		Sound:    h,
	})
	s.Require().NoError(err)
	h.Session = session

	ctx, cancel := context.WithCancel(context.Background())
	h.ctx = ctx
	done := make(chan struct{})
	go func() {
		defer close(done)
		session.Run(ctx)
	}()
	defer func() {
		cancel()
		<-done
		s.Require().NoError(session.Close())
	}()

	fn(h)
}

// Send dispatches events in arrival order, it does not wait for them to be applied.
func (s *BaseSessionSuite) Send(h *Harness, events ...event.Event) {
	for _, evt := range events {
		s.Require().NoError(h.Orchestrator.Dispatch(h.ctx, evt))
	}
}

// WaitFor polls cond for the configured event timeout.
func (s *BaseSessionSuite) WaitFor(cond func() bool, msg string) {
	s.Require().Eventually(cond, s.Config.EventTimeout, 10*time.Millisecond, msg)
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	text := strings.TrimSpace(b.buf.String())
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
