// Package messenger keeps one conversation thread per participant.
// Threads are created lazily, never deleted, and only hidden on close.
// Every change publishes a new state; a state already handed to readers is never touched again.
package messenger

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"world-sync/contract"
	"world-sync/domain"
	"world-sync/domain/event"
	"world-sync/errors"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	noActiveThread = domain.ThreadID(0)
	alertTitle     = "friendlist.alert.title"
)

type state struct {
	threads  []domain.MessengerThread
	index    map[domain.ThreadID]int
	activeID domain.ThreadID
	hidden   map[domain.ThreadID]struct{}
	version  uint64
}

func (s *state) clone() *state {
	next := &state{
		threads:  make([]domain.MessengerThread, len(s.threads), len(s.threads)+1),
		index:    make(map[domain.ThreadID]int, len(s.index)+1),
		activeID: s.activeID,
		hidden:   make(map[domain.ThreadID]struct{}, len(s.hidden)),
		version:  s.version + 1,
	}
	copy(next.threads, s.threads)
	for id, pos := range s.index {
		next.index[id] = pos
	}
	for id := range s.hidden {
		next.hidden[id] = struct{}{}
	}
	return next
}

func (s *state) position(threadID domain.ThreadID) (int, bool) {
	pos, ok := s.index[threadID]
	return pos, ok
}

func (s *state) visible() []domain.MessengerThread {
	return lo.Filter(s.threads, func(thread domain.MessengerThread, _ int) bool {
		_, hidden := s.hidden[thread.ID]
		return !hidden
	})
}

// Synchronizer must be driven by a single goroutine; the read accessors are safe from any goroutine.
type Synchronizer struct {
	log      *slog.Logger
	sender   contract.CommandSender
	roster   contract.Roster
	identity contract.Identity
	notifier contract.Notifier
	sound    contract.SoundPlayer
	filter   contract.TextFilter
	state    atomic.Pointer[state]
}

// NewSynchronizer accepts a nil filter, inbound text is then kept as received.
func NewSynchronizer(log *slog.Logger,
	sender contract.CommandSender,
	roster contract.Roster,
	identity contract.Identity,
	notifier contract.Notifier,
	sound contract.SoundPlayer,
	filter contract.TextFilter) *Synchronizer {
	s := &Synchronizer{
		log:      log,
		sender:   sender,
		roster:   roster,
		identity: identity,
		notifier: notifier,
		sound:    sound,
		filter:   filter,
	}
	s.state.Store(&state{
		index:  map[domain.ThreadID]int{},
		hidden: map[domain.ThreadID]struct{}{},
	})
	return s
}

// GetOrCreateThread returns the thread of a participant, opening it on first contact.
// A newly opened thread is never hidden.
func (s *Synchronizer) GetOrCreateThread(participantID domain.UserID) (domain.MessengerThread, error) {
	current := s.state.Load()
	if pos, ok := current.position(domain.ThreadIDFor(participantID)); ok {
		return current.threads[pos], nil
	}

	friend, ok := s.roster.Resolve(participantID)
	if !ok {
		return domain.MessengerThread{}, fmt.Errorf("%w: %d", errors.ErrUnknownParticipant, participantID)
	}

	thread := domain.NewMessengerThread(friend, time.Now())
	next := current.clone()
	next.threads = append(next.threads, thread)
	next.index[thread.ID] = len(next.threads) - 1
	delete(next.hidden, thread.ID)
	s.state.Store(next)
	return thread, nil
}

// SetActive selects a thread and marks it read. Other threads keep their unread counts.
func (s *Synchronizer) SetActive(threadID domain.ThreadID) error {
	current := s.state.Load()
	pos, ok := current.position(threadID)
	if !ok {
		return fmt.Errorf("%w: %d", errors.ErrUnknownThread, threadID)
	}
	next := current.clone()
	next.threads[pos] = next.threads[pos].Read()
	next.activeID = threadID
	s.state.Store(next)
	return nil
}

func (s *Synchronizer) ClearActive() {
	current := s.state.Load()
	if current.activeID == noActiveThread {
		return
	}
	next := current.clone()
	next.activeID = noActiveThread
	s.state.Store(next)
}

// CloseThread hides a thread, its history stays. New activity shows it again.
func (s *Synchronizer) CloseThread(threadID domain.ThreadID) {
	current := s.state.Load()
	if _, ok := current.position(threadID); !ok {
		return
	}
	if _, hidden := current.hidden[threadID]; hidden {
		return
	}
	next := current.clone()
	next.hidden[threadID] = struct{}{}
	s.state.Store(next)
}

func (s *Synchronizer) SendMessage(threadID domain.ThreadID, text string) error {
	if text == "" {
		return nil
	}
	current := s.state.Load()
	pos, ok := current.position(threadID)
	if !ok {
		return fmt.Errorf("%w: %d", errors.ErrUnknownThread, threadID)
	}
	thread := current.threads[pos]

	s.sender.Send(domain.SendChatMessageCommand{RecipientID: thread.Participant.ID, Text: text})

	// First words ever sent in the very first conversation
	if len(current.threads) == 1 && len(thread.Groups()) == 1 {
		s.sound.Play(domain.SoundNewThread)
	}

	local := s.identity.CurrentUserID()
	s.appendMessage(threadID, domain.ThreadMessage{
		ID:         uuid.New(),
		SenderID:   &local,
		Text:       text,
		Kind:       domain.ChatMessage,
		ReceivedAt: time.Now(),
	})
	return nil
}

func (s *Synchronizer) OnChatMessage(evt event.ChatMessageReceived) {
	thread, err := s.GetOrCreateThread(evt.SenderID)
	if err != nil {
		s.log.Debug("Chat message dropped", "sender", evt.SenderID, "error", err)
		return
	}
	sender := evt.SenderID
	s.receive(thread.ID, domain.ThreadMessage{
		ID:               uuid.New(),
		SenderID:         &sender,
		Text:             s.censor(evt.Text),
		SecondsSinceSent: evt.SecondsSinceSent,
		ExtraData:        evt.ExtraData,
		Kind:             domain.ChatMessage,
		ReceivedAt:       time.Now(),
	})
}

func (s *Synchronizer) OnRoomInvite(evt event.RoomInviteReceived) {
	thread, err := s.GetOrCreateThread(evt.SenderID)
	if err != nil {
		s.log.Debug("Room invite dropped", "sender", evt.SenderID, "error", err)
		return
	}
	s.receive(thread.ID, domain.ThreadMessage{
		ID:         uuid.New(),
		Text:       s.censor(evt.Text),
		Kind:       domain.RoomInvite,
		ReceivedAt: time.Now(),
	})
}

func (s *Synchronizer) OnRoomInviteError(evt event.RoomInviteFailed) {
	recipients := lo.Map(evt.FailedRecipients, func(id domain.UserID, _ int) string {
		return fmt.Sprint(id)
	})
	s.notifier.Alert(domain.Notification{
		Kind:  domain.NotificationDefault,
		Title: alertTitle,
		Message: fmt.Sprintf("Received room invite error: errorCode: %d, recipients: %s",
			evt.ErrorCode, strings.Join(recipients, ",")),
	})
}

func (s *Synchronizer) receive(threadID domain.ThreadID, message domain.ThreadMessage) {
	thread := s.appendMessage(threadID, message)
	if thread.UnreadCount > 0 {
		s.sound.Play(domain.SoundMessageReceived)
	}
}

// appendMessage adds the message to a copy of the thread, reads it when active and un-hides it.
func (s *Synchronizer) appendMessage(threadID domain.ThreadID, message domain.ThreadMessage) domain.MessengerThread {
	current := s.state.Load()
	pos, ok := current.position(threadID)
	if !ok {
		return domain.MessengerThread{}
	}
	next := current.clone()
	thread := next.threads[pos].WithMessage(message)
	if next.activeID == thread.ID {
		thread = thread.Read()
	}
	next.threads[pos] = thread
	delete(next.hidden, thread.ID)
	s.state.Store(next)
	return thread
}

func (s *Synchronizer) censor(text string) string {
	if s.filter == nil {
		return text
	}
	return s.filter.Censor(text)
}

// Threads returns a copy of the thread list. Message slices inside are shared and must not be written.
func (s *Synchronizer) Threads() []domain.MessengerThread {
	return slices.Clone(s.state.Load().threads)
}

func (s *Synchronizer) Thread(threadID domain.ThreadID) (domain.MessengerThread, bool) {
	current := s.state.Load()
	pos, ok := current.position(threadID)
	if !ok {
		return domain.MessengerThread{}, false
	}
	return current.threads[pos], true
}

func (s *Synchronizer) VisibleThreads() []domain.MessengerThread {
	return s.state.Load().visible()
}

// ActiveThread is only reported while the selected thread is visible.
func (s *Synchronizer) ActiveThread() (domain.MessengerThread, bool) {
	current := s.state.Load()
	if current.activeID == noActiveThread {
		return domain.MessengerThread{}, false
	}
	return lo.Find(current.visible(), func(thread domain.MessengerThread) bool {
		return thread.ID == current.activeID
	})
}

func (s *Synchronizer) IconState() domain.IconState {
	visible := s.state.Load().visible()
	if len(visible) == 0 {
		return domain.IconHidden
	}
	if lo.SomeBy(visible, func(thread domain.MessengerThread) bool { return thread.UnreadCount > 0 }) {
		return domain.IconUnread
	}
	return domain.IconShow
}

func (s *Synchronizer) Version() uint64 {
	return s.state.Load().version
}
