package domain

import (
	"time"

	"github.com/google/uuid"
)

type MessageKind string

const (
	ChatMessage    MessageKind = "CHAT"
	RoomInvite     MessageKind = "ROOM_INVITE"
	SecurityNotice MessageKind = "SECURITY_NOTICE"
)

type IconState string

const (
	IconHidden IconState = "HIDDEN"
	IconShow   IconState = "SHOW"
	IconUnread IconState = "UNREAD"
)

// SecurityNoticeKey is the localization key of the notice opening every thread.
const SecurityNoticeKey = "messenger.moderationinfo"

// ThreadMessage is one immutable entry of a thread.
// A nil SenderID marks a system line (room invite, security notice).
type ThreadMessage struct {
	ID               uuid.UUID
	SenderID         *UserID
	Text             string
	SecondsSinceSent int
	ExtraData        string
	Kind             MessageKind
	ReceivedAt       time.Time
}

// ChatGroup is a run of consecutive messages from the same sender.
type ChatGroup struct {
	SenderID *UserID
	Messages []ThreadMessage
}

type MessengerThread struct {
	ID          ThreadID
	Participant Friend
	Messages    []ThreadMessage
	UnreadCount int
}

// ThreadIDFor derives the thread id from the other participant.
func ThreadIDFor(participantID UserID) ThreadID {
	return ThreadID(participantID)
}

// NewMessengerThread opens a thread with its security notice already read.
func NewMessengerThread(participant Friend, at time.Time) MessengerThread {
	return MessengerThread{
		ID:          ThreadIDFor(participant.ID),
		Participant: participant,
		Messages: []ThreadMessage{{
			ID:         uuid.New(),
			Text:       SecurityNoticeKey,
			Kind:       SecurityNotice,
			ReceivedAt: at,
		}},
	}
}

// WithMessage returns a copy holding one more message and one more unread.
func (t MessengerThread) WithMessage(message ThreadMessage) MessengerThread {
	messages := make([]ThreadMessage, len(t.Messages), len(t.Messages)+1)
	copy(messages, t.Messages)
	t.Messages = append(messages, message)
	t.UnreadCount++
	return t
}

func (t MessengerThread) Read() MessengerThread {
	t.UnreadCount = 0
	return t
}

func (t MessengerThread) Groups() []ChatGroup {
	var groups []ChatGroup
	for _, message := range t.Messages {
		last := len(groups) - 1
		if last >= 0 && sameSender(groups[last].SenderID, message.SenderID) {
			groups[last].Messages = append(groups[last].Messages, message)
			continue
		}
		groups = append(groups, ChatGroup{SenderID: message.SenderID, Messages: []ThreadMessage{message}})
	}
	return groups
}

func sameSender(a, b *UserID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
