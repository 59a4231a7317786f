package event

import "world-sync/domain"

// Intents are user actions. They travel the same channel as server events
// so that both are applied in a single arrival order.

type AdvanceTrade struct{}

type BeginTradeConfirming struct{}

type RemoveTradeItem struct {
	GroupID domain.GroupID `json:"group_id" validate:"required"`
}

type SendMessage struct {
	ThreadID domain.ThreadID `json:"thread_id" validate:"required"`
	Text     string          `json:"text"`
}

// ActivateThread selects a thread; a zero ThreadID clears the selection.
type ActivateThread struct {
	ThreadID domain.ThreadID `json:"thread_id"`
}

type CloseThread struct {
	ThreadID domain.ThreadID `json:"thread_id" validate:"required"`
}

type OpenThread struct {
	ParticipantID domain.UserID `json:"participant_id" validate:"required"`
}

type HideFriendRequest struct {
	RequesterID domain.UserID `json:"requester_id" validate:"required"`
}

type RespondFriendRequest struct {
	RequesterID domain.UserID `json:"requester_id" validate:"required"`
	Accept      bool          `json:"accept"`
}

func (AdvanceTrade) Name() string         { return "intent.trade.advance" }
func (BeginTradeConfirming) Name() string { return "intent.trade.begin_confirming" }
func (RemoveTradeItem) Name() string      { return "intent.trade.remove_item" }
func (SendMessage) Name() string          { return "intent.messenger.send" }
func (ActivateThread) Name() string       { return "intent.messenger.activate" }
func (CloseThread) Name() string          { return "intent.messenger.close" }
func (OpenThread) Name() string           { return "intent.messenger.open" }
func (HideFriendRequest) Name() string    { return "intent.friends.hide_request" }
func (RespondFriendRequest) Name() string { return "intent.friends.respond" }

func (AdvanceTrade) Topic() Topic         { return TopicTrade }
func (BeginTradeConfirming) Topic() Topic { return TopicTrade }
func (RemoveTradeItem) Topic() Topic      { return TopicTrade }
func (SendMessage) Topic() Topic          { return TopicMessenger }
func (ActivateThread) Topic() Topic       { return TopicMessenger }
func (CloseThread) Topic() Topic          { return TopicMessenger }
func (OpenThread) Topic() Topic           { return TopicMessenger }
func (HideFriendRequest) Topic() Topic    { return TopicFriends }
func (RespondFriendRequest) Topic() Topic { return TopicFriends }
