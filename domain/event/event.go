package event

import (
	"world-sync/domain"
)

type Topic string

const (
	TopicTrade     Topic = "trade"
	TopicMessenger Topic = "messenger"
	TopicFriends   Topic = "friends"
	TopicRoom      Topic = "room"
	TopicInventory Topic = "inventory"
)

// Event is anything entering the session worker: server events and user intents alike.
type Event interface {
	Name() string
	Topic() Topic
}

// Close reasons carried by TradeClosed.
const (
	CloseReasonNone        = 0
	CloseReasonCommitError = 1
)

// Open failure reasons carried by TradeOpenFailed.
const (
	OpenFailedYouAlreadyTrading   = 7
	OpenFailedOtherAlreadyTrading = 8
)

type TradeOpened struct {
	UserID        domain.UserID `json:"user_id" validate:"required"`
	UserCanTrade  bool          `json:"user_can_trade"`
	OtherUserID   domain.UserID `json:"other_user_id" validate:"required,nefield=UserID"`
	OtherCanTrade bool          `json:"other_can_trade"`
}

type TradeItemsUpdated struct {
	FirstUserID     domain.UserID          `json:"first_user_id" validate:"required"`
	FirstCredits    int                    `json:"first_credits" validate:"gte=0"`
	FirstItemCount  int                    `json:"first_item_count" validate:"gte=0"`
	FirstItems      []domain.FurnitureItem `json:"first_items" validate:"dive"`
	SecondUserID    domain.UserID          `json:"second_user_id" validate:"required,nefield=FirstUserID"`
	SecondCredits   int                    `json:"second_credits" validate:"gte=0"`
	SecondItemCount int                    `json:"second_item_count" validate:"gte=0"`
	SecondItems     []domain.FurnitureItem `json:"second_items" validate:"dive"`
}

type TradeAccepted struct {
	UserID   domain.UserID `json:"user_id" validate:"required"`
	Accepted bool          `json:"accepted"`
}

type TradeConfirmationReached struct{}

type TradeClosed struct {
	Reason int           `json:"reason"`
	UserID domain.UserID `json:"user_id"`
}

type TradeCompleted struct{}

type TradeOpenFailed struct {
	Reason    int    `json:"reason"`
	OtherName string `json:"other_name"`
}

type TradeOtherNotAllowed struct{}

type TradeYouNotAllowed struct{}

type TradeNotOpen struct{}

type ChatMessageReceived struct {
	SenderID         domain.UserID `json:"sender_id" validate:"required"`
	Text             string        `json:"text"`
	SecondsSinceSent int           `json:"seconds_since_sent" validate:"gte=0"`
	ExtraData        string        `json:"extra_data"`
}

type RoomInviteReceived struct {
	SenderID domain.UserID `json:"sender_id" validate:"required"`
	Text     string        `json:"text"`
}

type RoomInviteFailed struct {
	ErrorCode        int             `json:"error_code"`
	FailedRecipients []domain.UserID `json:"failed_recipients"`
}

type FriendListUpdated struct {
	Friends []domain.Friend `json:"friends" validate:"dive"`
}

type FriendRequestsUpdated struct {
	Requests []domain.FriendRequest `json:"requests" validate:"dive"`
}

type RoomUsersUpdated struct {
	Users []domain.RoomUser `json:"users"`
}

type FurnitureListUpdated struct {
	Items []domain.FurnitureItem `json:"items" validate:"dive"`
}

type RoomUnitAdded struct {
	RoomIndex int `json:"room_index" validate:"gte=0"`
}

type RoomUnitRemoved struct {
	RoomIndex int `json:"room_index" validate:"gte=0"`
}

func (TradeOpened) Name() string              { return "trade.open" }
func (TradeItemsUpdated) Name() string        { return "trade.items" }
func (TradeAccepted) Name() string            { return "trade.accept" }
func (TradeConfirmationReached) Name() string { return "trade.confirmation" }
func (TradeClosed) Name() string              { return "trade.close" }
func (TradeCompleted) Name() string           { return "trade.completed" }
func (TradeOpenFailed) Name() string          { return "trade.open_failed" }
func (TradeOtherNotAllowed) Name() string     { return "trade.other_not_allowed" }
func (TradeYouNotAllowed) Name() string       { return "trade.you_not_allowed" }
func (TradeNotOpen) Name() string             { return "trade.not_open" }
func (ChatMessageReceived) Name() string      { return "messenger.chat" }
func (RoomInviteReceived) Name() string       { return "messenger.room_invite" }
func (RoomInviteFailed) Name() string         { return "messenger.room_invite_error" }
func (FriendListUpdated) Name() string        { return "friends.list" }
func (FriendRequestsUpdated) Name() string    { return "friends.requests" }
func (RoomUsersUpdated) Name() string         { return "room.users" }
func (RoomUnitAdded) Name() string            { return "room.unit_added" }
func (RoomUnitRemoved) Name() string          { return "room.unit_removed" }
func (FurnitureListUpdated) Name() string     { return "inventory.furni" }

func (TradeOpened) Topic() Topic              { return TopicTrade }
func (TradeItemsUpdated) Topic() Topic        { return TopicTrade }
func (TradeAccepted) Topic() Topic            { return TopicTrade }
func (TradeConfirmationReached) Topic() Topic { return TopicTrade }
func (TradeClosed) Topic() Topic              { return TopicTrade }
func (TradeCompleted) Topic() Topic           { return TopicTrade }
func (TradeOpenFailed) Topic() Topic          { return TopicTrade }
func (TradeOtherNotAllowed) Topic() Topic     { return TopicTrade }
func (TradeYouNotAllowed) Topic() Topic       { return TopicTrade }
func (TradeNotOpen) Topic() Topic             { return TopicTrade }
func (ChatMessageReceived) Topic() Topic      { return TopicMessenger }
func (RoomInviteReceived) Topic() Topic       { return TopicMessenger }
func (RoomInviteFailed) Topic() Topic         { return TopicMessenger }
func (FriendListUpdated) Topic() Topic        { return TopicFriends }
func (FriendRequestsUpdated) Topic() Topic    { return TopicFriends }
func (RoomUsersUpdated) Topic() Topic         { return TopicRoom }
func (RoomUnitAdded) Topic() Topic            { return TopicRoom }
func (RoomUnitRemoved) Topic() Topic          { return TopicRoom }
func (FurnitureListUpdated) Topic() Topic     { return TopicInventory }
