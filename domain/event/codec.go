package event

import (
	"encoding/json"
	"fmt"

	"world-sync/errors"
)

// Envelope is the wire shape of an event: {"type": "...", "payload": {...}}.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type decoder func(raw json.RawMessage) (Event, error)

var decoders = map[string]decoder{
	TradeOpened{}.Name():              decodeAs[TradeOpened],
	TradeItemsUpdated{}.Name():        decodeAs[TradeItemsUpdated],
	TradeAccepted{}.Name():            decodeAs[TradeAccepted],
	TradeConfirmationReached{}.Name(): decodeAs[TradeConfirmationReached],
	TradeClosed{}.Name():              decodeAs[TradeClosed],
	TradeCompleted{}.Name():           decodeAs[TradeCompleted],
	TradeOpenFailed{}.Name():          decodeAs[TradeOpenFailed],
	TradeOtherNotAllowed{}.Name():     decodeAs[TradeOtherNotAllowed],
	TradeYouNotAllowed{}.Name():       decodeAs[TradeYouNotAllowed],
	TradeNotOpen{}.Name():             decodeAs[TradeNotOpen],
	ChatMessageReceived{}.Name():      decodeAs[ChatMessageReceived],
	RoomInviteReceived{}.Name():       decodeAs[RoomInviteReceived],
	RoomInviteFailed{}.Name():         decodeAs[RoomInviteFailed],
	FriendListUpdated{}.Name():        decodeAs[FriendListUpdated],
	FriendRequestsUpdated{}.Name():    decodeAs[FriendRequestsUpdated],
	RoomUsersUpdated{}.Name():         decodeAs[RoomUsersUpdated],
	RoomUnitAdded{}.Name():            decodeAs[RoomUnitAdded],
	RoomUnitRemoved{}.Name():          decodeAs[RoomUnitRemoved],
	FurnitureListUpdated{}.Name():     decodeAs[FurnitureListUpdated],
	AdvanceTrade{}.Name():             decodeAs[AdvanceTrade],
	BeginTradeConfirming{}.Name():     decodeAs[BeginTradeConfirming],
	RemoveTradeItem{}.Name():          decodeAs[RemoveTradeItem],
	SendMessage{}.Name():              decodeAs[SendMessage],
	ActivateThread{}.Name():           decodeAs[ActivateThread],
	CloseThread{}.Name():              decodeAs[CloseThread],
	OpenThread{}.Name():               decodeAs[OpenThread],
	HideFriendRequest{}.Name():        decodeAs[HideFriendRequest],
	RespondFriendRequest{}.Name():     decodeAs[RespondFriendRequest],
}

func decodeAs[T Event](raw json.RawMessage) (Event, error) {
	var evt T
	if len(raw) == 0 {
		return evt, nil
	}
	if err := json.Unmarshal(raw, &evt); err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrInvalidPayload, err)
	}
	return evt, nil
}

// Decode turns an envelope back into its typed event.
func Decode(envelope Envelope) (Event, error) {
	decode, ok := decoders[envelope.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", errors.ErrUnknownEvent, envelope.Type)
	}
	return decode(envelope.Payload)
}

func Encode(evt Event) (Envelope, error) {
	raw, err := json.Marshal(evt)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{Type: evt.Name(), Payload: raw}, nil
}
