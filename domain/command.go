package domain

// Command is an outbound, fire-and-forget request to the server.
type Command interface {
	Name() string
}

type AcceptTradeCommand struct{}

func (AcceptTradeCommand) Name() string { return "trade.accept" }

type UnacceptTradeCommand struct{}

func (UnacceptTradeCommand) Name() string { return "trade.unaccept" }

type ConfirmTradeCommand struct{}

func (ConfirmTradeCommand) Name() string { return "trade.confirm" }

type RemoveTradeItemCommand struct {
	ItemID ItemID `json:"item_id"`
}

func (RemoveTradeItemCommand) Name() string { return "trade.remove_item" }

type SendChatMessageCommand struct {
	RecipientID UserID `json:"recipient_id"`
	Text        string `json:"text"`
}

func (SendChatMessageCommand) Name() string { return "messenger.send" }

type FriendRequestResponseCommand struct {
	RequesterID UserID `json:"requester_id"`
	Accept      bool   `json:"accept"`
}

func (FriendRequestResponseCommand) Name() string { return "friends.respond" }
