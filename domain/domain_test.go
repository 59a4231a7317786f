package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGroupFurniture_StacksIdenticalItems(t *testing.T) {
	req := require.New(t)
	chairA := FurnitureItem{ID: 1, Ref: 101, SpriteID: 7, Category: "chair"}
	chairB := FurnitureItem{ID: 2, Ref: 102, SpriteID: 7, Category: "chair"}
	trophy := FurnitureItem{ID: 3, Ref: 103, SpriteID: 9, Category: "trophy", Unique: true}
	otherTrophy := FurnitureItem{ID: 4, Ref: 104, SpriteID: 9, Category: "trophy", Unique: true}

	groups := GroupFurniture([]FurnitureItem{chairA, trophy, chairB, otherTrophy})

	req.Len(groups, 3)
	chairs := groups["chair:7"]
	req.Equal(2, chairs.Count())
	last, ok := chairs.LastItem()
	req.True(ok)
	req.Equal(chairB, last)
	_, ok = chairs.ItemAt(2)
	req.False(ok)
	req.Equal([]GroupID{"chair:7", "trophy:9:3", "trophy:9:4"}, SortedGroupIDs(groups))
}

func TestTradeParticipant_ItemRefs(t *testing.T) {
	req := require.New(t)
	participant := &TradeParticipant{Items: GroupFurniture([]FurnitureItem{
		{ID: 5, Ref: 205, SpriteID: 2, Category: "table"},
		{ID: 1, Ref: 201, SpriteID: 1, Category: "chair"},
		{ID: 2, Ref: 202, SpriteID: 1, Category: "chair"},
	})}

	req.Equal([]ItemID{201, 202, 205}, participant.ItemRefs())

	var nobody *TradeParticipant
	req.Nil(nobody.ItemRefs())
}

func TestMessengerThread_WithMessageCopies(t *testing.T) {
	req := require.New(t)
	bob := UserID(2)
	original := NewMessengerThread(Friend{ID: bob, Name: "bob"}, time.Now())

	// When
	updated := original.WithMessage(ThreadMessage{SenderID: &bob, Text: "hi", Kind: ChatMessage})

	// Then
	req.Len(original.Messages, 1)
	req.Zero(original.UnreadCount)
	req.Len(updated.Messages, 2)
	req.Equal(1, updated.UnreadCount)
	req.Zero(updated.Read().UnreadCount)
	req.Equal(ThreadIDFor(bob), updated.ID)
}

func TestMessengerThread_Groups(t *testing.T) {
	req := require.New(t)
	alice, bob := UserID(1), UserID(2)
	otherBob := UserID(2)
	thread := NewMessengerThread(Friend{ID: bob}, time.Now()).
		WithMessage(ThreadMessage{SenderID: &bob, Text: "a"}).
		WithMessage(ThreadMessage{SenderID: &otherBob, Text: "b"}).
		WithMessage(ThreadMessage{SenderID: &alice, Text: "c"}).
		WithMessage(ThreadMessage{Text: "invite", Kind: RoomInvite})

	groups := thread.Groups()

	req.Len(groups, 4)
	req.Nil(groups[0].SenderID)
	req.Len(groups[1].Messages, 2)
	req.Equal(alice, *groups[2].SenderID)
	req.Nil(groups[3].SenderID)
}
