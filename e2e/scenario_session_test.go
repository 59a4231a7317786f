package e2e

import (
	"context"
	"fmt"
	"testing"

	"world-sync/domain"
	"world-sync/domain/event"

	"github.com/stretchr/testify/suite"
)

type testSessionSuite struct {
	BaseSessionSuite
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, &testSessionSuite{})
}

func (s *testSessionSuite) local() domain.UserID {
	return domain.UserID(s.Config.LocalUserID)
}

func (s *testSessionSuite) TestTradeFlow() {
	alice, bob := s.local(), s.local()+1
	chair := domain.FurnitureItem{ID: 10, Ref: 100, SpriteID: 7, Category: "chair"}

	s.WithSession("Trade from opening to completion", func(h *Harness) {
		// --- STEP 1: OPEN AND OFFER ---
		s.Run("Step 1: Own offer locks the inventory and the first click accepts", func() {
			s.Send(h,
				event.RoomUsersUpdated{Users: []domain.RoomUser{
					{RoomIndex: 0, WebID: alice, Name: "alice", Type: domain.UnitUser},
					{RoomIndex: 1, WebID: bob, Name: "bob", Type: domain.UnitUser},
				}},
				event.FurnitureListUpdated{Items: []domain.FurnitureItem{chair}},
				event.TradeOpened{UserID: bob, UserCanTrade: true, OtherUserID: alice, OtherCanTrade: true},
				event.TradeItemsUpdated{
					FirstUserID: alice, FirstItemCount: 1, FirstItems: []domain.FurnitureItem{chair},
					SecondUserID: bob,
				},
				event.AdvanceTrade{},
			)
			s.WaitFor(func() bool { return len(h.Commands()) == 1 }, "accept command never sent")

			session := h.Trade.Snapshot()
			s.Require().Equal(domain.TradeRunning, session.State)
			s.Require().Equal(alice, session.Own.UserID)
			s.Require().Equal("bob", session.Other.DisplayName)
			s.Require().True(h.Inventory.IsLocked(chair.Ref))
			s.Require().Equal(`{"type":"trade.accept","payload":{}}`, h.Commands()[0])
			s.Require().Len(h.Alerts(), 1)
			s.Require().Equal(domain.NotificationWarning, h.Alerts()[0].Kind)
		})

		// --- STEP 2: CONFIRM AND COMPLETE ---
		s.Run("Step 2: Countdown, confirmation and completion", func() {
			s.Send(h,
				event.TradeAccepted{UserID: alice, Accepted: true},
				event.TradeAccepted{UserID: bob, Accepted: true},
				event.TradeConfirmationReached{},
				event.BeginTradeConfirming{},
				event.AdvanceTrade{},
				event.TradeCompleted{},
			)
			s.WaitFor(func() bool { return len(h.Commands()) == 2 }, "confirm command never sent")
			s.WaitFor(func() bool { return h.Trade.Snapshot().State == domain.TradeClosed }, "trade never closed")

			s.Require().Equal(`{"type":"trade.confirm","payload":{}}`, h.Commands()[1])
			s.Require().False(h.Trade.Snapshot().Active())
			s.WaitFor(func() bool { return lastSummary(h) == "trade completed" }, "completion missing from the timeline")
		})
	})
}

func (s *testSessionSuite) TestMessengerFlow() {
	bob := s.local() + 1

	s.WithSession("Inbound chat, search and reply", func(h *Harness) {
		s.Run("Step 1: Inbound message is censored and unread", func() {
			s.Send(h,
				event.FriendListUpdated{Friends: []domain.Friend{{ID: bob, Name: "bob", Online: true}}},
				event.ChatMessageReceived{SenderID: bob, Text: "a snake in the grass"},
			)
			s.WaitFor(func() bool {
				thread, ok := h.Messenger.Thread(domain.ThreadIDFor(bob))
				return ok && thread.UnreadCount == 1
			}, "thread never received the message")

			thread, _ := h.Messenger.Thread(domain.ThreadIDFor(bob))
			s.Require().Equal("a ***** in the grass", thread.Messages[len(thread.Messages)-1].Text)
			s.Require().Equal(domain.IconUnread, h.Messenger.IconState())
			s.WaitFor(func() bool { return len(h.Sounds()) == 1 }, "no sound played")
			s.Require().Equal([]domain.SoundCue{domain.SoundMessageReceived}, h.Sounds())
		})

		s.Run("Step 2: The index only holds censored text", func() {
			s.WaitFor(func() bool {
				hits, err := h.Index.Search(context.Background(), "grass")
				return err == nil && len(hits) == 1
			}, "message never indexed")

			hits, err := h.Index.Search(context.Background(), "snake")
			s.Require().NoError(err)
			s.Require().Empty(hits)
		})

		s.Run("Step 3: Opening the thread reads it and a reply goes out", func() {
			s.Send(h,
				event.OpenThread{ParticipantID: bob},
				event.SendMessage{ThreadID: domain.ThreadIDFor(bob), Text: "hi"},
			)
			s.WaitFor(func() bool { return len(h.Commands()) == 1 }, "reply never sent")

			thread, ok := h.Messenger.ActiveThread()
			s.Require().True(ok)
			s.Require().Equal(domain.ThreadIDFor(bob), thread.ID)
			s.Require().Zero(thread.UnreadCount)
			s.Require().Equal(
				fmt.Sprintf(`{"type":"messenger.send","payload":{"recipient_id":%d,"text":"hi"}}`, bob),
				h.Commands()[0])
		})

		s.Run("Step 4: Every event was journaled in arrival order", func() {
			s.WaitFor(func() bool { return len(journaled(h)) == 4 }, "journal incomplete")

			s.Require().Equal([]string{
				event.FriendListUpdated{}.Name(),
				event.ChatMessageReceived{}.Name(),
				event.OpenThread{}.Name(),
				event.SendMessage{}.Name(),
			}, journaled(h))
		})
	})
}

func (s *testSessionSuite) TestFriendRequestFlow() {
	bob := s.local() + 1

	s.WithSession("Friend request bubble", func(h *Harness) {
		s.Send(h,
			event.FriendRequestsUpdated{Requests: []domain.FriendRequest{{RequestID: 1, RequesterID: bob, RequesterName: "bob"}}},
			event.RoomUsersUpdated{Users: []domain.RoomUser{{RoomIndex: 4, WebID: bob, Name: "bob", Type: domain.UnitUser}}},
			event.RoomUnitAdded{RoomIndex: 4},
		)
		s.WaitFor(func() bool { return len(h.Friends.Visible()) == 1 }, "bubble never shown")
		s.Require().Equal(4, h.Friends.Visible()[0].RoomIndex)

		s.Send(h,
			event.RespondFriendRequest{RequesterID: bob, Accept: true},
			event.HideFriendRequest{RequesterID: bob},
		)
		s.WaitFor(func() bool { return len(h.Friends.Visible()) == 0 }, "bubble never hidden")
		s.Require().Equal(
			fmt.Sprintf(`{"type":"friends.respond","payload":{"requester_id":%d,"accept":true}}`, bob),
			h.Commands()[0])
	})
}

func lastSummary(h *Harness) string {
	activities := h.Timeline.Activities()
	if len(activities) == 0 {
		return ""
	}
	return activities[len(activities)-1].Summary
}

func journaled(h *Harness) []string {
	var names []string
	_ = h.Journal.Replay(context.Background(), func(e event.Event) error {
		names = append(names, e.Name())
		return nil
	})
	return names
}
