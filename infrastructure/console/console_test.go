package console

import (
	"bytes"
	"testing"
	"time"

	"world-sync/domain"
	"world-sync/domain/event"
	"world-sync/friendrequest"
	"world-sync/projection"

	"github.com/stretchr/testify/require"
)

func TestNotifier_Alert(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	notifier := NewNotifier(&out, false)

	notifier.Alert(domain.Notification{Title: "friendlist.alert.title", Message: "boom"})
	notifier.Alert(domain.Notification{Kind: domain.NotificationError, Title: "trade", Message: "closed"})

	req.Equal("[DEFAULT] friendlist.alert.title: boom\n[ERROR] trade: closed\n", out.String())
}

func TestSpeaker_Play(t *testing.T) {
	var out bytes.Buffer

	NewSpeaker(&out, false).Play(domain.SoundNewThread)

	require.Equal(t, "(sound: messenger_new_thread)\n", out.String())
}

func TestTrade_Inactive(t *testing.T) {
	var out bytes.Buffer

	Trade(&out, domain.TradeSession{State: domain.TradeClosed})

	require.Equal(t, "trade: CLOSED\n", out.String())
}

func TestTrade_Active(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer
	chair := domain.FurnitureItem{ID: 10, Ref: 100, SpriteID: 7, Category: "chair"}
	session := domain.TradeSession{
		State: domain.TradeRunning,
		Own: &domain.TradeParticipant{
			UserID:      1,
			DisplayName: "alice",
			Items:       domain.GroupFurniture([]domain.FurnitureItem{chair}),
		},
		Other:   &domain.TradeParticipant{UserID: 2, DisplayName: "bob", Accepts: true},
		Version: 3,
	}

	Trade(&out, session)

	req.Contains(out.String(), "trade: RUNNING (v3)")
	req.Contains(out.String(), "alice")
	req.Contains(out.String(), "chair:7")
	req.Contains(out.String(), "bob")
}

func TestRequestsAndTimeline(t *testing.T) {
	req := require.New(t)
	var out bytes.Buffer

	Requests(&out, []friendrequest.Bubble{{RoomIndex: 4, Request: domain.FriendRequest{RequesterID: 2, RequesterName: "bob"}}})
	Timeline(&out, []projection.Activity{{
		At:      time.Date(2026, 1, 2, 13, 14, 15, 0, time.UTC),
		Topic:   event.TopicTrade,
		Summary: "trade completed",
	}})

	req.Contains(out.String(), "bob")
	req.Contains(out.String(), "13:14:15")
	req.Contains(out.String(), "trade completed")
}
