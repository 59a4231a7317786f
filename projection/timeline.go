// Package projection builds a readable activity timeline from applied events.
// It never emits events nor touches session state.
package projection

import (
	"context"
	"fmt"
	"sync"
	"time"

	"world-sync/domain/event"
)

// Activity is one line of the session timeline.
type Activity struct {
	At      time.Time
	Topic   event.Topic
	Summary string
}

// Timeline keeps the latest activities, oldest first. A zero limit keeps everything.
type Timeline struct {
	mu         sync.Mutex
	limit      int
	activities []Activity
}

func NewTimeline(limit int) *Timeline {
	return &Timeline{limit: limit}
}

func (t *Timeline) Consume(_ context.Context, e event.Event) error {
	summary, ok := summarize(e)
	if !ok {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activities = append(t.activities, Activity{At: time.Now(), Topic: e.Topic(), Summary: summary})
	if t.limit > 0 && len(t.activities) > t.limit {
		t.activities = append([]Activity(nil), t.activities[len(t.activities)-t.limit:]...)
	}
	return nil
}

func (t *Timeline) Activities() []Activity {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Activity(nil), t.activities...)
}

// summarize only keeps what a user would notice, intents and list refreshes are skipped.
func summarize(e event.Event) (string, bool) {
	switch evt := e.(type) {
	case event.TradeOpened:
		return fmt.Sprintf("trade opened between %d and %d", evt.UserID, evt.OtherUserID), true
	case event.TradeAccepted:
		if evt.Accepted {
			return fmt.Sprintf("%d accepted the trade", evt.UserID), true
		}
		return fmt.Sprintf("%d withdrew acceptance", evt.UserID), true
	case event.TradeConfirmationReached:
		return "trade waiting for confirmation", true
	case event.TradeCompleted:
		return "trade completed", true
	case event.TradeClosed:
		if evt.Reason == event.CloseReasonCommitError {
			return "trade failed to commit", true
		}
		return fmt.Sprintf("trade closed by %d", evt.UserID), true
	case event.TradeOpenFailed:
		return fmt.Sprintf("trade with %s could not open", evt.OtherName), true
	case event.ChatMessageReceived:
		return fmt.Sprintf("message from %d", evt.SenderID), true
	case event.RoomInviteReceived:
		return fmt.Sprintf("room invite from %d", evt.SenderID), true
	case event.RoomInviteFailed:
		return fmt.Sprintf("room invite failed for %d recipients", len(evt.FailedRecipients)), true
	case event.FriendRequestsUpdated:
		return fmt.Sprintf("%d pending friend requests", len(evt.Requests)), true
	}
	return "", false
}
