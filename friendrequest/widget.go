// Package friendrequest anchors pending friend requests on the requester's room unit.
package friendrequest

import (
	"log/slog"
	"sync/atomic"

	"world-sync/contract"
	"world-sync/domain"

	"github.com/samber/lo"
)

// Bubble is a request shown above the unit at RoomIndex.
type Bubble struct {
	RoomIndex int
	Request   domain.FriendRequest
}

type state struct {
	requests  []domain.FriendRequest
	displayed []Bubble
	dismissed map[domain.UserID]struct{}
}

func (s *state) clone() *state {
	next := &state{
		requests:  s.requests,
		displayed: append([]Bubble(nil), s.displayed...),
		dismissed: make(map[domain.UserID]struct{}, len(s.dismissed)),
	}
	for id := range s.dismissed {
		next.dismissed[id] = struct{}{}
	}
	return next
}

func (s *state) isDisplayed(requesterID domain.UserID) bool {
	return lo.ContainsBy(s.displayed, func(b Bubble) bool { return b.Request.RequesterID == requesterID })
}

// Widget is driven by the session worker only. Visible can be read from anywhere.
type Widget struct {
	log    *slog.Logger
	sender contract.CommandSender
	users  contract.RoomUsers
	state  atomic.Pointer[state]
}

func NewWidget(log *slog.Logger, sender contract.CommandSender, users contract.RoomUsers) *Widget {
	w := &Widget{log: log, sender: sender, users: users}
	w.state.Store(&state{dismissed: map[domain.UserID]struct{}{}})
	return w
}

// SyncRequests stores the pending list and rebuilds the bubbles for requesters in the room.
// An empty list keeps the previous bubbles, they are not shown anyway.
func (w *Widget) SyncRequests(requests []domain.FriendRequest) {
	next := w.state.Load().clone()
	next.requests = append([]domain.FriendRequest(nil), requests...)
	if len(requests) > 0 {
		next.displayed = lo.FilterMap(requests, func(request domain.FriendRequest, _ int) (Bubble, bool) {
			user, ok := w.users.UserByID(request.RequesterID)
			if !ok {
				return Bubble{}, false
			}
			return Bubble{RoomIndex: user.RoomIndex, Request: request}, true
		})
	}
	w.state.Store(next)
}

func (w *Widget) OnUnitAdded(roomIndex int) {
	user, ok := w.users.UserByIndex(roomIndex)
	if !ok || user.Type != domain.UnitUser {
		return
	}
	current := w.state.Load()
	request, ok := lo.Find(current.requests, func(r domain.FriendRequest) bool { return r.RequesterID == user.WebID })
	if !ok || current.isDisplayed(user.WebID) {
		return
	}
	next := current.clone()
	next.displayed = append(next.displayed, Bubble{RoomIndex: user.RoomIndex, Request: request})
	w.state.Store(next)
	w.log.Debug("Friend request bubble added", "requester", user.WebID, "room_index", roomIndex)
}

func (w *Widget) OnUnitRemoved(roomIndex int) {
	current := w.state.Load()
	_, index, ok := lo.FindIndexOf(current.displayed, func(b Bubble) bool { return b.RoomIndex == roomIndex })
	if !ok {
		return
	}
	next := current.clone()
	next.displayed = append(next.displayed[:index], next.displayed[index+1:]...)
	w.state.Store(next)
}

// Hide dismisses a request locally, nothing is sent.
func (w *Widget) Hide(requesterID domain.UserID) {
	current := w.state.Load()
	if _, ok := current.dismissed[requesterID]; ok {
		return
	}
	next := current.clone()
	next.dismissed[requesterID] = struct{}{}
	w.state.Store(next)
}

func (w *Widget) Respond(requesterID domain.UserID, accept bool) {
	w.sender.Send(domain.FriendRequestResponseCommand{RequesterID: requesterID, Accept: accept})
}

func (w *Widget) Visible() []Bubble {
	current := w.state.Load()
	if len(current.requests) == 0 {
		return nil
	}
	return lo.Filter(current.displayed, func(b Bubble, _ int) bool {
		_, dismissed := current.dismissed[b.Request.RequesterID]
		return !dismissed
	})
}
