// Package trade keeps the local view of a two-party trade negotiation.
// The server stays authoritative: the engine only mirrors what it broadcasts
// and sends accept/confirm/remove requests on behalf of the local user.
package trade

import (
	"log/slog"
	"sync/atomic"

	"world-sync/contract"
	"world-sync/domain"
	"world-sync/domain/event"
	"world-sync/errors"

	"github.com/samber/lo"
)

// Engine must be driven by a single goroutine. Snapshot is safe from any goroutine.
type Engine struct {
	log       *slog.Logger
	sender    contract.CommandSender
	inventory contract.InventoryStore
	identity  contract.Identity
	users     contract.RoomUsers
	notifier  contract.Notifier
	session   atomic.Pointer[domain.TradeSession]
}

func NewEngine(log *slog.Logger,
	sender contract.CommandSender,
	inventory contract.InventoryStore,
	identity contract.Identity,
	users contract.RoomUsers,
	notifier contract.Notifier) *Engine {
	e := &Engine{
		log:       log,
		sender:    sender,
		inventory: inventory,
		identity:  identity,
		users:     users,
		notifier:  notifier,
	}
	e.session.Store(&domain.TradeSession{State: domain.TradeReady})
	return e
}

// Snapshot returns a copy of the last published session, callers may keep or change it freely.
func (e *Engine) Snapshot() domain.TradeSession {
	return e.session.Load().Clone()
}

// current is the published session itself, only the driving goroutine may use it.
func (e *Engine) current() domain.TradeSession {
	return *e.session.Load()
}

func (e *Engine) publish(next domain.TradeSession) {
	next.Version = e.session.Load().Version + 1
	e.session.Store(&next)
}

// OpenSession replaces any running session. Whichever side matches the local
// identity becomes Own, regardless of the order used by the server.
func (e *Engine) OpenSession(evt event.TradeOpened) {
	local := e.identity.CurrentUserID()
	first := e.newParticipant(evt.UserID, evt.UserCanTrade)
	second := e.newParticipant(evt.OtherUserID, evt.OtherCanTrade)

	var own, other *domain.TradeParticipant
	switch local {
	case evt.UserID:
		own, other = first, second
	case evt.OtherUserID:
		own, other = second, first
	default:
		e.log.Debug("Trade open ignored, local user is not a party",
			"local", local, "user", evt.UserID, "other", evt.OtherUserID)
		return
	}

	e.publish(domain.TradeSession{State: domain.TradeRunning, Own: own, Other: other})
}

func (e *Engine) newParticipant(id domain.UserID, canTrade bool) *domain.TradeParticipant {
	participant := &domain.TradeParticipant{
		UserID:   id,
		CanTrade: canTrade,
		Items:    map[domain.GroupID]domain.GroupItem{},
	}
	if user, ok := e.users.UserByID(id); ok {
		participant.DisplayName = user.Name
	}
	return participant
}

type offer struct {
	userID  domain.UserID
	credits int
	count   int
	items   map[domain.GroupID]domain.GroupItem
}

// UpdateItems mirrors a full item list broadcast. Accept flags are left alone,
// they only change through accept events. Every item ref of both sides is then
// pushed to the inventory in a single call.
func (e *Engine) UpdateItems(evt event.TradeItemsUpdated) {
	current := e.current()
	if !current.Active() {
		e.log.Debug("Trade items ignored, no active session")
		return
	}

	offers := []offer{
		{userID: evt.FirstUserID, credits: evt.FirstCredits, count: evt.FirstItemCount, items: domain.GroupFurniture(evt.FirstItems)},
		{userID: evt.SecondUserID, credits: evt.SecondCredits, count: evt.SecondItemCount, items: domain.GroupFurniture(evt.SecondItems)},
	}
	own, ownMatched := withOffer(current.Own, offers)
	other, otherMatched := withOffer(current.Other, offers)
	if !ownMatched && !otherMatched {
		e.log.Debug("Trade items ignored, unknown participants",
			"first", evt.FirstUserID, "second", evt.SecondUserID)
		return
	}

	next := current
	next.Own = own
	next.Other = other
	e.publish(next)

	e.inventory.SetLockedItemIDs(lo.Uniq(append(own.ItemRefs(), other.ItemRefs()...)))
}

func withOffer(p *domain.TradeParticipant, offers []offer) (*domain.TradeParticipant, bool) {
	o, ok := lo.Find(offers, func(o offer) bool { return o.userID == p.UserID })
	if !ok {
		return p, false
	}
	updated := *p
	updated.CreditsCount = o.credits
	updated.ItemCount = o.count
	updated.Items = o.items
	return &updated, true
}

// SetAccepts records the accept flag the server reports for one participant.
func (e *Engine) SetAccepts(evt event.TradeAccepted) {
	current := e.current()
	if !current.Active() {
		return
	}

	next := current
	switch evt.UserID {
	case current.Own.UserID:
		next.Own = withAccepts(current.Own, evt.Accepted)
	case current.Other.UserID:
		next.Other = withAccepts(current.Other, evt.Accepted)
	default:
		e.log.Debug("Trade accept ignored, unknown participant", "user", evt.UserID)
		return
	}
	e.publish(next)
}

func withAccepts(p *domain.TradeParticipant, accepted bool) *domain.TradeParticipant {
	updated := *p
	updated.Accepts = accepted
	return &updated
}

// Advance is the single button of the trade dialog.
// While running it toggles acceptance, the outcome arrives later as an accept event.
// While confirming it sends the final confirmation.
func (e *Engine) Advance() error {
	current := e.current()
	if !current.Active() {
		return errors.ErrNoActiveSession
	}

	switch current.State {
	case domain.TradeRunning:
		if current.Other.ItemCount == 0 && !current.Own.Accepts {
			e.notifier.Alert(otherNotOffering)
		}
		if current.Own.Accepts {
			e.sender.Send(domain.UnacceptTradeCommand{})
		} else {
			e.sender.Send(domain.AcceptTradeCommand{})
		}
	case domain.TradeConfirming:
		e.sender.Send(domain.ConfirmTradeCommand{})
		next := current
		next.State = domain.TradeConfirmed
		e.publish(next)
	}
	return nil
}

// BeginConfirming is raised by the presentation once its countdown is over.
func (e *Engine) BeginConfirming() error {
	current := e.current()
	if !current.Active() {
		return errors.ErrNoActiveSession
	}
	if current.State != domain.TradeRunning && current.State != domain.TradeCountdown {
		return nil
	}
	next := current
	next.State = domain.TradeConfirming
	e.publish(next)
	return nil
}

// RemoveItem asks the server to take back the last item of the group.
// The updated list comes back as a new item list event.
func (e *Engine) RemoveItem(group domain.GroupItem) {
	item, ok := group.LastItem()
	if !ok {
		return
	}
	e.sender.Send(domain.RemoveTradeItemCommand{ItemID: item.ID})
}

// RemoveOwnItem resolves one of the local user's groups and removes its last item.
func (e *Engine) RemoveOwnItem(groupID domain.GroupID) error {
	current := e.current()
	if !current.Active() {
		return errors.ErrNoActiveSession
	}
	group, ok := current.Own.Items[groupID]
	if !ok {
		return errors.ErrUnknownGroup
	}
	e.RemoveItem(group)
	return nil
}

func (e *Engine) OnConfirmation() {
	current := e.current()
	if !current.Active() {
		return
	}
	if current.State != domain.TradeRunning && current.State != domain.TradeConfirming {
		return
	}
	next := current
	next.State = domain.TradeCountdown
	e.publish(next)
}

// OnClose tears the session down. Calling it without a session is harmless.
func (e *Engine) OnClose(evt event.TradeClosed) {
	current := e.current()
	if evt.Reason == event.CloseReasonCommitError {
		e.notifier.Alert(commitError)
	} else if current.Own != nil && evt.UserID != current.Own.UserID {
		e.notifier.Alert(otherCancelled)
	}
	e.teardown(current)
}

// OnCompleted clears the session silently, success is shown by the presentation.
func (e *Engine) OnCompleted() {
	e.teardown(e.current())
}

func (e *Engine) teardown(current domain.TradeSession) {
	if current.State == domain.TradeClosed && !current.Active() {
		return
	}
	e.publish(domain.TradeSession{State: domain.TradeClosed})
}

func (e *Engine) OnOpenFailed(evt event.TradeOpenFailed) {
	if evt.Reason != event.OpenFailedYouAlreadyTrading && evt.Reason != event.OpenFailedOtherAlreadyTrading {
		e.log.Debug("Trade open failed", "reason", evt.Reason)
		return
	}
	e.notifier.Alert(alreadyOpen)
}

func (e *Engine) OnOtherNotAllowed() {
	e.notifier.Alert(otherDisabled)
}

func (e *Engine) OnYouNotAllowed() {
	e.notifier.Alert(youNotAllowed)
}

func (e *Engine) OnNotOpen() {
	e.log.Debug("Trade action refused, trading is not open")
}
