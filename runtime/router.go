package runtime

import (
	"log/slog"

	"world-sync/domain/event"
	"world-sync/friendrequest"
	"world-sync/inventory"
	"world-sync/messenger"
	"world-sync/roster"
	"world-sync/trade"

	"github.com/go-playground/validator/v10"
)

// Router applies one event or intent to the subsystem owning it.
// It is only called from the session worker.
type Router struct {
	log       *slog.Logger
	validator *validator.Validate
	trade     *trade.Engine
	messenger *messenger.Synchronizer
	friends   *friendrequest.Widget
	directory *roster.Directory
	inventory *inventory.Store
}

func NewRouter(log *slog.Logger,
	engine *trade.Engine,
	sync *messenger.Synchronizer,
	widget *friendrequest.Widget,
	directory *roster.Directory,
	store *inventory.Store) *Router {
	return &Router{
		log:       log,
		validator: validator.New(),
		trade:     engine,
		messenger: sync,
		friends:   widget,
		directory: directory,
		inventory: store,
	}
}

// Apply returns false when the event is malformed or unknown, nothing was changed then.
func (r *Router) Apply(e event.Event) bool {
	if err := r.validator.Struct(e); err != nil {
		r.log.Debug("Malformed event dropped", "event", e.Name(), "error", err)
		return false
	}

	switch evt := e.(type) {
	case event.TradeOpened:
		r.trade.OpenSession(evt)
	case event.TradeItemsUpdated:
		r.trade.UpdateItems(evt)
	case event.TradeAccepted:
		r.trade.SetAccepts(evt)
	case event.TradeConfirmationReached:
		r.trade.OnConfirmation()
	case event.TradeClosed:
		r.trade.OnClose(evt)
	case event.TradeCompleted:
		r.trade.OnCompleted()
	case event.TradeOpenFailed:
		r.trade.OnOpenFailed(evt)
	case event.TradeOtherNotAllowed:
		r.trade.OnOtherNotAllowed()
	case event.TradeYouNotAllowed:
		r.trade.OnYouNotAllowed()
	case event.TradeNotOpen:
		r.trade.OnNotOpen()

	case event.ChatMessageReceived:
		r.messenger.OnChatMessage(evt)
	case event.RoomInviteReceived:
		r.messenger.OnRoomInvite(evt)
	case event.RoomInviteFailed:
		r.messenger.OnRoomInviteError(evt)

	case event.FriendListUpdated:
		r.directory.SetFriends(evt.Friends)
	case event.FriendRequestsUpdated:
		r.friends.SyncRequests(evt.Requests)
	case event.RoomUsersUpdated:
		r.directory.SetRoomUsers(evt.Users)
	case event.RoomUnitAdded:
		r.friends.OnUnitAdded(evt.RoomIndex)
	case event.RoomUnitRemoved:
		r.friends.OnUnitRemoved(evt.RoomIndex)
	case event.FurnitureListUpdated:
		r.inventory.Load(evt.Items)

	case event.AdvanceTrade:
		r.logRefused(evt, r.trade.Advance())
	case event.BeginTradeConfirming:
		r.logRefused(evt, r.trade.BeginConfirming())
	case event.RemoveTradeItem:
		r.logRefused(evt, r.trade.RemoveOwnItem(evt.GroupID))
	case event.SendMessage:
		r.logRefused(evt, r.messenger.SendMessage(evt.ThreadID, evt.Text))
	case event.ActivateThread:
		if evt.ThreadID == 0 {
			r.messenger.ClearActive()
			break
		}
		r.logRefused(evt, r.messenger.SetActive(evt.ThreadID))
	case event.CloseThread:
		r.messenger.CloseThread(evt.ThreadID)
	case event.OpenThread:
		thread, err := r.messenger.GetOrCreateThread(evt.ParticipantID)
		if err != nil {
			r.logRefused(evt, err)
			break
		}
		r.logRefused(evt, r.messenger.SetActive(thread.ID))
	case event.HideFriendRequest:
		r.friends.Hide(evt.RequesterID)
	case event.RespondFriendRequest:
		r.friends.Respond(evt.RequesterID, evt.Accept)

	default:
		r.log.Debug("No route for event", "event", e.Name())
		return false
	}
	return true
}

// logRefused keeps a refused intent applied: it is still journaled, only its effect was void.
func (r *Router) logRefused(e event.Event, err error) {
	if err != nil {
		r.log.Debug("Intent refused", "intent", e.Name(), "error", err)
	}
}
