package domain

import (
	"slices"

	"github.com/samber/lo"
)

type TradeState string

const (
	TradeReady      TradeState = "READY"
	TradeRunning    TradeState = "RUNNING"
	TradeConfirming TradeState = "CONFIRMING"
	TradeCountdown  TradeState = "COUNTDOWN"
	TradeConfirmed  TradeState = "CONFIRMED"
	TradeClosed     TradeState = "CLOSED"
)

type TradeParticipant struct {
	UserID       UserID
	DisplayName  string
	CanTrade     bool
	Accepts      bool
	CreditsCount int
	ItemCount    int
	Items        map[GroupID]GroupItem
}

// Clone copies the participant with its groups, nil stays nil.
func (p *TradeParticipant) Clone() *TradeParticipant {
	if p == nil {
		return nil
	}
	clone := *p
	if p.Items != nil {
		clone.Items = lo.MapValues(p.Items, func(group GroupItem, _ GroupID) GroupItem {
			return GroupItem{ID: group.ID, Items: slices.Clone(group.Items)}
		})
	}
	return &clone
}

// ItemRefs lists every inventory ref offered by the participant, groups in id order.
func (p *TradeParticipant) ItemRefs() []ItemID {
	if p == nil {
		return nil
	}
	return lo.FlatMap(SortedGroupIDs(p.Items), func(id GroupID, _ int) []ItemID {
		return lo.Map(p.Items[id].Items, func(item FurnitureItem, _ int) ItemID {
			return item.Ref
		})
	})
}

// TradeSession is the published view of the trade engine.
// Own and Other are nil when no session is active.
type TradeSession struct {
	State   TradeState
	Own     *TradeParticipant
	Other   *TradeParticipant
	Version uint64
}

// Clone detaches the session from the engine state it was published from.
func (s TradeSession) Clone() TradeSession {
	s.Own = s.Own.Clone()
	s.Other = s.Other.Clone()
	return s
}

func (s TradeSession) Active() bool {
	return s.Own != nil && s.Other != nil
}
