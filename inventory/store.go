// Package inventory holds the local furniture inventory.
// It is the only owner of item lock state: the trade engine pushes the refs it has
// on the table and the store marks them non-interactable everywhere else.
package inventory

import (
	"log/slog"
	"slices"
	"sync/atomic"

	"world-sync/domain"

	"github.com/samber/lo"
)

type Item struct {
	domain.FurnitureItem
	Locked bool
}

type Group struct {
	ID    domain.GroupID
	Items []Item
}

// Available counts the items of the group that can still be offered or placed.
func (g Group) Available() int {
	return lo.CountBy(g.Items, func(item Item) bool { return !item.Locked })
}

type snapshot struct {
	groups []Group
	locked map[domain.ItemID]struct{}
}

// Store is written by the session worker and read by anyone.
type Store struct {
	log   *slog.Logger
	state atomic.Pointer[snapshot]
}

func NewStore(log *slog.Logger) *Store {
	s := &Store{log: log}
	s.state.Store(&snapshot{locked: map[domain.ItemID]struct{}{}})
	return s
}

// Load replaces the whole inventory. Refs already locked by a trade stay locked.
func (s *Store) Load(items []domain.FurnitureItem) {
	current := s.state.Load()
	grouped := domain.GroupFurniture(items)
	groups := lo.Map(domain.SortedGroupIDs(grouped), func(id domain.GroupID, _ int) Group {
		return Group{
			ID:    id,
			Items: lo.Map(grouped[id].Items, func(item domain.FurnitureItem, _ int) Item {
				_, locked := current.locked[item.Ref]
				return Item{FurnitureItem: item, Locked: locked}
			}),
		}
	})
	s.state.Store(&snapshot{groups: groups, locked: current.locked})
}

// SetLockedItemIDs applies one lock batch to every group at once.
// Items outside the batch are released.
func (s *Store) SetLockedItemIDs(ids []domain.ItemID) {
	current := s.state.Load()
	locked := lo.SliceToMap(ids, func(id domain.ItemID) (domain.ItemID, struct{}) {
		return id, struct{}{}
	})
	groups := lo.Map(current.groups, func(group Group, _ int) Group {
		return Group{
			ID: group.ID,
			Items: lo.Map(group.Items, func(item Item, _ int) Item {
				_, item.Locked = locked[item.Ref]
				return item
			}),
		}
	})
	s.state.Store(&snapshot{groups: groups, locked: locked})
	s.log.Debug("Inventory locks updated", "locked", len(locked))
}

// Groups returns a copy, writing to it never reaches the store.
func (s *Store) Groups() []Group {
	return lo.Map(s.state.Load().groups, func(group Group, _ int) Group {
		return Group{ID: group.ID, Items: slices.Clone(group.Items)}
	})
}

func (s *Store) IsLocked(ref domain.ItemID) bool {
	_, ok := s.state.Load().locked[ref]
	return ok
}
