package domain

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// FurnitureItem is one furniture piece, in a trade offer or in the inventory.
// ID is the id used by item commands, Ref the inventory item it stands for.
type FurnitureItem struct {
	ID       ItemID `json:"id" validate:"required"`
	Ref      ItemID `json:"ref" validate:"required"`
	SpriteID int    `json:"sprite_id"`
	Category string `json:"category"`
	Unique   bool   `json:"unique"`
}

// GroupKey stacks identical furniture together, unique items stay alone.
func (t FurnitureItem) GroupKey() GroupID {
	if t.Unique {
		return GroupID(fmt.Sprintf("%s:%d:%d", t.Category, t.SpriteID, t.ID))
	}
	return GroupID(fmt.Sprintf("%s:%d", t.Category, t.SpriteID))
}

// GroupItem is an ordered stack of items sharing the same GroupID.
type GroupItem struct {
	ID    GroupID
	Items []FurnitureItem
}

func (g GroupItem) Count() int {
	return len(g.Items)
}

func (g GroupItem) ItemAt(index int) (FurnitureItem, bool) {
	if index < 0 || index >= len(g.Items) {
		return FurnitureItem{}, false
	}
	return g.Items[index], true
}

// LastItem returns the most recently added item of the group.
func (g GroupItem) LastItem() (FurnitureItem, bool) {
	return g.ItemAt(len(g.Items) - 1)
}

// GroupFurniture stacks a flat item list, keeping arrival order inside each group.
func GroupFurniture(items []FurnitureItem) map[GroupID]GroupItem {
	groups := make(map[GroupID]GroupItem)
	for _, item := range items {
		key := item.GroupKey()
		group := groups[key]
		group.ID = key
		group.Items = append(group.Items, item)
		groups[key] = group
	}
	return groups
}

// SortedGroupIDs gives a stable iteration order over a group map.
func SortedGroupIDs(groups map[GroupID]GroupItem) []GroupID {
	keys := lo.Keys(groups)
	slices.Sort(keys)
	return keys
}
