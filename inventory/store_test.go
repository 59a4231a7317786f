package inventory

import (
	"log/slog"
	"testing"

	"world-sync/domain"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func furniture() []domain.FurnitureItem {
	return []domain.FurnitureItem{
		{ID: 1, Ref: 100, SpriteID: 7, Category: "floor"},
		{ID: 2, Ref: 200, SpriteID: 7, Category: "floor"},
		{ID: 3, Ref: 300, SpriteID: 9, Category: "wall"},
	}
}

func TestStore_SetLockedItemIDs_LocksAcrossGroups(t *testing.T) {
	req := require.New(t)
	store := NewStore(logs.GetLoggerFromLevel(slog.LevelDebug))
	store.Load(furniture())

	// When a trade puts one floor item and the wall item on the table
	store.SetLockedItemIDs([]domain.ItemID{200, 300})

	// Then both groups reflect the batch
	groups := store.Groups()
	req.Len(groups, 2)
	req.Equal(domain.GroupID("floor:7"), groups[0].ID)
	req.Equal(1, groups[0].Available())
	req.Equal(0, groups[1].Available())
	req.True(store.IsLocked(300))
	req.False(store.IsLocked(100))
}

func TestStore_SetLockedItemIDs_ReleasesPreviousBatch(t *testing.T) {
	req := require.New(t)
	store := NewStore(logs.GetLoggerFromLevel(slog.LevelDebug))
	store.Load(furniture())
	store.SetLockedItemIDs([]domain.ItemID{100, 200})

	// Given a reader still holds the previous groups
	held := store.Groups()

	// When the next batch no longer holds the floor items
	store.SetLockedItemIDs([]domain.ItemID{300})

	// Then they are released
	req.False(store.IsLocked(100))
	req.Equal(2, store.Groups()[0].Available())
	// And the held copy did not move
	req.Equal(0, held[0].Available())
}

func TestStore_Load_KeepsTradeLocks(t *testing.T) {
	req := require.New(t)
	store := NewStore(logs.GetLoggerFromLevel(slog.LevelDebug))

	// Given a lock batch arrives before the inventory itself
	store.SetLockedItemIDs([]domain.ItemID{100})

	// When the inventory is loaded
	store.Load(furniture())

	// Then the item is already locked
	req.True(store.Groups()[0].Items[0].Locked)
	req.False(store.Groups()[0].Items[1].Locked)
}

func TestStore_Groups_ReturnsACopy(t *testing.T) {
	req := require.New(t)
	store := NewStore(logs.GetLoggerFromLevel(slog.LevelDebug))
	store.Load(furniture())

	// When a reader flips a lock on its copy
	groups := store.Groups()
	groups[0].Items[0].Locked = true
	groups[1] = Group{}

	// Then the store is untouched
	req.False(store.IsLocked(100))
	req.False(store.Groups()[0].Items[0].Locked)
	req.Equal(domain.GroupID("wall:9"), store.Groups()[1].ID)
}
