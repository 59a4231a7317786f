package roster

import (
	"log/slog"
	"testing"

	"world-sync/contract"
	"world-sync/domain"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

var (
	_ contract.Roster    = (*Directory)(nil)
	_ contract.RoomUsers = (*Directory)(nil)
	_ contract.Identity  = Identity(0)
)

func TestDirectory_Resolve(t *testing.T) {
	req := require.New(t)
	d := NewDirectory(logs.GetLoggerFromLevel(slog.LevelDebug))

	// Given a first list, then a replacement
	d.SetFriends([]domain.Friend{{ID: 1, Name: "bob"}, {ID: 2, Name: "carol"}})
	d.SetFriends([]domain.Friend{{ID: 2, Name: "carol", Online: true}})

	// Then only the last list is known
	_, ok := d.Resolve(1)
	req.False(ok)
	carol, ok := d.Resolve(2)
	req.True(ok)
	req.True(carol.Online)
	req.Len(d.Friends(), 1)
}

func TestDirectory_RoomUsers(t *testing.T) {
	req := require.New(t)
	d := NewDirectory(logs.GetLoggerFromLevel(slog.LevelDebug))

	d.SetRoomUsers([]domain.RoomUser{
		{RoomIndex: 0, WebID: 7, Name: "bob", Type: domain.UnitUser},
		{RoomIndex: 1, WebID: 7, Name: "rex", Type: domain.UnitPet},
	})

	bob, ok := d.UserByID(7)
	req.True(ok)
	req.Equal("bob", bob.Name)

	pet, ok := d.UserByIndex(1)
	req.True(ok)
	req.Equal(domain.UnitPet, pet.Type)

	_, ok = d.UserByIndex(9)
	req.False(ok)
}

func TestIdentity(t *testing.T) {
	require.Equal(t, domain.UserID(42), Identity(42).CurrentUserID())
}
