// Package roster holds who the session knows about: the local user, the friend list and the units in the room.
package roster

import (
	"log/slog"
	"sync/atomic"

	"world-sync/domain"

	"github.com/samber/lo"
)

// Identity is fixed for the whole session.
type Identity domain.UserID

func (i Identity) CurrentUserID() domain.UserID {
	return domain.UserID(i)
}

type friends map[domain.UserID]domain.Friend

type room struct {
	byID    map[domain.UserID]domain.RoomUser
	byIndex map[int]domain.RoomUser
}

// Directory answers roster and room lookups from the last lists received.
// Each update replaces the whole list.
type Directory struct {
	log     *slog.Logger
	friends atomic.Pointer[friends]
	room    atomic.Pointer[room]
}

func NewDirectory(log *slog.Logger) *Directory {
	d := &Directory{log: log}
	d.friends.Store(&friends{})
	d.room.Store(&room{byID: map[domain.UserID]domain.RoomUser{}, byIndex: map[int]domain.RoomUser{}})
	return d
}

func (d *Directory) SetFriends(list []domain.Friend) {
	next := friends(lo.KeyBy(list, func(f domain.Friend) domain.UserID { return f.ID }))
	d.friends.Store(&next)
	d.log.Debug("Friend list replaced", "count", len(next))
}

// SetRoomUsers keeps only users in the id index, pets and bots are reachable by room index.
func (d *Directory) SetRoomUsers(units []domain.RoomUser) {
	users := lo.Filter(units, func(u domain.RoomUser, _ int) bool { return u.Type == domain.UnitUser })
	d.room.Store(&room{
		byID:    lo.KeyBy(users, func(u domain.RoomUser) domain.UserID { return u.WebID }),
		byIndex: lo.KeyBy(units, func(u domain.RoomUser) int { return u.RoomIndex }),
	})
	d.log.Debug("Room units replaced", "count", len(units))
}

func (d *Directory) Resolve(participantID domain.UserID) (domain.Friend, bool) {
	friend, ok := (*d.friends.Load())[participantID]
	return friend, ok
}

func (d *Directory) Friends() []domain.Friend {
	return lo.Values(*d.friends.Load())
}

func (d *Directory) UserByID(id domain.UserID) (domain.RoomUser, bool) {
	user, ok := d.room.Load().byID[id]
	return user, ok
}

func (d *Directory) UserByIndex(roomIndex int) (domain.RoomUser, bool) {
	user, ok := d.room.Load().byIndex[roomIndex]
	return user, ok
}
