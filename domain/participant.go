package domain

// Friend is an entry of the roster. Threads keep a copy, the roster stays the owner.
type Friend struct {
	ID     UserID `json:"id" validate:"required"`
	Name   string `json:"name"`
	Figure string `json:"figure"`
	Online bool   `json:"online"`
}

type FriendRequest struct {
	RequestID     int    `json:"request_id"`
	RequesterID   UserID `json:"requester_id" validate:"required"`
	RequesterName string `json:"requester_name"`
}

type UnitType string

const (
	UnitUser UnitType = "USER"
	UnitPet  UnitType = "PET"
	UnitBot  UnitType = "BOT"
)

// RoomUser is a unit currently present in the room.
type RoomUser struct {
	RoomIndex int      `json:"room_index"`
	WebID     UserID   `json:"web_id"`
	Name      string   `json:"name"`
	Type      UnitType `json:"type"`
}
