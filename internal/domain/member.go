package domain

import "time"

// MemberID identifies a member for the lifetime of the process.
// It travels on the wire as a little-endian uint32.
type MemberID uint32

// Member represents a connection's participation meta for a room.
// No transport or lifecycle logic here.
type Member struct {
	ID       MemberID
	Room     RoomKey
	JoinedAt time.Time
}

// NewMember avoids raw literals in adapters and keeps construction obvious.
func NewMember(id MemberID, room RoomKey) *Member {
	return &Member{ID: id, Room: room, JoinedAt: time.Now()}
}
