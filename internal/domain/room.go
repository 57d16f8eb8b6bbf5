package domain

type RoomKey string

// DefaultRoomKey is used when a connection names no room.
const DefaultRoomKey RoomKey = "default"

// RoomKeyFrom maps a raw query value to a room key.
func RoomKeyFrom(raw string) RoomKey {
	if raw == "" {
		return DefaultRoomKey
	}
	return RoomKey(raw)
}
