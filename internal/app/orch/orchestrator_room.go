package orch

import (
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Leave removes ms from its room. Remaining members learn about it through
// a peer-left event; an emptied room is dropped from the registry.
// Calling Leave twice for the same session is a no-op.
func (o *Orchestrator) Leave(ms core.MemberSession) {
	o.mu.Lock()
	defer o.mu.Unlock()

	meta := ms.Meta()
	room, ok := o.Registry.Get(meta.Room)
	if !ok {
		return
	}
	if _, ok := room.RemoveMember(ms.SID()); !ok {
		return
	}

	count := room.MemberCount()
	log.Info().
		Str("module", "orch").
		Str("room", string(meta.Room)).
		Str("sid", string(ms.SID())).
		Uint32("user_id", uint32(meta.ID)).
		Int("count", count).
		Int("max", o.MaxUsers).
		Msg("member left")

	if count == 0 {
		removed := o.Registry.RemoveIfEmpty(meta.Room)
		o.Metrics.Left(removed)
		return
	}
	o.Metrics.Left(false)
	o.announce(room, ms.SID(), core.NewPeerLeft(meta.ID, count))
}

// Rooms lists active rooms.
func (o *Orchestrator) Rooms() []core.RoomInfo {
	return o.Registry.List()
}

// Room looks up an active room without creating it.
func (o *Orchestrator) Room(key domain.RoomKey) (core.RoomService, bool) {
	return o.Registry.Get(key)
}
