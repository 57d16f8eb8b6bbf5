package app

import (
	"sort"
	"sync"

	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// Registry maps room keys to live rooms. Rooms are created lazily and
// dropped as soon as they become empty.
type Registry struct {
	mu    sync.RWMutex
	rooms map[domain.RoomKey]core.RoomService
}

var _ core.RoomManager = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[domain.RoomKey]core.RoomService)}
}

func (r *Registry) GetOrCreate(key domain.RoomKey) core.RoomService {
	r.mu.RLock()
	room, ok := r.rooms[key]
	r.mu.RUnlock()
	if ok {
		return room
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if room, ok = r.rooms[key]; ok {
		return room
	}
	room = core.NewRoomService(key)
	r.rooms[key] = room
	log.Info().Str("module", "app.registry").Str("room", string(key)).Msg("room created")
	return room
}

func (r *Registry) Get(key domain.RoomKey) (core.RoomService, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[key]
	return room, ok
}

// RemoveIfEmpty deletes the room under key when it has no members left.
func (r *Registry) RemoveIfEmpty(key domain.RoomKey) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[key]
	if !ok || room.MemberCount() > 0 {
		return false
	}
	delete(r.rooms, key)
	log.Info().Str("module", "app.registry").Str("room", string(key)).Msg("room removed")
	return true
}

func (r *Registry) List() []core.RoomInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.RoomInfo, 0, len(r.rooms))
	for key, room := range r.rooms {
		out = append(out, core.RoomInfo{Key: key, MemberCount: room.MemberCount()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
