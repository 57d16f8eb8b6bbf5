package core

import (
	"errors"
	"sync"

	"github.com/dkeye/Relay/internal/domain"
	"github.com/rs/zerolog/log"
)

// roomImpl is a threadsafe in-memory room.
// Members are kept in join order; it never closes adapter-owned resources.
type roomImpl struct {
	key     domain.RoomKey
	mu      sync.RWMutex
	members []MemberSession
	bySID   map[SessionID]int
}

func NewRoomService(key domain.RoomKey) RoomService {
	return &roomImpl{
		key:   key,
		bySID: make(map[SessionID]int),
	}
}

func (r *roomImpl) Key() domain.RoomKey { return r.key }

func (r *roomImpl) MemberCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

func (r *roomImpl) AddMember(ms MemberSession) {
	sid := ms.SID()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bySID[sid]; ok {
		return
	}
	r.bySID[sid] = len(r.members)
	r.members = append(r.members, ms)
	log.Debug().Str("module", "core.room").Str("room", string(r.key)).Str("sid", string(sid)).Uint32("user_id", uint32(ms.Meta().ID)).Msg("member added")
}

func (r *roomImpl) RemoveMember(sid SessionID) (MemberSession, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx, ok := r.bySID[sid]
	if !ok {
		return nil, false
	}
	ms := r.members[idx]
	r.members = append(r.members[:idx], r.members[idx+1:]...)
	delete(r.bySID, sid)
	for i := idx; i < len(r.members); i++ {
		r.bySID[r.members[i].SID()] = i
	}
	log.Debug().Str("module", "core.room").Str("room", string(r.key)).Str("sid", string(sid)).Msg("member removed")
	return ms, true
}

func (r *roomImpl) PeerIDs(exclude SessionID) []domain.MemberID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.MemberID, 0, len(r.members))
	for _, ms := range r.members {
		if ms.SID() == exclude {
			continue
		}
		out = append(out, ms.Meta().ID)
	}
	return out
}

// Broadcast hands f to every open member except from. Closed peers are
// skipped silently; peers that refuse the frame are reported in Dropped.
func (r *roomImpl) Broadcast(from SessionID, f Frame) PublishResult {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res := PublishResult{}
	for _, m := range r.members {
		if m.SID() == from {
			continue
		}
		conn := m.Signal()
		if conn == nil || !conn.IsOpen() {
			res.Skipped++
			continue
		}
		if err := conn.TrySend(f); err != nil {
			if errors.Is(err, ErrConnClosed) {
				res.Skipped++
				continue
			}
			res.Dropped = append(res.Dropped, m)
			continue
		}
		res.SentTo++
	}
	log.Debug().Str("module", "core.room").Str("room", string(r.key)).Str("from", string(from)).Int("sent_to", res.SentTo).Int("skipped", res.Skipped).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}

func (r *roomImpl) MembersSnapshot() []MemberDTO {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]MemberDTO, 0, len(r.members))
	for _, ms := range r.members {
		m := ms.Meta()
		out = append(out, MemberDTO{ID: m.ID, JoinedAt: m.JoinedAt.Unix()})
	}
	return out
}
