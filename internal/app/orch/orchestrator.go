package orch

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dkeye/Relay/internal/app"
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/dkeye/Relay/internal/metrics"
	"github.com/rs/zerolog/log"
)

// CloseRoomFull is the WebSocket close code sent when a room is at capacity.
const CloseRoomFull = 4000

var ErrRoomFull = errors.New("room is full")

// RoomFullError carries the capacity that refused the join.
type RoomFullError struct {
	Room domain.RoomKey
	Max  int
}

func (e *RoomFullError) Error() string {
	return fmt.Sprintf("Room is full (max %d)", e.Max)
}

func (e *RoomFullError) Is(target error) bool { return target == ErrRoomFull }

// Orchestrator owns every room/registry mutation and the fan-out that
// follows it. mu makes each join, relay and leave one indivisible step.
type Orchestrator struct {
	Registry core.RoomManager
	IDs      *core.IdentityAllocator
	Policy   app.Policy
	Metrics  *metrics.Recorder
	MaxUsers int

	mu sync.Mutex
}

func New(reg core.RoomManager, maxUsers int, policy app.Policy, rec *metrics.Recorder) *Orchestrator {
	if policy == nil {
		policy = app.DropPolicy{}
	}
	return &Orchestrator{
		Registry: reg,
		IDs:      core.NewIdentityAllocator(),
		Policy:   policy,
		Metrics:  rec,
		MaxUsers: maxUsers,
	}
}

// Join admits conn into the room under key. On success the new member has
// been sent its welcome and the other members a peer-joined event.
func (o *Orchestrator) Join(key domain.RoomKey, sid core.SessionID, conn core.SignalConnection) (core.MemberSession, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	_, existed := o.Registry.Get(key)
	room := o.Registry.GetOrCreate(key)

	if room.MemberCount() >= o.MaxUsers {
		if !existed {
			o.Registry.RemoveIfEmpty(key)
		}
		o.Metrics.Rejected()
		log.Info().Str("module", "orch").Str("room", string(key)).Str("sid", string(sid)).Int("max", o.MaxUsers).Msg("join rejected, room full")
		return nil, &RoomFullError{Room: key, Max: o.MaxUsers}
	}

	meta := domain.NewMember(o.IDs.Next(), key)
	sess := core.NewMemberSession(sid, meta, conn)
	room.AddMember(sess)

	peers := room.PeerIDs(sid)
	count := room.MemberCount()
	o.Metrics.Joined(!existed)

	log.Info().
		Str("module", "orch").
		Str("room", string(key)).
		Str("sid", string(sid)).
		Uint32("user_id", uint32(meta.ID)).
		Int("count", count).
		Int("max", o.MaxUsers).
		Msg("member joined")

	if f, err := core.TextFrameOf(core.NewWelcome(meta.ID, o.MaxUsers, peers)); err == nil {
		if err := conn.TrySend(f); err != nil {
			log.Debug().Err(err).Str("module", "orch").Str("sid", string(sid)).Msg("welcome not delivered")
		}
	}
	o.announce(room, sid, core.NewPeerJoined(meta.ID, count))

	return sess, nil
}

// announce sends a structured event to every member but from.
func (o *Orchestrator) announce(room core.RoomService, from core.SessionID, v any) {
	f, err := core.TextFrameOf(v)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("marshal event")
		return
	}
	o.applyPolicy(room, room.Broadcast(from, f))
}

func (o *Orchestrator) applyPolicy(room core.RoomService, res core.PublishResult) {
	for _, slow := range res.Dropped {
		switch o.Policy.OnBackPressure(room, slow) {
		case app.KickMember:
			log.Warn().Str("module", "orch").Str("room", string(room.Key())).Str("sid", string(slow.SID())).Msg("kicking slow member")
			slow.Signal().Close()
		case app.DropFrame:
		}
	}
}
