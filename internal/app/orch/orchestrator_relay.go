package orch

import (
	"github.com/dkeye/Relay/internal/core"
	"github.com/rs/zerolog/log"
)

// OnFrame relays an inbound frame from ms to the rest of its room.
// Binary payloads get the sender id prepended; text goes out untouched.
func (o *Orchestrator) OnFrame(ms core.MemberSession, f core.Frame) {
	o.mu.Lock()
	defer o.mu.Unlock()

	meta := ms.Meta()
	room, ok := o.Registry.Get(meta.Room)
	if !ok {
		return
	}

	out := core.Frame{Kind: f.Kind, Data: f.Data}
	if f.Kind == core.BinaryFrame {
		out.Data = core.EncodeBinaryRelay(meta.ID, f.Data)
	}

	res := room.Broadcast(ms.SID(), out)
	o.Metrics.Relayed(f.Kind, len(res.Dropped))
	if len(res.Dropped) > 0 {
		log.Debug().Str("module", "orch").Str("room", string(meta.Room)).Uint32("user_id", uint32(meta.ID)).Int("dropped", len(res.Dropped)).Msg("relay dropped")
	}
	o.applyPolicy(room, res)
}
