// Package metrics exposes relay counters and gauges to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dkeye/Relay/internal/core"
)

// Recorder is nil-safe: every method is a no-op on a nil receiver.
type Recorder struct {
	roomsActive   prometheus.Gauge
	membersActive prometheus.Gauge
	joins         prometheus.Counter
	rejections    prometheus.Counter
	leaves        prometheus.Counter
	frames        *prometheus.CounterVec
	dropped       prometheus.Counter
}

func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		roomsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "relay_rooms_active",
			Help: "Rooms with at least one member.",
		}),
		membersActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "relay_members_active",
			Help: "Members currently joined across all rooms.",
		}),
		joins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_joins_total",
			Help: "Successful joins.",
		}),
		rejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_rejections_total",
			Help: "Joins refused because the room was full.",
		}),
		leaves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_leaves_total",
			Help: "Members that left a room.",
		}),
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_frames_relayed_total",
			Help: "Inbound frames relayed to a room, by kind.",
		}, []string{"kind"}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relay_deliveries_dropped_total",
			Help: "Per-peer deliveries refused by a full outbound buffer.",
		}),
	}
	reg.MustRegister(r.roomsActive, r.membersActive, r.joins, r.rejections, r.leaves, r.frames, r.dropped)
	return r
}

func (r *Recorder) Joined(roomCreated bool) {
	if r == nil {
		return
	}
	r.joins.Inc()
	r.membersActive.Inc()
	if roomCreated {
		r.roomsActive.Inc()
	}
}

func (r *Recorder) Rejected() {
	if r == nil {
		return
	}
	r.rejections.Inc()
}

func (r *Recorder) Left(roomRemoved bool) {
	if r == nil {
		return
	}
	r.leaves.Inc()
	r.membersActive.Dec()
	if roomRemoved {
		r.roomsActive.Dec()
	}
}

func (r *Recorder) Relayed(kind core.FrameKind, dropped int) {
	if r == nil {
		return
	}
	r.frames.WithLabelValues(kind.String()).Inc()
	r.dropped.Add(float64(dropped))
}
