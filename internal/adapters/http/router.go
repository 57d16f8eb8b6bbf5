package http

import (
	"context"
	nethttp "net/http"

	"github.com/dkeye/Relay/internal/adapters/signal"
	"github.com/dkeye/Relay/internal/app/orch"
	"github.com/dkeye/Relay/internal/config"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

// SetupRouter wires the WebSocket endpoint and the read-only REST surface.
// Connections opened through it live until ctx is done.
func SetupRouter(ctx context.Context, cfg *config.Config, o *orch.Orchestrator, gatherer prometheus.Gatherer) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	ctrl := signal.NewSignalWSController(o, cfg)
	ws := func(c *gin.Context) {
		log.Debug().Str("module", "adapters.http").Str("room", c.Query("room")).Msg("ws endpoint hit")
		ctrl.HandleSignal(ctx, c)
	}
	r.GET("/", ws)
	r.GET("/ws", ws)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
	})
	if gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")

	// GET /api/rooms: list active rooms
	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{"rooms": o.Rooms()})
	})

	// GET /api/rooms/:key: room info; never creates the room
	api.GET("/rooms/:key", func(c *gin.Context) {
		key := domain.RoomKey(c.Param("key"))
		room, ok := o.Room(key)
		if !ok {
			c.JSON(nethttp.StatusNotFound, gin.H{"error": "room not active"})
			return
		}
		c.JSON(nethttp.StatusOK, gin.H{
			"key":         room.Key(),
			"memberCount": room.MemberCount(),
			"maxUsers":    o.MaxUsers,
			"members":     room.MembersSnapshot(),
		})
	})

	log.Info().Str("module", "adapters.http").Msg("router setup")
	return r
}
