package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/dkeye/Relay/internal/app/orch"
	"github.com/dkeye/Relay/internal/config"
	"github.com/dkeye/Relay/internal/core"
	"github.com/dkeye/Relay/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSConn is an indirection over *websocket.Conn to ease testing.
type WSConn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(mt int, data []byte) error
	WriteControl(mt int, data []byte, deadline time.Time) error
	SetWriteDeadline(t time.Time) error
	SetReadDeadline(t time.Time) error
	SetReadLimit(limit int64)
	SetPongHandler(h func(appData string) error)
	Close() error
}

type SignalWSController struct {
	Orch *orch.Orchestrator
	cfg  *config.Config
}

func NewSignalWSController(o *orch.Orchestrator, cfg *config.Config) *SignalWSController {
	return &SignalWSController{Orch: o, cfg: cfg}
}

// wsSignalConn implements core.SignalConnection on top of a WebSocket.
// Frames are queued on send and written by writePump.
type wsSignalConn struct {
	conn WSConn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func newWSSignalConn(conn WSConn, buffer int) *wsSignalConn {
	return &wsSignalConn{
		conn: conn,
		send: make(chan core.Frame, buffer),
	}
}

func (c *wsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return core.ErrConnClosed
	}
	select {
	case c.send <- f:
	default:
		return core.ErrBackpressure
	}
	return nil
}

func (c *wsSignalConn) IsOpen() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.closed
}

// Close stops accepting frames. writePump flushes what is queued, sends a
// close frame and releases the socket.
func (c *wsSignalConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (ctl *SignalWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	key := domain.RoomKeyFrom(c.Query("room"))

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	ctl.Serve(ctx, key, ws)
}

// Serve runs the join protocol for an upgraded connection and, when
// admitted, starts its pumps. It returns without blocking.
func (ctl *SignalWSController) Serve(ctx context.Context, key domain.RoomKey, ws WSConn) {
	sid := core.SessionID(uuid.NewString())
	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", string(key)).Msg("new WS connection")

	if ctl.cfg.ReadLimit > 0 {
		ws.SetReadLimit(ctl.cfg.ReadLimit)
	}

	conn := newWSSignalConn(ws, ctl.cfg.SendBuffer)
	ms, err := ctl.Orch.Join(key, sid, conn)
	if err != nil {
		ctl.reject(sid, ws, err)
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, ms, conn)
}

func (ctl *SignalWSController) reject(sid core.SessionID, ws WSConn, err error) {
	code := websocket.CloseInternalServerErr
	var full *orch.RoomFullError
	if errors.As(err, &full) {
		code = orch.CloseRoomFull
	}
	msg := websocket.FormatCloseMessage(code, err.Error())
	if werr := ws.WriteControl(websocket.CloseMessage, msg, time.Now().Add(ctl.cfg.WriteWait)); werr != nil {
		log.Warn().Err(werr).Str("module", "signal").Str("sid", string(sid)).Msg("reject close frame")
	}
	_ = ws.Close()
	log.Info().Str("module", "signal").Str("sid", string(sid)).Int("code", code).Str("reason", err.Error()).Msg("connection rejected")
}
