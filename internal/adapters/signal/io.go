package signal

import (
	"context"
	"time"

	"github.com/dkeye/Relay/internal/core"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) writePump(ctx context.Context, c *wsSignalConn) {
	var tick <-chan time.Time
	if ctl.cfg.PingPeriod > 0 {
		ticker := time.NewTicker(ctl.cfg.PingPeriod)
		defer ticker.Stop()
		tick = ticker.C
	}
	defer func() {
		c.Close()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Msg("writePump ctx done")
			return
		case f, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.cfg.WriteWait)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(messageType(f.Kind), f.Data); err != nil {
				log.Debug().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		case <-tick:
			if err := c.conn.SetWriteDeadline(time.Now().Add(ctl.cfg.WriteWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("module", "signal").Msg("writePump ping error")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, cancel context.CancelFunc, ms core.MemberSession, c *wsSignalConn) {
	sid := ms.SID()
	defer func() {
		log.Debug().Str("module", "signal").Str("sid", string(sid)).Msg("readPump closing")
		ctl.Orch.Leave(ms)
		c.Close()
		cancel()
	}()

	if ctl.cfg.PingPeriod > 0 {
		pongWait := ctl.cfg.PingPeriod * 10 / 9
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		c.conn.SetPongHandler(func(string) error {
			return c.conn.SetReadDeadline(time.Now().Add(pongWait))
		})
	}

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Str("sid", string(sid)).Msg("readPump ctx done")
			return
		default:
			mt, data, err := c.conn.ReadMessage()
			if err != nil {
				logReadError(sid, err)
				return
			}
			ctl.Orch.OnFrame(ms, core.Frame{Kind: frameKind(mt), Data: data})
		}
	}
}

func logReadError(sid core.SessionID, err error) {
	if websocket.IsUnexpectedCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived) {
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("readPump unexpected close")
		return
	}
	log.Info().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("connection closed")
}

func messageType(k core.FrameKind) int {
	if k == core.BinaryFrame {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}

func frameKind(mt int) core.FrameKind {
	if mt == websocket.BinaryMessage {
		return core.BinaryFrame
	}
	return core.TextFrame
}
