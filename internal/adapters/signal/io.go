package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/aditya-sb/livestreaming/internal/app"
	"github.com/aditya-sb/livestreaming/internal/domain"
)

func (ctl *WSController) writePump(ctx context.Context, p *wsPeer) {
	ping := time.NewTicker(ctl.Cfg.PingPeriod)
	defer ping.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			return
		case <-ping.C:
			if err := p.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
				log.Warn().Err(err).Str("module", "signal").Msg("writePump ping")
				return
			}
		case data, ok := <-p.send:
			if !ok {
				log.Warn().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := p.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *WSController) readPump(ctx context.Context, conn domain.ConnID, p *wsPeer) {
	defer func() {
		log.Info().Str("module", "signal").Str("conn", string(conn)).Msg("readPump closing")
		p.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("conn", string(conn)).Msg("readPump ctx done")
			return
		default:
			_, data, err := p.conn.ReadMessage()
			if err != nil {
				log.Info().Err(err).Str("module", "signal").Str("conn", string(conn)).Msg("readPump read error")
				return
			}
			ctl.handleMessage(ctx, conn, p, data)
		}
	}
}

func (ctl *WSController) handleMessage(ctx context.Context, conn domain.ConnID, p *wsPeer, data []byte) {
	var env struct {
		Type string `json:"type"`
		Seq  int64  `json:"seq"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		return
	}

	switch env.Type {
	case "presenter-join":
		ctl.handlePresenterJoin(ctx, conn, p, env.Seq, data)
	case "viewer-join":
		ctl.handleViewerJoin(ctx, conn, p, env.Seq, data)
	case "end-session":
		ctl.handleEndSession(ctx, conn, p, env.Seq, data)
	case app.SignalOffer, app.SignalAnswer:
		ctl.handleSDP(conn, p, env.Type, env.Seq, data)
	case app.SignalCandidate:
		ctl.handleCandidate(conn, p, env.Seq, data)
	case "ping":
		ctl.handlePing(p)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown signal")
	}
}

type ack struct {
	Type  string `json:"type"`
	Op    string `json:"op"`
	Seq   int64  `json:"seq,omitempty"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// sendAck answers a client request over the same connection: ok on a
// nil error, otherwise the wire code of the failure.
func (ctl *WSController) sendAck(p *wsPeer, op string, seq int64, err error) {
	a := ack{Type: "ack", Op: op, Seq: seq, OK: err == nil}
	if err != nil {
		a.Error = app.ErrorCode(err)
	}
	if err := p.TrySend(a); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("op", op).Msg("ack dropped")
	}
}
