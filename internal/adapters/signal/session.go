package signal

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/aditya-sb/livestreaming/internal/domain"
)

type joinPayload struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
}

func (ctl *WSController) handlePresenterJoin(
	ctx context.Context,
	conn domain.ConnID,
	p *wsPeer,
	seq int64,
	data []byte,
) {
	var pl joinPayload
	if err := json.Unmarshal(data, &pl); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad presenter-join payload")
		return
	}
	log.Info().Str("module", "signal").Str("conn", string(conn)).Str("session", pl.SessionID).Msg("presenter-join")
	err := ctl.Coord.PresenterJoin(ctx, conn, domain.SessionID(pl.SessionID))
	ctl.sendAck(p, "presenter-join", seq, err)
}

func (ctl *WSController) handleViewerJoin(
	ctx context.Context,
	conn domain.ConnID,
	p *wsPeer,
	seq int64,
	data []byte,
) {
	var pl joinPayload
	if err := json.Unmarshal(data, &pl); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad viewer-join payload")
		return
	}
	log.Info().Str("module", "signal").Str("conn", string(conn)).Str("session", pl.SessionID).Msg("viewer-join")
	err := ctl.Coord.ViewerJoin(ctx, conn, domain.SessionID(pl.SessionID))
	ctl.sendAck(p, "viewer-join", seq, err)
}

func (ctl *WSController) handleEndSession(
	ctx context.Context,
	conn domain.ConnID,
	p *wsPeer,
	seq int64,
	data []byte,
) {
	var pl joinPayload
	if err := json.Unmarshal(data, &pl); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad end-session payload")
		return
	}
	log.Info().Str("module", "signal").Str("conn", string(conn)).Str("session", pl.SessionID).Msg("end-session")
	err := ctl.Coord.EndSession(ctx, conn, domain.SessionID(pl.SessionID))
	ctl.sendAck(p, "end-session", seq, err)
}
