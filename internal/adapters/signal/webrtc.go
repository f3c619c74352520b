package signal

import (
	"encoding/json"

	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/aditya-sb/livestreaming/internal/domain"
)

// handleSDP relays an offer or answer. The server forwards the SDP
// untouched; only the envelope is validated here.
func (ctl *WSController) handleSDP(
	conn domain.ConnID,
	p *wsPeer,
	kind string,
	seq int64,
	data []byte,
) {
	type sdpPayload struct {
		Type string `json:"type"`
		To   string `json:"to"`
		SDP  string `json:"sdp"`
	}
	var pl sdpPayload
	if err := json.Unmarshal(data, &pl); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad sdp payload")
		return
	}
	err := ctl.Relay.ForwardSDP(conn, kind, domain.ConnID(pl.To), pl.SDP)
	ctl.sendAck(p, kind, seq, err)
}

func (ctl *WSController) handleCandidate(
	conn domain.ConnID,
	p *wsPeer,
	seq int64,
	data []byte,
) {
	type candidatePayload struct {
		Type      string                  `json:"type"`
		To        string                  `json:"to"`
		Candidate webrtc.ICECandidateInit `json:"candidate"`
	}
	var pl candidatePayload
	if err := json.Unmarshal(data, &pl); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad candidate payload")
		return
	}
	err := ctl.Relay.ForwardCandidate(conn, domain.ConnID(pl.To), pl.Candidate)
	ctl.sendAck(p, "ice-candidate", seq, err)
}
