package app

import (
	"github.com/pion/webrtc/v4"
	"github.com/rs/zerolog/log"

	"github.com/aditya-sb/livestreaming/internal/domain"
)

const (
	SignalOffer     = "offer"
	SignalAnswer    = "answer"
	SignalCandidate = "ice-candidate"
)

// Signal is a relayed message as delivered to the recipient, stamped
// with the sender's connection id. The SDP stays an opaque string:
// the relay forwards it, it never parses it.
type Signal struct {
	Type      string                   `json:"type"`
	From      domain.ConnID            `json:"from"`
	SDP       string                   `json:"sdp,omitempty"`
	Candidate *webrtc.ICECandidateInit `json:"candidate,omitempty"`
}

// Relay forwards offer/answer/ice-candidate between connections.
// Stateless; all membership questions go to the registry.
type Relay struct {
	Registry *Registry
}

func NewRelay(reg *Registry) *Relay {
	return &Relay{Registry: reg}
}

// ForwardSDP delivers an offer or answer to exactly one target. These
// are inherently one-to-one, so a missing target is the sender's
// error; a target that already went away is not — delivery is
// fire-and-forget.
func (rl *Relay) ForwardSDP(from domain.ConnID, kind string, to domain.ConnID, sdp string) error {
	if to == "" {
		return ErrMissingTarget
	}
	rl.deliver(to, Signal{Type: kind, From: from, SDP: sdp})
	return nil
}

// ForwardCandidate delivers an ICE candidate. With a target it is
// point-to-point; without one it fans out to the sender's room, which
// needs a binding. The broadcast form exists for trickle ICE, where
// candidates can be ready before the counterpart's id is known.
func (rl *Relay) ForwardCandidate(from domain.ConnID, to domain.ConnID, cand webrtc.ICECandidateInit) error {
	sig := Signal{Type: SignalCandidate, From: from, Candidate: &cand}
	if to != "" {
		rl.deliver(to, sig)
		return nil
	}
	_, sid, bound := rl.Registry.Lookup(from)
	if !bound {
		return ErrUnbound
	}
	for _, m := range rl.Registry.MembersOf(sid) {
		if m.ID == from {
			continue
		}
		rl.deliver(m.ID, sig)
	}
	return nil
}

func (rl *Relay) deliver(to domain.ConnID, sig Signal) {
	peer, ok := rl.Registry.Peer(to)
	if !ok {
		log.Debug().Str("module", "app.relay").Str("to", string(to)).Str("type", sig.Type).Msg("target gone, dropped")
		return
	}
	if err := peer.TrySend(sig); err != nil {
		log.Warn().Err(err).Str("module", "app.relay").Str("to", string(to)).Str("type", sig.Type).Msg("send dropped")
	}
}
