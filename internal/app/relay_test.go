package app

import (
	"errors"
	"testing"

	"github.com/pion/webrtc/v4"

	"github.com/aditya-sb/livestreaming/internal/domain"
)

// room builds a registry with one bound room plus one outsider bound
// to another session.
func room(t *testing.T) (*Relay, map[domain.ConnID]*fakePeer) {
	t.Helper()
	reg := NewRegistry()
	peers := make(map[domain.ConnID]*fakePeer)
	for id, sid := range map[domain.ConnID]domain.SessionID{
		"P": "S", "V1": "S", "V2": "S", "OUT": "OTHER",
	} {
		p := &fakePeer{}
		peers[id] = p
		reg.Register(id, p)
		role := domain.RoleViewer
		if id == "P" {
			role = domain.RolePresenter
		}
		if !reg.Bind(id, role, sid) {
			t.Fatalf("bind %s", id)
		}
	}
	return NewRelay(reg), peers
}

func TestForwardSDPRequiresTarget(t *testing.T) {
	rl, _ := room(t)
	for _, kind := range []string{SignalOffer, SignalAnswer} {
		if err := rl.ForwardSDP("P", kind, "", "sdp"); !errors.Is(err, ErrMissingTarget) {
			t.Errorf("%s without target: err = %v, want ErrMissingTarget", kind, err)
		}
	}
}

func TestForwardSDPDeliversOnlyToTarget(t *testing.T) {
	rl, peers := room(t)
	if err := rl.ForwardSDP("P", SignalOffer, "V1", "the-sdp"); err != nil {
		t.Fatalf("forward: %v", err)
	}

	msgs := peers["V1"].messages()
	if len(msgs) != 1 {
		t.Fatalf("target got %d messages, want 1", len(msgs))
	}
	sig := msgs[0].(Signal)
	if sig.From != "P" || sig.SDP != "the-sdp" || sig.Type != SignalOffer {
		t.Errorf("target got %+v", sig)
	}
	for _, id := range []domain.ConnID{"P", "V2", "OUT"} {
		if got := len(peers[id].messages()); got != 0 {
			t.Errorf("%s got %d messages, want 0", id, got)
		}
	}
}

func TestForwardSDPGoneTargetIsNoop(t *testing.T) {
	rl, _ := room(t)
	if err := rl.ForwardSDP("P", SignalAnswer, "GONE", "sdp"); err != nil {
		t.Fatalf("forward to gone target: %v", err)
	}
}

func TestCandidateBroadcastScope(t *testing.T) {
	rl, peers := room(t)
	cand := webrtc.ICECandidateInit{Candidate: "candidate:1 1 udp 1 10.0.0.1 5000 typ host"}

	if err := rl.ForwardCandidate("P", "", cand); err != nil {
		t.Fatalf("broadcast: %v", err)
	}

	for _, id := range []domain.ConnID{"V1", "V2"} {
		msgs := peers[id].messages()
		if len(msgs) != 1 {
			t.Fatalf("%s got %d messages, want 1", id, len(msgs))
		}
		sig := msgs[0].(Signal)
		if sig.Type != SignalCandidate || sig.From != "P" || sig.Candidate == nil || sig.Candidate.Candidate != cand.Candidate {
			t.Errorf("%s got %+v", id, sig)
		}
	}
	if got := len(peers["P"].messages()); got != 0 {
		t.Errorf("sender got %d messages, want 0", got)
	}
	if got := len(peers["OUT"].messages()); got != 0 {
		t.Errorf("outsider got %d messages, want 0", got)
	}
}

func TestCandidateBroadcastUnbound(t *testing.T) {
	rl, _ := room(t)
	rl.Registry.Register("LONER", &fakePeer{})
	err := rl.ForwardCandidate("LONER", "", webrtc.ICECandidateInit{Candidate: "c"})
	if !errors.Is(err, ErrUnbound) {
		t.Fatalf("err = %v, want ErrUnbound", err)
	}
}

func TestCandidateDirected(t *testing.T) {
	rl, peers := room(t)
	// Directed candidates work even from an unbound sender.
	rl.Registry.Register("LONER", &fakePeer{})
	if err := rl.ForwardCandidate("LONER", "V1", webrtc.ICECandidateInit{Candidate: "c"}); err != nil {
		t.Fatalf("directed candidate: %v", err)
	}
	if got := len(peers["V1"].messages()); got != 1 {
		t.Fatalf("target got %d messages, want 1", got)
	}
	if got := len(peers["V2"].messages()); got != 0 {
		t.Errorf("non-target got %d messages, want 0", got)
	}
}
