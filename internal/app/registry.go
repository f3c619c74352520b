package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/aditya-sb/livestreaming/internal/core"
	"github.com/aditya-sb/livestreaming/internal/domain"
)

type connEntry struct {
	Peer    core.Peer
	Role    domain.Role
	Session domain.SessionID
}

// Registry tracks live connections and their (role, session) binding.
// Pure bookkeeping; no business rules. Entries live from channel
// connect to channel disconnect.
type Registry struct {
	mu    sync.RWMutex
	conns map[domain.ConnID]*connEntry
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[domain.ConnID]*connEntry)}
}

func (r *Registry) Register(id domain.ConnID, peer core.Peer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[id] = &connEntry{Peer: peer}
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("registered connection")
}

func (r *Registry) Deregister(id domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, id)
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("deregistered connection")
}

// Bind sets the connection's (role, session) pair. Returns false when
// the connection is unknown or already bound; a binding never changes
// until Unbind.
func (r *Registry) Bind(id domain.ConnID, role domain.Role, sid domain.SessionID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.conns[id]
	if !ok || e.Session != "" {
		return false
	}
	e.Role = role
	e.Session = sid
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Str("role", string(role)).Str("session", string(sid)).Msg("bound connection")
	return true
}

func (r *Registry) Unbind(id domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.conns[id]; ok {
		e.Role = ""
		e.Session = ""
	}
	log.Info().Str("module", "app.registry").Str("conn", string(id)).Msg("unbound connection")
}

// Lookup reports the binding of a connection. ok is false for unknown
// or unbound connections.
func (r *Registry) Lookup(id domain.ConnID) (domain.Role, domain.SessionID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[id]
	if !ok || e.Session == "" {
		return "", "", false
	}
	return e.Role, e.Session, true
}

func (r *Registry) Peer(id domain.ConnID) (core.Peer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.conns[id]
	if !ok {
		return nil, false
	}
	return e.Peer, true
}

type memberSnap struct {
	ID   domain.ConnID
	Role domain.Role
	Peer core.Peer
}

// MembersOf snapshots the room: every connection currently bound to sid.
func (r *Registry) MembersOf(sid domain.SessionID) []memberSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]memberSnap, 0, len(r.conns))
	for id, e := range r.conns {
		if e.Session == sid {
			out = append(out, memberSnap{ID: id, Role: e.Role, Peer: e.Peer})
		}
	}
	return out
}
