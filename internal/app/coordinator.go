package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/aditya-sb/livestreaming/internal/core"
	"github.com/aditya-sb/livestreaming/internal/domain"
)

// Coordinator is the signaling state machine: it validates join, end
// and disconnect requests against the store and the registry, and
// owns all room membership mutations. The relay and the adapters
// never touch the registry bindings directly.
type Coordinator struct {
	Store    core.SessionStore
	Registry *Registry
}

func NewCoordinator(store core.SessionStore, reg *Registry) *Coordinator {
	return &Coordinator{Store: store, Registry: reg}
}

// CreateSession persists a fresh active session and returns it. The
// share URL points viewers at the session page under baseURL.
func (co *Coordinator) CreateSession(ctx context.Context, baseURL string) (*domain.Session, error) {
	id := domain.SessionID(uuid.NewString())
	s := domain.NewSession(id, fmt.Sprintf("%s/view/%s", baseURL, id))
	if err := co.Store.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	log.Info().Str("module", "app.coordinator").Str("session", string(id)).Msg("session created")
	return s, nil
}

// PresenterJoin binds conn as the presenter of sid. Possession of the
// session id is the only credential; the original creator is not
// re-verified here. The session may already be inactive — a presenter
// can reconnect to wind down — but only one presenter connection may
// be bound at a time.
func (co *Coordinator) PresenterJoin(ctx context.Context, conn domain.ConnID, sid domain.SessionID) error {
	if _, _, bound := co.Registry.Lookup(conn); bound {
		return ErrUnauthorized
	}
	if _, err := co.Store.FindByID(ctx, sid); err != nil {
		return lookupErr(err)
	}
	for _, m := range co.Registry.MembersOf(sid) {
		if m.Role == domain.RolePresenter {
			return ErrUnauthorized
		}
	}
	if !co.Registry.Bind(conn, domain.RolePresenter, sid) {
		return ErrUnauthorized
	}
	log.Info().Str("module", "app.coordinator").Str("conn", string(conn)).Str("session", string(sid)).Msg("presenter joined")
	return nil
}

// ViewerJoin binds conn as a viewer of an active session and tells the
// rest of the room, so the presenter can open an offer towards it.
func (co *Coordinator) ViewerJoin(ctx context.Context, conn domain.ConnID, sid domain.SessionID) error {
	if _, _, bound := co.Registry.Lookup(conn); bound {
		return ErrUnauthorized
	}
	if _, err := co.Store.FindActiveByID(ctx, sid); err != nil {
		return lookupErr(err)
	}
	if !co.Registry.Bind(conn, domain.RoleViewer, sid) {
		return ErrUnauthorized
	}
	co.notifyRoom(sid, conn, core.RoomEvent{Type: core.EventParticipantJoined, ConnectionID: conn})
	log.Info().Str("module", "app.coordinator").Str("conn", string(conn)).Str("session", string(sid)).Msg("viewer joined")
	return nil
}

// EndSession deactivates sid and tears the room down. Only the bound
// presenter of exactly this session may call it. The store is updated
// before any notification goes out; on store failure nothing is torn
// down and the presenter may retry.
func (co *Coordinator) EndSession(ctx context.Context, conn domain.ConnID, sid domain.SessionID) error {
	role, boundSID, ok := co.Registry.Lookup(conn)
	if !ok || role != domain.RolePresenter || boundSID != sid {
		return ErrUnauthorized
	}
	if err := co.Store.SetActive(ctx, sid, false); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}
	co.notifyRoom(sid, conn, core.RoomEvent{Type: core.EventSessionEnded})
	for _, m := range co.Registry.MembersOf(sid) {
		co.Registry.Unbind(m.ID)
	}
	log.Info().Str("module", "app.coordinator").Str("conn", string(conn)).Str("session", string(sid)).Msg("session ended")
	return nil
}

// HandleDisconnect is invoked by the channel adapter when a connection
// drops. Teardown is unconditional and best-effort: a store failure
// here is logged, never propagated, since the client is already gone.
// Idempotent — a second call for an already deregistered connection
// does nothing.
func (co *Coordinator) HandleDisconnect(ctx context.Context, conn domain.ConnID) {
	role, sid, bound := co.Registry.Lookup(conn)
	if !bound {
		co.Registry.Deregister(conn)
		return
	}
	switch role {
	case domain.RolePresenter:
		if err := co.Store.SetActive(ctx, sid, false); err != nil {
			log.Error().Err(err).Str("module", "app.coordinator").Str("session", string(sid)).Msg("deactivate on disconnect")
		}
		co.notifyRoom(sid, conn, core.RoomEvent{Type: core.EventSessionEnded})
		for _, m := range co.Registry.MembersOf(sid) {
			co.Registry.Unbind(m.ID)
		}
		log.Info().Str("module", "app.coordinator").Str("conn", string(conn)).Str("session", string(sid)).Msg("presenter disconnected, session ended")
	case domain.RoleViewer:
		co.Registry.Unbind(conn)
		co.notifyRoom(sid, conn, core.RoomEvent{Type: core.EventParticipantLeft, ConnectionID: conn})
		log.Info().Str("module", "app.coordinator").Str("conn", string(conn)).Str("session", string(sid)).Msg("viewer disconnected")
	}
	co.Registry.Deregister(conn)
}

// notifyRoom fans an event out to every room member except from.
// Fire-and-forget: send failures only drop that one recipient.
func (co *Coordinator) notifyRoom(sid domain.SessionID, from domain.ConnID, ev core.RoomEvent) {
	for _, m := range co.Registry.MembersOf(sid) {
		if m.ID == from {
			continue
		}
		if err := m.Peer.TrySend(ev); err != nil {
			log.Warn().Err(err).Str("module", "app.coordinator").Str("conn", string(m.ID)).Str("event", ev.Type).Msg("notify dropped")
		}
	}
}

func lookupErr(err error) error {
	if errors.Is(err, domain.ErrNoSession) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrStore, err)
}
