package core

import (
	"context"

	"github.com/aditya-sb/livestreaming/internal/domain"
)

// Peer is a connection's outbound signaling endpoint.
// Owned by the adapter; the adapter must Close() it.
type Peer interface {
	TrySend(v any) error
	Close()
}

// SessionStore persists session records. Lookups return
// domain.ErrNoSession when no row matches; any other error is a
// store failure the caller maps to its own error vocabulary.
type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	FindByID(ctx context.Context, id domain.SessionID) (*domain.Session, error)
	FindActiveByID(ctx context.Context, id domain.SessionID) (*domain.Session, error)
	SetActive(ctx context.Context, id domain.SessionID, active bool) error
}
