// Package domain contains entity without logic, just meta-data
package domain

import "errors"

var ErrNoSession = errors.New("session not found")

type SessionID string

// ConnID identifies a live signaling connection. Assigned by the
// transport adapter on connect; never persisted.
type ConnID string

type Role string

const (
	RolePresenter Role = "presenter"
	RoleViewer    Role = "viewer"
)

// Session is one presenter's broadcast. Never deleted, only
// deactivated: Active=false is terminal.
type Session struct {
	ID        SessionID `json:"id"`
	OwnerRole Role      `json:"ownerRole"`
	ShareURL  string    `json:"url"`
	Active    bool      `json:"active"`
}

// NewSession avoids raw literals in adapters and keeps construction obvious.
func NewSession(id SessionID, shareURL string) *Session {
	return &Session{
		ID:        id,
		OwnerRole: RolePresenter,
		ShareURL:  shareURL,
		Active:    true,
	}
}
