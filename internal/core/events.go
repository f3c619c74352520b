package core

import "github.com/aditya-sb/livestreaming/internal/domain"

// Server-initiated room notifications. No ack; delivery is
// fire-and-forget.
const (
	EventParticipantJoined = "participant-joined"
	EventParticipantLeft   = "participant-left"
	EventSessionEnded      = "session-ended"
)

type RoomEvent struct {
	Type         string        `json:"type"`
	ConnectionID domain.ConnID `json:"connectionId,omitempty"`
}
