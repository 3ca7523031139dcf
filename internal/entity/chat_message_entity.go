package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one displayed turn of a session's transcript.
// Insertion order is significant; the transcript is display-only and
// distinct from the conversation handle's wire history.
type ChatMessage struct {
	Id        uuid.UUID
	Role      string
	Chat      string
	CreatedAt time.Time
}
