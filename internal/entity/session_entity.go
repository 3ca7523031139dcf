package entity

import (
	"time"

	"github.com/google/uuid"

	"statement-chat-be/pkg/chatbot"
)

// Session is the unit of state for one user's interaction sequence.
// DocumentText is nil until a PDF has been successfully processed.
// Conversation is always non-nil once the session is initialized; it is
// replaced wholesale (never mutated in place) whenever chat history
// must be reset, and Messages is cleared at the same time so the
// displayed transcript stays consistent with the actual dialogue state.
type Session struct {
	Id           uuid.UUID
	DocumentText *string
	Messages     []*ChatMessage
	Conversation *chatbot.Conversation
	CreatedAt    time.Time
}

// DocumentLoaded reports whether a processed statement is attached.
func (s *Session) DocumentLoaded() bool {
	return s.DocumentText != nil
}
