package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type ChatMessageDTO struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Chat      string    `json:"chat"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStateResponse is the full render of a session: the transcript
// in order plus the document-loaded indicator and its sidebar info.
type SessionStateResponse struct {
	Id              uuid.UUID        `json:"id"`
	DocumentLoaded  bool             `json:"document_loaded"`
	DocumentChars   int              `json:"document_chars,omitempty"`
	DocumentSnippet string           `json:"document_snippet,omitempty"`
	Messages        []ChatMessageDTO `json:"messages"`
}

// ProcessDocumentResponse reports a successful extraction: total
// character count and the first 500 characters as a preview.
type ProcessDocumentResponse struct {
	DocumentChars   int    `json:"document_chars"`
	DocumentSnippet string `json:"document_snippet"`
}

type SendChatRequest struct {
	Chat string `json:"chat" validate:"required"`
}

type SendChatResponseChat struct {
	Id        uuid.UUID `json:"id"`
	Chat      string    `json:"chat"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type SendChatResponse struct {
	SessionId uuid.UUID             `json:"session_id"`
	Sent      *SendChatResponseChat `json:"sent"`
	Reply     *SendChatResponseChat `json:"reply"`
	// Warning carries the non-fatal truncation-risk notice when the
	// outbound payload exceeds the configured threshold.
	Warning string `json:"warning,omitempty"`
}
