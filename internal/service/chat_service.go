package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"statement-chat-be/internal/dto"
	"statement-chat-be/internal/entity"
	"statement-chat-be/internal/pkg/logger"
	"statement-chat-be/pkg/chatbot"
	"statement-chat-be/pkg/extractor"
	"statement-chat-be/pkg/prompt"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("session not found")

// ExtractionError reports a PDF the extractor could not turn into text.
// The session is left unchanged when this is returned.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return e.Reason
}

const documentSnippetLength = 500

// DocumentExtractor turns an uploaded payload into plain text.
type DocumentExtractor interface {
	Extract(payload []byte) extractor.Result
}

// IChatService defines the chat service interface
type IChatService interface {
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	GetSessionState(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStateResponse, error)
	ProcessDocument(ctx context.Context, sessionId uuid.UUID, payload []byte) (*dto.ProcessDocumentResponse, error)
	ClearDocument(ctx context.Context, sessionId uuid.UUID) error
	SendChat(ctx context.Context, sessionId uuid.UUID, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	ResetChat(ctx context.Context, sessionId uuid.UUID) error
}

// chatService orchestrates the extractor, the conversation client and
// session state in response to the user's actions.
type chatService struct {
	sessions      *SessionManager
	llm           *chatbot.Client
	pdfExtractor  DocumentExtractor
	promptBuilder *prompt.Builder
	log           logger.ILogger
}

func NewChatService(
	sessions *SessionManager,
	llm *chatbot.Client,
	pdfExtractor DocumentExtractor,
	promptBuilder *prompt.Builder,
	log logger.ILogger,
) IChatService {
	return &chatService{
		sessions:      sessions,
		llm:           llm,
		pdfExtractor:  pdfExtractor,
		promptBuilder: promptBuilder,
		log:           log,
	}
}

func (cs *chatService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	session := cs.sessions.Create()
	cs.log.Info("chat", "session created", map[string]interface{}{
		"session_id": session.Id.String(),
	})
	return &dto.CreateSessionResponse{Id: session.Id}, nil
}

func (cs *chatService) GetSessionState(ctx context.Context, sessionId uuid.UUID) (*dto.SessionStateResponse, error) {
	session, found := cs.sessions.Get(sessionId)
	if !found {
		return nil, ErrSessionNotFound
	}

	res := &dto.SessionStateResponse{
		Id:             session.Id,
		DocumentLoaded: session.DocumentLoaded(),
		Messages:       toMessageDTOs(session.Messages),
	}
	if session.DocumentLoaded() {
		res.DocumentChars = len(*session.DocumentText)
		res.DocumentSnippet = snippet(*session.DocumentText)
	}
	return res, nil
}

// ProcessDocument runs extraction over the uploaded payload. On failure
// the reason is surfaced and the session is left exactly as it was; on
// success the text replaces any prior document and the chat starts over.
func (cs *chatService) ProcessDocument(ctx context.Context, sessionId uuid.UUID, payload []byte) (*dto.ProcessDocumentResponse, error) {
	session, found := cs.sessions.Get(sessionId)
	if !found {
		return nil, ErrSessionNotFound
	}

	result := cs.pdfExtractor.Extract(payload)
	if !result.Ok {
		cs.log.Warn("chat", "pdf extraction failed", map[string]interface{}{
			"session_id": session.Id.String(),
			"reason":     result.Reason,
		})
		return nil, &ExtractionError{Reason: result.Reason}
	}

	cs.sessions.LoadDocument(session, result.Text)
	cs.log.Info("chat", "pdf processed", map[string]interface{}{
		"session_id": session.Id.String(),
		"chars":      len(result.Text),
	})

	return &dto.ProcessDocumentResponse{
		DocumentChars:   len(result.Text),
		DocumentSnippet: snippet(result.Text),
	}, nil
}

func (cs *chatService) ClearDocument(ctx context.Context, sessionId uuid.UUID) error {
	session, found := cs.sessions.Get(sessionId)
	if !found {
		return ErrSessionNotFound
	}
	cs.sessions.ClearDocument(session)
	return nil
}

// SendChat appends the user's turn, builds the outbound payload (the
// statement template when a document is loaded, verbatim otherwise) and
// blocks on the remote call. A failed call is rendered as an
// assistant-authored error message in the transcript rather than
// raised, so the conversation flow is not interrupted.
func (cs *chatService) SendChat(ctx context.Context, sessionId uuid.UUID, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	session, found := cs.sessions.Get(sessionId)
	if !found {
		return nil, ErrSessionNotFound
	}

	now := time.Now()
	sent := &entity.ChatMessage{
		Id:        uuid.New(),
		Role:      entity.RoleUser,
		Chat:      request.Chat,
		CreatedAt: now,
	}
	session.Messages = append(session.Messages, sent)

	payload := cs.promptBuilder.Build(session.DocumentText, request.Chat)

	var warning string
	if cs.promptBuilder.TooLong(payload) {
		warning = prompt.WarningMessage
		cs.log.Warn("chat", "payload exceeds warn threshold", map[string]interface{}{
			"session_id":   session.Id.String(),
			"payload_size": len(payload),
		})
	}

	replyText, err := cs.llm.Send(ctx, session.Conversation, payload)
	if err != nil {
		replyText = "Error communicating with Gemini: " + err.Error()
		cs.log.Error("chat", "gemini call failed", map[string]interface{}{
			"session_id": session.Id.String(),
			"error":      err.Error(),
		})
	}

	reply := &entity.ChatMessage{
		Id:        uuid.New(),
		Role:      entity.RoleAssistant,
		Chat:      replyText,
		CreatedAt: time.Now(),
	}
	session.Messages = append(session.Messages, reply)
	cs.sessions.Save(session)

	return &dto.SendChatResponse{
		SessionId: session.Id,
		Sent:      toResponseChat(sent),
		Reply:     toResponseChat(reply),
		Warning:   warning,
	}, nil
}

func (cs *chatService) ResetChat(ctx context.Context, sessionId uuid.UUID) error {
	session, found := cs.sessions.Get(sessionId)
	if !found {
		return ErrSessionNotFound
	}
	cs.sessions.ResetChatKeepDocument(session)
	return nil
}

func toMessageDTOs(messages []*entity.ChatMessage) []dto.ChatMessageDTO {
	out := make([]dto.ChatMessageDTO, 0, len(messages))
	for _, m := range messages {
		out = append(out, dto.ChatMessageDTO{
			Id:        m.Id,
			Role:      m.Role,
			Chat:      m.Chat,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}

func toResponseChat(m *entity.ChatMessage) *dto.SendChatResponseChat {
	return &dto.SendChatResponseChat{
		Id:        m.Id,
		Chat:      m.Chat,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= documentSnippetLength {
		return text
	}
	return string(runes[:documentSnippetLength]) + "..."
}
