package service

import (
	"time"

	"github.com/google/uuid"

	"statement-chat-be/internal/entity"
	"statement-chat-be/internal/repository/memory"
	"statement-chat-be/pkg/chatbot"
)

// SessionManager owns session lifecycle and the three state mutations.
// Every mutation that touches chat history swaps in a fresh conversation
// handle and clears the transcript together, so the displayed history
// never diverges from the dialogue the model actually sees.
type SessionManager struct {
	sessionRepo *memory.SessionRepository
	llm         *chatbot.Client
}

func NewSessionManager(sessionRepo *memory.SessionRepository, llm *chatbot.Client) *SessionManager {
	return &SessionManager{
		sessionRepo: sessionRepo,
		llm:         llm,
	}
}

// Create initializes a session with an empty conversation handle.
func (m *SessionManager) Create() *entity.Session {
	session := &entity.Session{
		Id:           uuid.New(),
		Messages:     make([]*entity.ChatMessage, 0),
		Conversation: m.llm.NewConversation(),
		CreatedAt:    time.Now(),
	}
	m.sessionRepo.Save(session)
	return session
}

func (m *SessionManager) Get(sessionId uuid.UUID) (*entity.Session, bool) {
	return m.sessionRepo.Get(sessionId.String())
}

func (m *SessionManager) Save(session *entity.Session) {
	m.sessionRepo.Save(session)
}

// LoadDocument attaches freshly extracted statement text and starts the
// chat over so earlier context cannot leak into the new document.
func (m *SessionManager) LoadDocument(session *entity.Session, text string) {
	session.DocumentText = &text
	m.resetConversation(session)
}

// ClearDocument drops the statement text and the chat with it.
func (m *SessionManager) ClearDocument(session *entity.Session) {
	session.DocumentText = nil
	m.resetConversation(session)
}

// ResetChatKeepDocument starts the chat over while leaving the loaded
// statement untouched.
func (m *SessionManager) ResetChatKeepDocument(session *entity.Session) {
	m.resetConversation(session)
}

func (m *SessionManager) resetConversation(session *entity.Session) {
	session.Conversation = m.llm.NewConversation()
	session.Messages = make([]*entity.ChatMessage, 0)
	m.sessionRepo.Save(session)
}
