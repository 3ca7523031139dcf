package bootstrap

import (
	"log"
	"time"

	"statement-chat-be/internal/config"
	"statement-chat-be/internal/controller"
	"statement-chat-be/internal/pkg/logger"
	"statement-chat-be/internal/repository/memory"
	"statement-chat-be/internal/service"
	"statement-chat-be/pkg/chatbot"
	"statement-chat-be/pkg/extractor"
	"statement-chat-be/pkg/prompt"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Exposed for graceful shutdown
	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. External Clients
	llm := chatbot.NewClient(cfg.Keys.GoogleGemini, cfg.Ai.GeminiModel)
	log.Printf("[INFO] Using Gemini model: %s", cfg.Ai.GeminiModel)

	// 3. In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.App.SessionTTLMinutes) * time.Minute)
	sessionManager := service.NewSessionManager(sessionRepo, llm)

	// 4. Domain Components
	pdfExtractor := extractor.NewPDFExtractor()
	promptBuilder := prompt.NewBuilder(cfg.Ai.PromptWarnThreshold)

	// 5. Services
	chatService := service.NewChatService(sessionManager, llm, pdfExtractor, promptBuilder, sysLogger)

	// 6. Controllers
	chatController := controller.NewChatController(chatService)

	return &Container{
		ChatController: chatController,
		Logger:         sysLogger,
	}
}
