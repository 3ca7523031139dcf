// aicheck verifies the configured Gemini credential before the server
// is started: it loads the environment, sends a one-off prompt and
// reports the reply or the service's rejection.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"statement-chat-be/pkg/chatbot"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	apiKey := os.Getenv("GOOGLE_GEMINI_API_KEY")
	if apiKey == "" {
		color.Red("GOOGLE_GEMINI_API_KEY not found! Please set it in your .env file or environment variables.")
		os.Exit(1)
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}

	color.Cyan("Checking Gemini credential (model: %s)", model)

	client := chatbot.NewClient(apiKey, model)
	conv := client.NewConversation()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	reply, err := client.Send(ctx, conv, "Reply with the single word: ok")
	if err != nil {
		color.Red("Credential rejected: %v", err)
		os.Exit(1)
	}

	color.Green("Credential accepted. Model replied: %s", reply)
}
