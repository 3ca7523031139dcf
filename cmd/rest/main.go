package main

import (
	"context"
	"log"

	"statement-chat-be/internal/bootstrap"
	"statement-chat-be/internal/config"
	"statement-chat-be/internal/server"
	"statement-chat-be/internal/tracer"
)

func main() {
	// 1. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 2. Load Configuration (halts if the Gemini key is missing)
	cfg := config.Load()

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(cfg)
	defer container.Logger.Sync()

	// 4. Initialize Server
	srv := server.New(cfg, container)

	// 5. Run Server
	log.Fatal(srv.Run())
}
