package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App  AppConfig
	Keys APIKeys
	Ai   AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	SessionTTLMinutes  int
}

type APIKeys struct {
	GoogleGemini string
}

type AIConfig struct {
	GeminiModel string
	// PromptWarnThreshold is the payload length above which the user is
	// warned about possible truncation. Rough heuristic for the model's
	// context window.
	PromptWarnThreshold int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	cfg := &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			SessionTTLMinutes:  getEnvAsInt("SESSION_TTL_MINUTES", 60),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			GeminiModel:         getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			PromptWarnThreshold: getEnvAsInt("PROMPT_WARN_THRESHOLD", 28000),
		},
	}

	// The Gemini key is the single required credential. Halt instead of
	// serving degraded functionality.
	if cfg.Keys.GoogleGemini == "" {
		log.Fatalln("GOOGLE_GEMINI_API_KEY not found! Please set it in your .env file or environment variables.")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
