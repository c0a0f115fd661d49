package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	ExerciseDB ExerciseDBConfig
	Mistral    MistralConfig
	Rag        RagConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type ExerciseDBConfig struct {
	BaseURL string
	APIKey  string
	Host    string
}

type MistralConfig struct {
	APIKey      string
	BaseURL     string
	VisionModel string
	TextModel   string
}

type RagConfig struct {
	// DocumentsJSON holds a JSON array bootstrapping the retrieval set.
	// Malformed JSON yields an empty set.
	DocumentsJSON string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8080"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		ExerciseDB: ExerciseDBConfig{
			BaseURL: getEnv("EXERCISEDB_BASE_URL", ""),
			APIKey:  getEnv("EXERCISEDB_API_KEY", ""),
			Host:    getEnv("EXERCISEDB_HOST", ""),
		},
		Mistral: MistralConfig{
			APIKey:      getEnv("MISTRAL_API_KEY", ""),
			BaseURL:     getEnv("MISTRAL_BASE_URL", "https://api.mistral.ai/v1"),
			VisionModel: getEnv("MISTRAL_VISION_MODEL", "mistral-small-latest"),
			TextModel:   getEnv("MISTRAL_TEXT_MODEL", "mistral-small-latest"),
		},
		Rag: RagConfig{
			DocumentsJSON: getEnv("RAG_DOCUMENTS", "[]"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
