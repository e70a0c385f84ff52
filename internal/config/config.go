package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string

	// FrontendURL is the allowed CORS origin for the task UI.
	FrontendURL string

	// MigrationsPath is the file source for golang-migrate.
	MigrationsPath string

	// AnthropicAPIKey may be empty; skill prediction then runs on the
	// keyword fallback only.
	AnthropicAPIKey string
	LLMModel        string

	// SimilarTaskLimit caps how many historical tasks feed the predictor.
	SimilarTaskLimit int
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	return &Config{
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "taskmanager_user"),
		DBPassword:       getEnv("DB_PASSWORD", "taskmanager_pass"),
		DBName:           getEnv("DB_NAME", "taskmanager_db"),
		ServerPort:       getEnv("SERVER_PORT", "5000"),
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:3000"),
		MigrationsPath:   getEnv("MIGRATIONS_PATH", "migrations"),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		LLMModel:         getEnv("LLM_MODEL", ""),
		SimilarTaskLimit: getEnvInt("SIMILAR_TASK_LIMIT", 5),
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("⚠️  Invalid value for %s, using default %d", key, defaultVal)
	}
	return defaultVal
}
