package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	JWTSecret     string
	MongoURI      string
	DBName        string
	StorageDriver string // "mongo" (default) or "postgres" for the settings store
	PostgresDSN   string
	SkipAuth      bool
	Environment   string
	AppId         string
	AllowOrigins  string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file successfully")
	}

	return &Config{
		Port:          getEnv("PORT", "8080"),
		JWTSecret:     getEnv("JWT_SECRET", "secret"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:        getEnv("DB_NAME", "ai_agent_portal"),
		StorageDriver: getEnv("STORAGE_DRIVER", "mongo"),
		PostgresDSN:   getEnv("POSTGRES_DSN", "postgres://localhost:5432/ai_agent_portal?sslmode=disable"),
		SkipAuth:      getEnv("SKIP_AUTH", "false") == "true",
		Environment:   getEnv("ENVIRONMENT", "development"),
		AppId:         getEnv("APP_ID", "ai-portal"),
		AllowOrigins:  getEnv("ALLOW_ORIGINS", "http://localhost:5173, http://localhost:3000"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
