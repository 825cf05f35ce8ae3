package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Payment  PaymentConfig
	Ai       AIConfig
	Topics   TopicConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	FrontendURL        string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type PaymentConfig struct {
	MidtransServerKey  string
	MidtransProduction bool
}

type AIConfig struct {
	ProxyBaseURL string
	ProxyAPIKey  string
	Model        string
}

type TopicConfig struct {
	PurchaseCompleted string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", "default_secret"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "PrimoBoost AI"),
		},
		Payment: PaymentConfig{
			MidtransServerKey:  getEnv("MIDTRANS_SERVER_KEY", ""),
			MidtransProduction: getEnvAsBool("MIDTRANS_IS_PRODUCTION", false),
		},
		Ai: AIConfig{
			ProxyBaseURL: getEnv("AI_PROXY_BASE_URL", ""),
			ProxyAPIKey:  getEnv("AI_PROXY_API_KEY", ""),
			Model:        getEnv("AI_MODEL", "google/gemini-2.5-flash"),
		},
		Topics: TopicConfig{
			PurchaseCompleted: getEnv("PURCHASE_COMPLETED_TOPIC_NAME", "PURCHASE_COMPLETED"),
		},
	}
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

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
