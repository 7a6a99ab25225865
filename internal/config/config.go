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
	Midtrans MidtransConfig
	Currency CurrencyConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	// NotificationsViaNats hands email delivery to the cmd/worker durable
	// consumer instead of the in-process channel.
	NotificationsViaNats bool
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

type MidtransConfig struct {
	ServerKey    string
	IsProduction bool
}

type CurrencyConfig struct {
	ProviderURL string
	// Settlement is the currency the gateway settles in.
	Settlement string
	// StaticRate pins the conversion rate when set (>0), bypassing the provider.
	StaticRate float64
	// FallbackRate is used when the provider is unreachable and nothing is cached.
	FallbackRate float64
}

type BookingConfig struct {
	// AmountTolerance is the absolute slack allowed between expected and
	// verified payment amounts, in settlement currency units.
	AmountTolerance float64
	// NightLockEnabled turns on per-night admission leases.
	NightLockEnabled bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:                 getEnv("APP_PORT", "3000"),
			BaseURL:              getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:            getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:          getEnv("GO_ENV", "development"),
			LogFilePath:          getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:              getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:             getEnv("REDIS_URL", "redis://localhost:6379"),
			NotificationsViaNats: getEnvAsBool("NOTIFICATIONS_VIA_NATS", false),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "HotelBooking"),
		},
		Midtrans: MidtransConfig{
			ServerKey:    getEnv("MIDTRANS_SERVER_KEY", ""),
			IsProduction: getEnvAsBool("MIDTRANS_IS_PRODUCTION", false),
		},
		Currency: CurrencyConfig{
			ProviderURL:  getEnv("CURRENCY_PROVIDER_URL", ""),
			Settlement:   getEnv("SETTLEMENT_CURRENCY", "IDR"),
			StaticRate:   getEnvAsFloat("CURRENCY_STATIC_RATE", 0),
			FallbackRate: getEnvAsFloat("CURRENCY_FALLBACK_RATE", 1),
		},
		Booking: BookingConfig{
			AmountTolerance:  getEnvAsFloat("PAYMENT_AMOUNT_TOLERANCE", 2),
			NightLockEnabled: getEnvAsBool("NIGHT_LOCK_ENABLED", true),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
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
