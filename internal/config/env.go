package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string

	PaymentBaseURL   string
	PaymentSecretKey string

	AddressBaseURL string
	AddressAPIKey  string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
}

func LoadEnv() Env {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	return Env{
		AppAddr: appAddr,
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		DBUser: envOr("DB_USER", "root"),
		DBPass: os.Getenv("DB_PASS"),
		DBHost: envOr("DB_HOST", "127.0.0.1:3306"),
		DBName: envOr("DB_NAME", "careline"),

		JWTSecret: envOr("JWT_SECRET", "change-me-in-production"),

		PaymentBaseURL:   envOr("PAYMENT_BASE_URL", "https://api.tosspayments.com"),
		PaymentSecretKey: os.Getenv("PAYMENT_SECRET_KEY"),

		AddressBaseURL: envOr("ADDRESS_BASE_URL", "https://business.juso.go.kr"),
		AddressAPIKey:  os.Getenv("ADDRESS_API_KEY"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
