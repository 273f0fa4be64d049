package config

import (
	"os"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Stripe
	StripeSecretKey        string
	StripeReturnURL        string
	StripeRefreshURL       string
	StripeDashboardBaseURL string

	// Server
	Port        string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "account_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		StripeSecretKey:        getEnv("STRIPE_SECRET_KEY", ""),
		StripeReturnURL:        getEnv("STRIPE_CONNECT_RETURN_URL", "http://localhost:3000/stripe/return"),
		StripeRefreshURL:       getEnv("STRIPE_CONNECT_REFRESH_URL", "http://localhost:3000/stripe/refresh"),
		StripeDashboardBaseURL: getEnv("STRIPE_DASHBOARD_BASE_URL", "https://dashboard.stripe.com/express/"),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
