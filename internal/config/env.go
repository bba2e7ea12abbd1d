package config

import (
	"fmt"
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

	// Base URLs for split deployments. When empty the billing engine reads
	// trips and billing models from the local database.
	TripServiceURL    string
	BillingServiceURL string

	// StrictTripFetch makes a failed trip fetch fatal for a billing
	// calculation instead of proceeding with zero trips.
	StrictTripFetch bool
}

// Cfg holds the process-wide environment, set by LoadEnv.
var Cfg Env

func LoadEnv() Env {
	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	env := Env{
		AppAddr:           appAddr,
		GinMode:           strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBUser:            envOrDefault("DB_USER", "root"),
		DBPass:            os.Getenv("DB_PASS"),
		DBHost:            envOrDefault("DB_HOST", "127.0.0.1:3306"),
		DBName:            envOrDefault("DB_NAME", "corptransit"),
		JWTSecret:         envOrDefault("JWT_SECRET", "super-secret-key-change-me"),
		TripServiceURL:    strings.TrimSpace(os.Getenv("TRIP_SERVICE_URL")),
		BillingServiceURL: strings.TrimSpace(os.Getenv("BILLING_SERVICE_URL")),
		StrictTripFetch:   envBool("BILLING_STRICT_TRIPS"),
	}

	Cfg = env
	return env
}

// DSN assembles the MySQL connection string from the loaded environment.
func (e Env) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
		e.DBUser, e.DBPass, e.DBHost, e.DBName)
}

func envOrDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes"
}
