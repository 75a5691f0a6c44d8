package configprovider

import (
	"log"
	"os"
	"time"

	"github.com/Senaseser/assetTracker/providers"
	"github.com/joho/godotenv"
)

const (
	defaultBaseURL        = "http://localhost:5000"
	defaultRequestTimeout = 30 * time.Second
	defaultSessionTTL     = 30 * time.Minute
	defaultStoragePath    = "assettracker.db"
)

type EnvConfigProvider struct {
	baseURL        string
	requestTimeout time.Duration
	sessionTTL     time.Duration
	storagePath    string
	username       string
	password       string
}

func NewConfigProvider() providers.ConfigProvider {
	return &EnvConfigProvider{}
}

func (e *EnvConfigProvider) LoadEnv() error {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not loaded, using system envs")
	}

	e.baseURL = envOr("API_BASE_URL", defaultBaseURL)
	e.requestTimeout = durationOr("REQUEST_TIMEOUT", defaultRequestTimeout)
	e.sessionTTL = durationOr("SESSION_TTL", defaultSessionTTL)
	e.storagePath = envOr("STORAGE_PATH", defaultStoragePath)
	e.username = os.Getenv("DASHBOARD_USERNAME")
	e.password = os.Getenv("DASHBOARD_PASSWORD")
	return nil
}

func (e *EnvConfigProvider) GetBaseURL() string {
	return e.baseURL
}

func (e *EnvConfigProvider) GetRequestTimeout() time.Duration {
	return e.requestTimeout
}

func (e *EnvConfigProvider) GetSessionTTL() time.Duration {
	return e.sessionTTL
}

func (e *EnvConfigProvider) GetStoragePath() string {
	return e.storagePath
}

func (e *EnvConfigProvider) GetUsername() string {
	return e.username
}

func (e *EnvConfigProvider) GetPassword() string {
	return e.password
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Warning: invalid %s %q, using default", key, v)
		return fallback
	}
	return d
}
