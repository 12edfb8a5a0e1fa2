package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the service.
type Config struct {
	DatabaseURL     string
	ServerPort      int
	IdentityBaseURL string        // empty means resolve names directly from storage
	JWTSecretKey    string        // empty disables bearer-token verification
	StorageTimeout  time.Duration // per-call bound on stored-procedure calls
	IdentityTimeout time.Duration // per-call bound on identity-service calls
	AllowedOrigins  []string
}

// Load reads configuration from environment variables. A .env file is
// loaded first when present, which is convenient for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	storageTimeout, err := durationEnv("STORAGE_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}
	identityTimeout, err := durationEnv("IDENTITY_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	origins := []string{"*"}
	if raw := os.Getenv("ALLOWED_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
	}

	cfg := &Config{
		DatabaseURL:     dbURL,
		ServerPort:      port,
		IdentityBaseURL: os.Getenv("IDENTITY_SERVICE_URL"),
		JWTSecretKey:    os.Getenv("JWT_SECRET_KEY"),
		StorageTimeout:  storageTimeout,
		IdentityTimeout: identityTimeout,
		AllowedOrigins:  origins,
	}

	return cfg, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %v", key, d)
	}
	return d, nil
}
