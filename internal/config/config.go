package config

import "os"

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port          string
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string

	// UploadDir is created at startup and reserved for listing
	// attachments; no current handler reads or writes it.
	UploadDir string
}

func Load() *Config {
	return &Config{
		Port:          getenv("PORT", "8080"),
		PostgresDSN:   getenv("POSTGRES_DSN", ""),
		RedisAddr:     getenv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		UploadDir:     getenv("UPLOAD_DIR", "uploads"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
