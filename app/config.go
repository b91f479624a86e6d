package app

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	ServerPort        string
	RegistrationKey   string
	JWTSecret         string
	JWTExpirationSec  int64
	CPUAlertThreshold float64
	MemAlertThreshold float64
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "9100"),
		RegistrationKey:   getEnv("AGENT_REGISTRATION_KEY", ""),
		JWTSecret:         getEnv("JWT_SIGNING_SECRET", ""),
		JWTExpirationSec:  86400, // 24 hours
		CPUAlertThreshold: getEnvFloat("CPU_ALERT_THRESHOLD", 90),
		MemAlertThreshold: getEnvFloat("MEMORY_ALERT_THRESHOLD", 90),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SIGNING_SECRET must be set")
	}
	if cfg.RegistrationKey == "" {
		return nil, fmt.Errorf("AGENT_REGISTRATION_KEY must be set")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
