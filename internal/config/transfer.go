package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// TransferConfig tunes how transfers react to lock contention.
type TransferConfig struct {
	MaxAttempts int
	RetryDelay  time.Duration
	EventsKey   string
}

func LoadTransferConfig() *TransferConfig {
	cfg := &TransferConfig{
		MaxAttempts: getEnvAsInt("TRANSFER_MAX_ATTEMPTS", 5),
		RetryDelay:  getEnvAsDuration("TRANSFER_RETRY_DELAY", 1*time.Second),
		EventsKey:   getEnv("TRANSFER_EVENTS_KEY", "transfer_events"),
	}
	if cfg.MaxAttempts < 1 {
		log.Printf("[CONFIG] TRANSFER_MAX_ATTEMPTS=%d is invalid, using 5", cfg.MaxAttempts)
		cfg.MaxAttempts = 5
	}
	if cfg.RetryDelay < 0 {
		log.Printf("[CONFIG] TRANSFER_RETRY_DELAY=%s is invalid, using 1s", cfg.RetryDelay)
		cfg.RetryDelay = time.Second
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			return duration
		}
	}
	return defaultVal
}
