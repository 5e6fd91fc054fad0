// Package config loads the demo binary's settings from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the demo configuration. The ledger core itself takes its
// dependencies explicitly and never reads the environment.
type Config struct {
	HashSuite   string // kyber suite used for history chaining
	LogLevel    string // logrus level
	IssueAmount uint64 // amount issued to the demo wallets
}

// Load reads a .env file if present and falls back to defaults.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HashSuite:   getEnv("HASH_SUITE", "Ed25519"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		IssueAmount: 100,
	}
	if v, err := strconv.ParseUint(os.Getenv("ISSUE_AMOUNT"), 10, 64); err == nil {
		cfg.IssueAmount = v
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
