// Package config loads process configuration from environment variables.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// DefaultTokenTTL is how long an issued identity token stays valid.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Config holds everything the API server needs besides database settings,
// which stay in database.DBConfig.
type Config struct {
	Port    int
	GinMode string

	SecretKey string
	TokenTTL  time.Duration

	AllowOrigins []string

	RateLimitPerSecond uint
	RedisURL           string
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:               envInt("PORT", 8080),
		GinMode:            envString("GIN_MODE", gin.DebugMode),
		SecretKey:          os.Getenv("SECRET_KEY"),
		TokenTTL:           envDuration("TOKEN_TTL", DefaultTokenTTL),
		AllowOrigins:       splitList(envString("ALLOW_ORIGIN", "http://localhost:5173")),
		RateLimitPerSecond: uint(envInt("RATE_LIMIT_REQUESTS_PER_SECOND", 5)),
		RedisURL:           os.Getenv("REDIS_URL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		if c.GinMode == gin.ReleaseMode {
			return fmt.Errorf("SECRET_KEY is required in release mode")
		}
		secret, err := randomSecret()
		if err != nil {
			return fmt.Errorf("generate SECRET_KEY: %w", err)
		}
		log.Printf("SECRET_KEY is not set, using a random key; issued tokens will not survive a restart")
		c.SecretKey = secret
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.TokenTTL)
	}
	if c.RateLimitPerSecond == 0 {
		c.RateLimitPerSecond = 5
	}
	return nil
}

// randomSecret returns 32 random bytes, hex encoded.
func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
