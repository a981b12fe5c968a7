package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config bevat alle instellingen van de server, gevuld vanuit env (en .env)
type Config struct {
	Port           string
	APIVersion     string
	LogLevel       string
	MaxBodyBytes   int64
	DiagramTTL     time.Duration
	PruneSpec      string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		Port:           "8080",
		APIVersion:     "1.0.0",
		LogLevel:       "info",
		MaxBodyBytes:   1 << 20,
		DiagramTTL:     time.Hour,
		PruneSpec:      "@every 1m",
		RateLimitRPS:   5,
		RateLimitBurst: 10,
	}
}

// Load reads .env when present and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from lookup, falling back to Default for unset keys.
func FromEnv(lookup func(string) string) (Config, error) {
	cfg := Default()
	get := func(key string) string { return strings.TrimSpace(lookup(key)) }

	if v := get("PORT"); v != "" {
		cfg.Port = v
	}
	if v := get("API_VERSION"); v != "" {
		cfg.APIVersion = v
	}
	if v := get("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := get("PRUNE_SCHEDULE"); v != "" {
		cfg.PruneSpec = v
	}
	if v := get("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("MAX_BODY_BYTES: ongeldige waarde %q", v)
		}
		cfg.MaxBodyBytes = n
	}
	if v := get("DIAGRAM_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("DIAGRAM_TTL: %w", err)
		}
		cfg.DiagramTTL = d
	}
	if v := get("RATE_LIMIT_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			return cfg, fmt.Errorf("RATE_LIMIT_RPS: ongeldige waarde %q", v)
		}
		cfg.RateLimitRPS = f
	}
	if v := get("RATE_LIMIT_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return cfg, fmt.Errorf("RATE_LIMIT_BURST: ongeldige waarde %q", v)
		}
		cfg.RateLimitBurst = n
	}
	return cfg, nil
}

// Addr is het listen adres voor http.Server
func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
