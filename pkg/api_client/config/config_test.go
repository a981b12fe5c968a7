package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"PORT":             ":9090",
		"API_VERSION":      "2.0.0",
		"LOG_LEVEL":        "DEBUG",
		"MAX_BODY_BYTES":   "2048",
		"DIAGRAM_TTL":      "15m",
		"RATE_LIMIT_RPS":   "0.5",
		"RATE_LIMIT_BURST": "3",
		"PRUNE_SCHEDULE":   "@every 10s",
	}))
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "2.0.0", cfg.APIVersion)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.EqualValues(t, 2048, cfg.MaxBodyBytes)
	assert.Equal(t, 15*time.Minute, cfg.DiagramTTL)
	assert.Equal(t, 0.5, cfg.RateLimitRPS)
	assert.Equal(t, 3, cfg.RateLimitBurst)
	assert.Equal(t, "@every 10s", cfg.PruneSpec)
}

func TestFromEnvRejectsInvalid(t *testing.T) {
	for key, value := range map[string]string{
		"MAX_BODY_BYTES":   "-1",
		"DIAGRAM_TTL":      "soon",
		"RATE_LIMIT_RPS":   "fast",
		"RATE_LIMIT_BURST": "x",
	} {
		t.Run(key, func(t *testing.T) {
			_, err := FromEnv(envMap(map[string]string{key: value}))
			assert.ErrorContains(t, err, key)
		})
	}
}
