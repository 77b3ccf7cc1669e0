package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amidalab/amidakuji/pkg/errors"
	"github.com/amidalab/amidakuji/pkg/ladder"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ladder.DefaultMinRows, cfg.Ladder.MinRows)
	assert.Equal(t, BackendFile, cfg.Cache.Backend)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[ladder]
min_rows = 12

[cache]
backend = "redis"

[cache.redis]
addr = "redis.internal:6379"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Ladder.MinRows)
	assert.Equal(t, BackendRedis, cfg.Cache.Backend)
	assert.Equal(t, "redis.internal:6379", cfg.Cache.Redis.Addr)

	// Untouched sections keep their defaults.
	assert.Equal(t, ladder.DefaultRungProbability, cfg.Ladder.RungProb)
	assert.Equal(t, BackendFile, cfg.History.Backend)
	assert.Equal(t, "mongodb://localhost:27017", cfg.History.Mongo.URI)
}

func TestLoadHonorsFillProbZero(t *testing.T) {
	// fill_prob = 0 is the config-file way to disable decorative filling,
	// so it must survive validation.
	cfg, err := Load(writeConfig(t, "[ladder]\nfill_prob = 0.0\n"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Ladder.FillProb)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown cache backend", "[cache]\nbackend = \"memcached\"\n"},
		{"unknown history backend", "[history]\nbackend = \"dynamo\"\n"},
		{"rung prob out of range", "[ladder]\nrung_prob = 1.5\n"},
		{"rung prob zero", "[ladder]\nrung_prob = 0.0\n"},
		{"rung prob one", "[ladder]\nrung_prob = 1.0\n"},
		{"fill prob negative", "[ladder]\nfill_prob = -0.1\n"},
		{"fill prob one", "[ladder]\nfill_prob = 1.0\n"},
		{"malformed toml", "[[ladder\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeInvalidConfig, errors.GetCode(err))
		})
	}
}
