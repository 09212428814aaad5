package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fdurupinar/bioagents/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsWithoutPath(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 6200, cfg.Port)
	assert.Equal(t, "bsb", cfg.Name)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, "bsb.yaml", `
host: bus.example.org
port: 9000
format: mermaid
relay_spoken: true
read_timeout: 30s
cache:
  backend: redis
  redis:
    addr: cache:6379
    ttl: 1h
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "bus.example.org", cfg.Host)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "mermaid", cfg.Format)
	assert.True(t, cfg.RelaySpoken)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
	assert.Equal(t, config.CacheRedis, cfg.Cache.Backend)
	assert.Equal(t, "cache:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, time.Hour, cfg.Cache.Redis.TTL)

	// Untouched fields keep their defaults.
	assert.Equal(t, "bsb", cfg.Name)
	assert.Equal(t, "bsb:diagram:", cfg.Cache.Redis.Prefix)

	sc := cfg.Session()
	assert.Equal(t, "bus.example.org", sc.Host)
	assert.True(t, sc.RelaySpoken)
	assert.Equal(t, 30*time.Second, sc.ReadTimeout)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "bsb.json", `{"port": 7000, "start_conversation": true}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
	assert.True(t, cfg.StartConversation)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = config.Load(writeFile(t, "bad.yaml", "port: [1, 2"))
	assert.Error(t, err)
}

func TestValidate_AggregatesErrors(t *testing.T) {
	cfg := config.Default()
	cfg.Host = ""
	cfg.Port = 70000
	cfg.Format = "png"
	cfg.LogLevel = "loud"
	cfg.Cache.Backend = "disk"

	err := cfg.Validate()
	require.Error(t, err)
	for _, field := range []string{"host", "port", "format", "log_level", "cache.backend"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestValidate_RedisRequiresAddr(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Backend = config.CacheRedis
	cfg.Cache.Redis.Addr = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.redis.addr")
}
