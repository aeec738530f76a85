package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"HOST", "PORT", "ALLOW_ORIGINS", "LOG_LEVEL", "LOG_FILE",
		"LOG_JSON", "MAX_UPLOAD_MB", "UPLOAD_TTL", "SWEEP_INTERVAL", "CACHE_MAX_ITEMS", "CACHE_TTL", "MATCH_MODE"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "127.0.0.1:8082", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.AllowOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10, cfg.MaxUploadMB)
	assert.Equal(t, time.Hour, cfg.UploadTTL)
	assert.Equal(t, 5*time.Minute, cfg.SweepInterval)
	assert.Equal(t, 100, cfg.CacheMaxItems)
	assert.Equal(t, "cascade", cfg.MatchMode)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOW_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("MAX_UPLOAD_MB", "25")
	t.Setenv("UPLOAD_TTL", "30m")
	t.Setenv("CACHE_MAX_ITEMS", "0")
	t.Setenv("MATCH_MODE", "strict")

	cfg := Load()
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowOrigins)
	assert.Equal(t, 25, cfg.MaxUploadMB)
	assert.Equal(t, 30*time.Minute, cfg.UploadTTL)
	assert.Equal(t, 0, cfg.CacheMaxItems)
	assert.Equal(t, "strict", cfg.MatchMode)
}

func TestLoadIgnoresGarbage(t *testing.T) {
	t.Setenv("PORT", "eighty")
	t.Setenv("UPLOAD_TTL", "soon")

	cfg := Load()
	assert.Equal(t, 8082, cfg.Port)
	assert.Equal(t, time.Hour, cfg.UploadTTL)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("loud"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
}

func TestSetupLoggerWritesFile(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	path := filepath.Join(t.TempDir(), "logs", "pf.log")
	logger := SetupLogger(Config{LogLevel: "info", LogFile: path, LogJSON: true, LogMaxSizeMB: 1})
	logger.Info().Str("k", "v").Msg("hello")
	logger.Debug().Msg("hidden")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"message":"hello"`)
	assert.Contains(t, string(b), `"svc":"parts-finder"`)
	assert.NotContains(t, string(b), "hidden")
}

func TestLoadLogFileOff(t *testing.T) {
	t.Setenv("LOG_FILE", "off")
	t.Setenv("LOG_JSON", "true")
	cfg := Load()
	assert.Empty(t, cfg.LogFile)
	assert.True(t, cfg.LogJSON)
}
