package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3008, cfg.Server.Port)
	assert.Equal(t, 20, cfg.Server.RateLimitRPS)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, SourceBuiltin, cfg.Catalog.Source)
	assert.Equal(t, "broadcast", cfg.Redis.Channel)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, "moderator", cfg.Auth.ModeratorRole)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeFile(t, `
server:
  port: 9000
  shutdown_timeout: 3s
catalog:
  source: file
  path: /data/videos.yaml
log:
  level: debug
`)
	t.Setenv("VIDEOPLAYER_SERVER__PORT", "9100")
	t.Setenv("VIDEOPLAYER_AUTH__JWT_SECRET", "s3cret")
	t.Setenv("VIDEOPLAYER_SERVER__CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, SourceFile, cfg.Catalog.Source)
	assert.Equal(t, "/data/videos.yaml", cfg.Catalog.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
}

func TestLoadConfigPathEnv(t *testing.T) {
	path := writeFile(t, "redis:\n  url: redis://localhost:6379/0\n")
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown source", "catalog:\n  source: ftp\n"},
		{"file source without path", "catalog:\n  source: file\n"},
		{"postgres without url", "catalog:\n  source: postgres\n"},
		{"bad port", "server:\n  port: 70000\n"},
		{"bad level", "log:\n  level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.rate_limit_rps", envKey("VIDEOPLAYER_SERVER__RATE_LIMIT_RPS"))
	assert.Equal(t, "database.url", envKey("VIDEOPLAYER_DATABASE__URL"))
}
