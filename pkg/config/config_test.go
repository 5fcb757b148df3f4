package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		path := writeConfig(t, `
server:
  listen: ":9090"
  timeout: 45s

sync:
  update_interval: 15m
  max_workers: 3
  run_timeout: 5m
  refresh_summaries: true

fetch:
  timeout: 20s
  user_agent: "custom-agent/2.0"

extraction:
  enabled: true
  min_text_length: 200

notifications:
  telegram:
    token: "bot-token"
    chat_id: 12345
  priority_keywords: ["release", "security"]
`)

		cfg, err := Load(path)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 15*time.Minute, cfg.Sync.UpdateInterval)
		assert.Equal(t, 3, cfg.Sync.MaxWorkers)
		assert.Equal(t, 5*time.Minute, cfg.Sync.RunTimeout)
		assert.True(t, cfg.Sync.RefreshSummaries)
		assert.Equal(t, 20*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, "custom-agent/2.0", cfg.Fetch.UserAgent)
		assert.True(t, cfg.Extraction.Enabled)
		assert.Equal(t, 200, cfg.Extraction.MinTextLength)
		assert.Equal(t, "bot-token", cfg.Notifications.Telegram.Token)
		assert.Equal(t, int64(12345), cfg.Notifications.Telegram.ChatID)
		assert.Equal(t, []string{"release", "security"}, cfg.Notifications.PriorityKeywords)
	})

	t.Run("defaults", func(t *testing.T) {
		path := writeConfig(t, `
server:
  listen: ":8080"
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, "file:feedsync.db?cache=shared&mode=rwc&_txlock=immediate", cfg.Database.DSN)
		assert.Equal(t, 10, cfg.Database.MaxOpenConns)
		assert.Equal(t, 30*time.Minute, cfg.Sync.UpdateInterval)
		assert.Equal(t, 5, cfg.Sync.MaxWorkers)
		assert.Equal(t, 10*time.Minute, cfg.Sync.RunTimeout)
		assert.Equal(t, "Feedsync/1.0", cfg.Fetch.UserAgent)
		assert.Equal(t, 100, cfg.Extraction.MinTextLength)
		assert.False(t, cfg.Extraction.Enabled)
	})

	t.Run("extraction user agent falls back to fetch", func(t *testing.T) {
		path := writeConfig(t, `
fetch:
  user_agent: "shared-agent/1.0"
`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "shared-agent/1.0", cfg.Extraction.UserAgent)
	})

	t.Run("environment expansion", func(t *testing.T) {
		t.Setenv("TEST_TG_TOKEN", "secret-token")
		path := writeConfig(t, `
notifications:
  telegram:
    token: "${TEST_TG_TOKEN}"
    chat_id: 7
`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "secret-token", cfg.Notifications.Telegram.Token)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load("/nonexistent/config.yml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := writeConfig(t, "server: [not a map")
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse config")
	})
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name: "server timeout too small",
			content: `
server:
  timeout: 100ms
`,
			errMsg: "server timeout must be at least 1 second",
		},
		{
			name: "negative workers",
			content: `
sync:
  max_workers: -1
`,
			errMsg: "sync.max_workers must be at least 1",
		},
		{
			name: "update interval too small",
			content: `
sync:
  update_interval: 5s
`,
			errMsg: "sync.update_interval must be at least 1 minute",
		},
		{
			name: "telegram token without chat",
			content: `
notifications:
  telegram:
    token: "bot-token"
`,
			errMsg: "notifications.telegram.chat_id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_Getters(t *testing.T) {
	path := writeConfig(t, `
server:
  listen: ":9999"
  timeout: 10s
sync:
  max_workers: 2
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9999", listen)
	assert.Equal(t, 10*time.Second, timeout)
	assert.Equal(t, 2, cfg.GetSyncConfig().MaxWorkers)
	assert.Equal(t, 100, cfg.GetExtractionConfig().MinTextLength)
	assert.Same(t, cfg, cfg.GetFullConfig())
}
