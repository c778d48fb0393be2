package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		configContent := `
server:
  listen: ":9090"
  timeout: 45s

schedule:
  poll_interval: 2m
  max_workers: 8

fetch:
  timeout: 15s
  user_agent: "TestAgent/2.0"
  default_interval_minutes: 60

snapshot:
  entry_limit: 25

sources:
  - name: Example Blog
    feed_url: https://example.com/feed.xml
    homepage_url: https://example.com
    language: en
    category: tech
    interval_minutes: 15
  - name: Another Feed
    feed_url: https://another.example.com/rss
    disabled: true
`
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 2*time.Minute, cfg.Schedule.PollInterval)
		assert.Equal(t, 8, cfg.Schedule.MaxWorkers)
		assert.Equal(t, 15*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, "TestAgent/2.0", cfg.Fetch.UserAgent)
		assert.Equal(t, 60, cfg.Fetch.DefaultIntervalMinutes)
		assert.Equal(t, 25, cfg.Snapshot.EntryLimit)

		require.Len(t, cfg.Sources, 2)
		assert.Equal(t, "Example Blog", cfg.Sources[0].Name)
		assert.Equal(t, "https://example.com/feed.xml", cfg.Sources[0].FeedURL)
		assert.Equal(t, "https://example.com", cfg.Sources[0].HomepageURL)
		assert.Equal(t, 15, cfg.Sources[0].IntervalMinutes)
		assert.False(t, cfg.Sources[0].Disabled)
		assert.True(t, cfg.Sources[1].Disabled)
	})

	t.Run("defaults", func(t *testing.T) {
		configContent := `
sources:
  - name: Example
    feed_url: https://example.com/feed.xml
`
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		// check server defaults
		assert.Equal(t, ":8080", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)

		// check schedule defaults
		assert.Equal(t, time.Minute, cfg.Schedule.PollInterval)
		assert.Equal(t, 5, cfg.Schedule.MaxWorkers)

		// check fetch defaults
		assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
		assert.Equal(t, "Feedsink/1.0", cfg.Fetch.UserAgent)
		assert.Equal(t, 30, cfg.Fetch.DefaultIntervalMinutes)

		// check snapshot defaults
		assert.Equal(t, 50, cfg.Snapshot.EntryLimit)
	})

	t.Run("env expansion", func(t *testing.T) {
		t.Setenv("TEST_FEED_URL", "https://env.example.com/feed.xml")
		configContent := `
sources:
  - name: Env Feed
    feed_url: ${TEST_FEED_URL}
`
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.NoError(t, err)
		assert.Equal(t, "https://env.example.com/feed.xml", cfg.Sources[0].FeedURL)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configContent := `
invalid yaml content
  with bad indentation
    and no structure
`
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "invalid.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("source without name rejected", func(t *testing.T) {
		configContent := `
sources:
  - feed_url: https://example.com/feed.xml
`
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("duplicate feed url rejected", func(t *testing.T) {
		configContent := `
sources:
  - name: One
    feed_url: https://example.com/feed.xml
  - name: Two
    feed_url: https://example.com/feed.xml
`
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "duplicated")
	})

	t.Run("zero workers rejected", func(t *testing.T) {
		configContent := `
schedule:
  max_workers: -1
`
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "test-config.yml")
		err := os.WriteFile(configPath, []byte(configContent), 0o644)
		require.NoError(t, err)

		cfg, err := Load(configPath)
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "max_workers")
	})
}

func TestConfig_GetServerConfig(t *testing.T) {
	cfg := &Config{}
	cfg.Server.Listen = ":9090"
	cfg.Server.Timeout = 45 * time.Second

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9090", listen)
	assert.Equal(t, 45*time.Second, timeout)
}

func TestConfig_GetSnapshotLimit(t *testing.T) {
	cfg := &Config{}
	cfg.Snapshot.EntryLimit = 25
	assert.Equal(t, 25, cfg.GetSnapshotLimit())
}
