package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *Config {
	cfg := &Config{}
	cfg.Server.Listen = ":8080"
	cfg.Server.Timeout = 30 * time.Second
	cfg.Database.DSN = "file:test.db"
	cfg.Schedule.PollInterval = time.Minute
	cfg.Schedule.MaxWorkers = 5
	cfg.Fetch.Timeout = 30 * time.Second
	cfg.Fetch.UserAgent = "Feedsink/1.0"
	cfg.Fetch.DefaultIntervalMinutes = 30
	cfg.Snapshot.EntryLimit = 50
	cfg.Sources = []SourceConfig{
		{Name: "Example", FeedURL: "https://example.com/feed.xml"},
	}
	return cfg
}

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		err := VerifyAgainstEmbeddedSchema(validTestConfig())
		require.NoError(t, err)
	})

	t.Run("missing server listen", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.Server.Listen = ""
		err := VerifyAgainstEmbeddedSchema(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.listen is required")
	})

	t.Run("source without feed url", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.Sources = append(cfg.Sources, SourceConfig{Name: "Broken"})
		err := VerifyAgainstEmbeddedSchema(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "feed_url is required")
	})
}

func TestValidateRequiredFields(t *testing.T) {
	t.Run("valid minimal config", func(t *testing.T) {
		err := validateRequiredFields(validTestConfig())
		require.NoError(t, err)
	})

	t.Run("missing server timeout", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.Server.Timeout = 0
		err := validateRequiredFields(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server.timeout is required")
	})

	t.Run("source without name", func(t *testing.T) {
		cfg := validTestConfig()
		cfg.Sources[0].Name = ""
		err := validateRequiredFields(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)

	// verify schema can be marshaled to JSON
	data, err := schema.MarshalJSON()
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	// verify it contains expected fields
	schemaStr := string(data)
	assert.Contains(t, schemaStr, "Config")
	assert.Contains(t, schemaStr, "server")
	assert.Contains(t, schemaStr, "sources")
}
