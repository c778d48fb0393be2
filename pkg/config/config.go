package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:feedsink.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule struct {
		PollInterval time.Duration `yaml:"poll_interval" json:"poll_interval" jsonschema:"default=1m,description=How often the scheduler scans for due sources"`
		MaxWorkers   int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,description=Maximum concurrent refresh workers"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Fetch struct {
		Timeout                time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP timeout for feed and avatar requests"`
		UserAgent              string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Feedsink/1.0,description=User agent for outgoing HTTP requests"`
		DefaultIntervalMinutes int           `yaml:"default_interval_minutes" json:"default_interval_minutes" jsonschema:"default=30,description=Sync interval for sources that don't set one"`
	} `yaml:"fetch" json:"fetch" jsonschema:"description=Feed fetching configuration"`

	Snapshot struct {
		EntryLimit int `yaml:"entry_limit" json:"entry_limit" jsonschema:"default=50,description=Default number of entries in the merged feed snapshot"`
	} `yaml:"snapshot" json:"snapshot" jsonschema:"description=Feed snapshot configuration"`

	Sources []SourceConfig `yaml:"sources" json:"sources" jsonschema:"description=Feed sources to register on startup"`
}

// SourceConfig describes a feed source registered on startup.
// Startup registration is idempotent, an existing source with the same
// feed_url is left untouched.
type SourceConfig struct {
	Name            string `yaml:"name" json:"name" jsonschema:"required,description=Display name of the source"`
	FeedURL         string `yaml:"feed_url" json:"feed_url" jsonschema:"required,description=RSS or Atom feed URL"`
	HomepageURL     string `yaml:"homepage_url" json:"homepage_url" jsonschema:"description=Homepage URL used for avatar discovery"`
	Description     string `yaml:"description" json:"description" jsonschema:"description=Short description of the source"`
	Language        string `yaml:"language" json:"language" jsonschema:"description=Primary language code (e.g. en)"`
	Category        string `yaml:"category" json:"category" jsonschema:"description=Free-form category label"`
	IntervalMinutes int    `yaml:"interval_minutes" json:"interval_minutes" jsonschema:"description=Sync interval in minutes (falls back to fetch.default_interval_minutes)"`
	Disabled        bool   `yaml:"disabled" json:"disabled" jsonschema:"default=false,description=Register the source as inactive"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:feedsink.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// set defaults for schedule
	if cfg.Schedule.PollInterval == 0 {
		cfg.Schedule.PollInterval = time.Minute
	}
	if cfg.Schedule.MaxWorkers == 0 {
		cfg.Schedule.MaxWorkers = 5
	}

	// set defaults for fetch
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 30 * time.Second
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = "Feedsink/1.0"
	}
	if cfg.Fetch.DefaultIntervalMinutes == 0 {
		cfg.Fetch.DefaultIntervalMinutes = 30
	}

	// set defaults for snapshot
	if cfg.Snapshot.EntryLimit == 0 {
		cfg.Snapshot.EntryLimit = 50
	}

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	// validate schedule config
	if cfg.Schedule.PollInterval < time.Second {
		return fmt.Errorf("schedule.poll_interval must be at least 1 second")
	}
	if cfg.Schedule.MaxWorkers < 1 {
		return fmt.Errorf("schedule.max_workers must be at least 1")
	}

	// validate fetch config
	if cfg.Fetch.Timeout < time.Second {
		return fmt.Errorf("fetch.timeout must be at least 1 second")
	}
	if cfg.Fetch.DefaultIntervalMinutes < 1 {
		return fmt.Errorf("fetch.default_interval_minutes must be at least 1")
	}

	// validate snapshot config
	if cfg.Snapshot.EntryLimit < 1 {
		return fmt.Errorf("snapshot.entry_limit must be at least 1")
	}

	// validate seed sources
	seen := make(map[string]struct{}, len(cfg.Sources))
	for i, src := range cfg.Sources {
		if src.Name == "" {
			return fmt.Errorf("sources[%d].name is required", i)
		}
		if src.FeedURL == "" {
			return fmt.Errorf("sources[%d].feed_url is required", i)
		}
		if src.IntervalMinutes < 0 {
			return fmt.Errorf("sources[%d].interval_minutes must be non-negative", i)
		}
		if _, ok := seen[src.FeedURL]; ok {
			return fmt.Errorf("sources[%d].feed_url %q is duplicated", i, src.FeedURL)
		}
		seen[src.FeedURL] = struct{}{}
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetSnapshotLimit returns the default snapshot entry limit
func (c *Config) GetSnapshotLimit() int {
	return c.Snapshot.EntryLimit
}

// GetFullConfig returns the full configuration
func (c *Config) GetFullConfig() *Config {
	return c
}
