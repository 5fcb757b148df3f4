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
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:feedsync.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Sync SyncConfig `yaml:"sync" json:"sync" jsonschema:"description=Feed synchronization configuration"`

	Fetch FetchConfig `yaml:"fetch" json:"fetch" jsonschema:"description=Feed fetching configuration"`

	Extraction ExtractionConfig `yaml:"extraction" json:"extraction" jsonschema:"description=Full-content extraction configuration"`

	Notifications NotificationsConfig `yaml:"notifications" json:"notifications" jsonschema:"description=Notification delivery configuration"`
}

// SyncConfig holds orchestrator and scheduler settings
type SyncConfig struct {
	UpdateInterval   time.Duration `yaml:"update_interval" json:"update_interval" jsonschema:"default=30m,description=Periodic sync interval"`
	MaxWorkers       int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=5,minimum=1,description=Maximum concurrent feed pipelines"`
	RunTimeout       time.Duration `yaml:"run_timeout" json:"run_timeout" jsonschema:"default=10m,description=Deadline for one full sync run"`
	RefreshSummaries bool          `yaml:"refresh_summaries" json:"refresh_summaries" jsonschema:"default=false,description=Update title and summary of already stored articles"`
}

// FetchConfig holds per-feed HTTP fetch settings
type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Fetch timeout per feed"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Feedsync/1.0,description=User agent for feed requests"`
}

// ExtractionConfig holds full-content extraction settings
type ExtractionConfig struct {
	Enabled       bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Enable full-content extraction"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Extraction timeout per article"`
	UserAgent     string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Feedsync/1.0,description=User agent for article page requests"`
	MinTextLength int           `yaml:"min_text_length" json:"min_text_length" jsonschema:"default=100,description=Minimum summary length before extraction kicks in"`
}

// NotificationsConfig holds notification delivery settings
type NotificationsConfig struct {
	Telegram struct {
		Token  string `yaml:"token" json:"token" jsonschema:"description=Telegram bot token (can use environment variable)"`
		ChatID int64  `yaml:"chat_id" json:"chat_id" jsonschema:"description=Telegram chat to deliver notifications to"`
	} `yaml:"telegram" json:"telegram" jsonschema:"description=Telegram delivery settings"`
	PriorityKeywords []string `yaml:"priority_keywords" json:"priority_keywords,omitempty" jsonschema:"description=Keywords marking an article as priority when the highlight-priority preference is on"`
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
		cfg.Database.DSN = "file:feedsync.db?cache=shared&mode=rwc&_txlock=immediate"
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

	// set defaults for sync
	if cfg.Sync.UpdateInterval == 0 {
		cfg.Sync.UpdateInterval = 30 * time.Minute
	}
	if cfg.Sync.MaxWorkers == 0 {
		cfg.Sync.MaxWorkers = 5
	}
	if cfg.Sync.RunTimeout == 0 {
		cfg.Sync.RunTimeout = 10 * time.Minute
	}

	// set defaults for fetch
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 30 * time.Second
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = "Feedsync/1.0"
	}

	// set defaults for extraction
	if cfg.Extraction.Timeout == 0 {
		cfg.Extraction.Timeout = 30 * time.Second
	}
	if cfg.Extraction.UserAgent == "" {
		cfg.Extraction.UserAgent = cfg.Fetch.UserAgent
	}
	if cfg.Extraction.MinTextLength == 0 {
		cfg.Extraction.MinTextLength = 100
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

	// validate sync config
	if cfg.Sync.MaxWorkers < 1 {
		return fmt.Errorf("sync.max_workers must be at least 1")
	}
	if cfg.Sync.UpdateInterval < time.Minute {
		return fmt.Errorf("sync.update_interval must be at least 1 minute")
	}
	if cfg.Sync.RunTimeout < time.Second {
		return fmt.Errorf("sync.run_timeout must be at least 1 second")
	}

	// validate fetch config
	if cfg.Fetch.Timeout < time.Second {
		return fmt.Errorf("fetch timeout must be at least 1 second")
	}

	// validate extraction config
	if cfg.Extraction.Enabled {
		if cfg.Extraction.Timeout < time.Second {
			return fmt.Errorf("extraction timeout must be at least 1 second")
		}
		if cfg.Extraction.MinTextLength < 0 {
			return fmt.Errorf("extraction min_text_length must be non-negative")
		}
	}

	// validate notifications config
	if cfg.Notifications.Telegram.Token != "" && cfg.Notifications.Telegram.ChatID == 0 {
		return fmt.Errorf("notifications.telegram.chat_id is required when a token is set")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetSyncConfig returns feed synchronization configuration
func (c *Config) GetSyncConfig() SyncConfig {
	return c.Sync
}

// GetExtractionConfig returns content extraction configuration
func (c *Config) GetExtractionConfig() ExtractionConfig {
	return c.Extraction
}

// GetFullConfig returns the full configuration
func (c *Config) GetFullConfig() *Config {
	return c
}
