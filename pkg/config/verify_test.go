package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Server.Listen = ":8080"
	cfg.Server.Timeout = 30 * time.Second
	cfg.Sync.UpdateInterval = 30 * time.Minute
	cfg.Sync.MaxWorkers = 5
	cfg.Sync.RunTimeout = 10 * time.Minute
	return cfg
}

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	assert.NoError(t, VerifyAgainstEmbeddedSchema(validConfig()))
}

func TestVerifyAgainstEmbeddedSchema_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mangle func(cfg *Config)
		errMsg string
	}{
		{
			name:   "missing listen",
			mangle: func(cfg *Config) { cfg.Server.Listen = "" },
			errMsg: "server.listen is required",
		},
		{
			name:   "missing server timeout",
			mangle: func(cfg *Config) { cfg.Server.Timeout = 0 },
			errMsg: "server.timeout is required",
		},
		{
			name:   "missing update interval",
			mangle: func(cfg *Config) { cfg.Sync.UpdateInterval = 0 },
			errMsg: "sync.update_interval is required",
		},
		{
			name: "extraction enabled without timeout",
			mangle: func(cfg *Config) {
				cfg.Extraction.Enabled = true
				cfg.Extraction.Timeout = 0
			},
			errMsg: "extraction.timeout is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mangle(cfg)
			err := VerifyAgainstEmbeddedSchema(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)

	data, err := schema.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), "update_interval")
	assert.Contains(t, string(data), "max_workers")
}
