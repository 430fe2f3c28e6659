package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()
	v := viper.New()
	setDefaults(v)
	var cfg Config
	require.NoError(t, v.Unmarshal(&cfg))
	return &cfg
}

func TestDefaultsValidate(t *testing.T) {
	cfg := defaultConfig(t)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultScreenBound, cfg.Resize.ScreenBound)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, DefaultSummaryFormat, cfg.Batch.SummaryFormat)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"zero screen bound", func(c *Config) { c.Resize.ScreenBound = 0 }},
		{"negative queue depth", func(c *Config) { c.Resize.QueueDepth = -1 }},
		{"zero input size", func(c *Config) { c.Segment.InputSize = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"zero upload cap", func(c *Config) { c.Server.MaxUploadMB = 0 }},
		{"zero workers", func(c *Config) { c.Batch.Workers = 0 }},
		{"bad summary format", func(c *Config) { c.Batch.SummaryFormat = "xml" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := defaultConfig(t)
			c.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
