package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Default values applied when neither a config file, environment variable,
// nor flag provides one.
const (
	DefaultScreenBound     = 4096
	DefaultQueueDepth      = 16
	DefaultSegmentSize     = 512
	DefaultServerHost      = "localhost"
	DefaultServerPort      = 8080
	DefaultMaxUploadMB     = 50
	DefaultTimeoutSec      = 60
	DefaultShutdownTimeout = 10
	DefaultBatchWorkers    = 4
	DefaultSummaryFormat   = "json"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("verbose", false)

	v.SetDefault("resize.screen_bound", DefaultScreenBound)
	v.SetDefault("resize.queue_depth", DefaultQueueDepth)

	v.SetDefault("segment.input_name", "input")
	v.SetDefault("segment.output_name", "output")
	v.SetDefault("segment.input_size", DefaultSegmentSize)
	v.SetDefault("segment.num_threads", 0)

	v.SetDefault("server.host", DefaultServerHost)
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.max_upload_mb", DefaultMaxUploadMB)
	v.SetDefault("server.timeout_sec", DefaultTimeoutSec)
	v.SetDefault("server.shutdown_timeout", DefaultShutdownTimeout)

	v.SetDefault("batch.workers", DefaultBatchWorkers)
	v.SetDefault("batch.summary_format", DefaultSummaryFormat)
	v.SetDefault("batch.continue_on_error", false)
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q (want debug, info, warn, or error)", c.LogLevel)
	}

	if c.Resize.ScreenBound <= 0 {
		return fmt.Errorf("resize.screen_bound must be positive, got %d", c.Resize.ScreenBound)
	}
	if c.Resize.QueueDepth < 0 {
		return fmt.Errorf("resize.queue_depth must not be negative, got %d", c.Resize.QueueDepth)
	}
	if c.Segment.InputSize <= 0 {
		return fmt.Errorf("segment.input_size must be positive, got %d", c.Segment.InputSize)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be positive, got %d", c.Server.MaxUploadMB)
	}
	if c.Batch.Workers <= 0 {
		return fmt.Errorf("batch.workers must be positive, got %d", c.Batch.Workers)
	}
	switch strings.ToLower(c.Batch.SummaryFormat) {
	case "json", "yaml":
	default:
		return fmt.Errorf("invalid batch.summary_format %q (want json or yaml)", c.Batch.SummaryFormat)
	}
	return nil
}
