package config

// Config represents the complete configuration for the photomat application.
// It covers all commands (resize, segment, pdf, serve) and loads from
// configuration files, environment variables, and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Resize policy settings
	Resize ResizeConfig `mapstructure:"resize" yaml:"resize" json:"resize"`

	// Segmentation settings
	Segment SegmentConfig `mapstructure:"segment" yaml:"segment" json:"segment"`

	// Server settings (serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// Batch processing settings
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// ResizeConfig contains sizing-policy and resampling settings.
type ResizeConfig struct {
	// ScreenBound caps the landscape width candidate; outputs that would
	// exceed it fall back to fitting the desired width.
	ScreenBound int `mapstructure:"screen_bound" yaml:"screen_bound" json:"screen_bound"`

	// QueueDepth bounds how many operations may wait on the serialized
	// pipeline worker.
	QueueDepth int `mapstructure:"queue_depth" yaml:"queue_depth" json:"queue_depth"`
}

// SegmentConfig contains ONNX segmentation model settings.
type SegmentConfig struct {
	ModelPath  string `mapstructure:"model_path" yaml:"model_path" json:"model_path"`
	InputName  string `mapstructure:"input_name" yaml:"input_name" json:"input_name"`
	OutputName string `mapstructure:"output_name" yaml:"output_name" json:"output_name"`
	InputSize  int    `mapstructure:"input_size" yaml:"input_size" json:"input_size"`
	NumThreads int    `mapstructure:"num_threads" yaml:"num_threads" json:"num_threads"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	MaxUploadMB     int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Workers         int    `mapstructure:"workers" yaml:"workers" json:"workers"`
	OutputDir       string `mapstructure:"output_dir" yaml:"output_dir" json:"output_dir"`
	SummaryFormat   string `mapstructure:"summary_format" yaml:"summary_format" json:"summary_format"`
	ContinueOnError bool   `mapstructure:"continue_on_error" yaml:"continue_on_error" json:"continue_on_error"`
}
