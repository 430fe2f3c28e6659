// Package batch resizes collections of image files through the pipeline
// using a bounded worker pool, and renders machine-readable summaries.
package batch

import (
	"time"

	"github.com/photomat/photomat/internal/sizing"
)

// Options controls a batch run.
type Options struct {
	Desired         sizing.Size
	Thumbnail       bool
	OutputDir       string
	Workers         int
	ContinueOnError bool
}

// FileResult records the outcome for a single input file.
type FileResult struct {
	Input    string        `json:"input" yaml:"input"`
	Output   string        `json:"output,omitempty" yaml:"output,omitempty"`
	Width    int           `json:"width,omitempty" yaml:"width,omitempty"`
	Height   int           `json:"height,omitempty" yaml:"height,omitempty"`
	Duration time.Duration `json:"duration_ns" yaml:"duration_ns"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary aggregates a batch run.
type Summary struct {
	Total     int           `json:"total" yaml:"total"`
	Succeeded int           `json:"succeeded" yaml:"succeeded"`
	Failed    int           `json:"failed" yaml:"failed"`
	Duration  time.Duration `json:"duration_ns" yaml:"duration_ns"`
	Results   []FileResult  `json:"results" yaml:"results"`
}
