// Package pipeline wires the resampling, segmentation, and compositing
// capabilities together behind a serialized operation queue.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/photomat/photomat/internal/blend"
	"github.com/photomat/photomat/internal/resample"
	"github.com/photomat/photomat/internal/segment"
)

// DefaultScreenBound caps the width-candidate overflow check when no
// explicit display bound is configured.
const DefaultScreenBound = 4096

// Config holds configuration for the image pipeline and its capabilities.
type Config struct {
	ScreenBound int
	QueueDepth  int
	Segment     segment.Config
}

// DefaultConfig returns a pipeline config with component defaults.
func DefaultConfig() Config {
	return Config{
		ScreenBound: DefaultScreenBound,
		QueueDepth:  16,
	}
}

// Pipeline executes image operations through pluggable capabilities. All
// public operations run on a single serialized worker, one at a time.
type Pipeline struct {
	resampler   resample.Resampler
	segmenter   segment.Segmenter
	compositor  blend.Compositor
	screenBound int
	queue       *queue
}

// Builder constructs a Pipeline with fluent configuration.
type Builder struct {
	cfg        Config
	resampler  resample.Resampler
	segmenter  segment.Segmenter
	compositor blend.Compositor
}

// NewBuilder creates a pipeline builder with defaults.
func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.cfg = cfg
	return b
}

// WithScreenBound sets the maximum display dimension used by the sizing
// policy's overflow check.
func (b *Builder) WithScreenBound(bound int) *Builder {
	if bound > 0 {
		b.cfg.ScreenBound = bound
	}
	return b
}

// WithResampler overrides the resampling capability.
func (b *Builder) WithResampler(r resample.Resampler) *Builder {
	b.resampler = r
	return b
}

// WithSegmenter overrides the segmentation capability. Without this (or a
// model path in the config) segmentation operations report an error.
func (b *Builder) WithSegmenter(s segment.Segmenter) *Builder {
	b.segmenter = s
	return b
}

// WithSegmentModel configures the ONNX segmentation model to load at Build.
func (b *Builder) WithSegmentModel(modelPath string) *Builder {
	if modelPath != "" {
		b.cfg.Segment = segment.DefaultConfig(modelPath)
	}
	return b
}

// WithCompositor overrides the compositing capability.
func (b *Builder) WithCompositor(c blend.Compositor) *Builder {
	b.compositor = c
	return b
}

// Build assembles the pipeline, binding default capabilities where no
// override was given.
func (b *Builder) Build() (*Pipeline, error) {
	p := &Pipeline{
		resampler:   b.resampler,
		segmenter:   b.segmenter,
		compositor:  b.compositor,
		screenBound: b.cfg.ScreenBound,
	}
	if p.screenBound <= 0 {
		p.screenBound = DefaultScreenBound
	}
	if p.resampler == nil {
		p.resampler = resample.Lanczos{}
	}
	if p.compositor == nil {
		p.compositor = blend.Alpha{}
	}
	if p.segmenter == nil && b.cfg.Segment.ModelPath != "" {
		model, err := segment.NewModel(b.cfg.Segment)
		if err != nil {
			return nil, fmt.Errorf("pipeline: failed to load segmentation model: %w", err)
		}
		p.segmenter = model
	}

	p.queue = newQueue(b.cfg.QueueDepth)
	return p, nil
}

// ScreenBound reports the configured display bound.
func (p *Pipeline) ScreenBound() int { return p.screenBound }

// Close drains the operation queue and releases the segmenter.
func (p *Pipeline) Close() error {
	if p.queue != nil {
		p.queue.close()
	}
	if p.segmenter != nil {
		if err := p.segmenter.Close(); err != nil {
			return fmt.Errorf("pipeline: failed to close segmenter: %w", err)
		}
	}
	return nil
}

var ErrNoSegmenter = errors.New("pipeline: no segmenter configured")
