package cmd

import (
	"github.com/photomat/photomat/internal/config"
	"github.com/photomat/photomat/internal/pipeline"
	"github.com/photomat/photomat/internal/segment"
	"github.com/spf13/cobra"
)

// addSizingFlags registers the flags shared by every resizing command.
func addSizingFlags(cmd *cobra.Command) {
	cmd.Flags().Int("width", 0, "desired output width in pixels")
	cmd.Flags().Int("height", 0, "desired output height in pixels")
	cmd.Flags().Bool("thumbnail", false, "clamp output into the thumbnail box")
	cmd.Flags().Int("screen-bound", 0, "maximum display dimension for the overflow check")
}

// addModelFlags registers the segmentation model flags.
func addModelFlags(cmd *cobra.Command) {
	cmd.Flags().String("model", "", "path to the ONNX segmentation model")
	cmd.Flags().Int("threads", 0, "intra-op threads for model inference")
}

// buildPipeline assembles a pipeline from the global config with CLI flag
// overrides. Flags that the command did not register are simply skipped.
func buildPipeline(cmd *cobra.Command, cfg *config.Config) (*pipeline.Pipeline, error) {
	screenBound := cfg.Resize.ScreenBound
	if cmd.Flags().Changed("screen-bound") {
		screenBound, _ = cmd.Flags().GetInt("screen-bound")
	}

	modelPath := cfg.Segment.ModelPath
	if cmd.Flags().Changed("model") {
		modelPath, _ = cmd.Flags().GetString("model")
	}
	threads := cfg.Segment.NumThreads
	if cmd.Flags().Changed("threads") {
		threads, _ = cmd.Flags().GetInt("threads")
	}

	b := pipeline.NewBuilder().WithScreenBound(screenBound)
	if modelPath != "" {
		sc := segment.DefaultConfig(modelPath)
		if cfg.Segment.InputName != "" {
			sc.InputName = cfg.Segment.InputName
		}
		if cfg.Segment.OutputName != "" {
			sc.OutputName = cfg.Segment.OutputName
		}
		if cfg.Segment.InputSize > 0 {
			sc.InputSize = cfg.Segment.InputSize
		}
		sc.NumThreads = threads
		b = b.WithConfig(pipeline.Config{
			ScreenBound: screenBound,
			QueueDepth:  cfg.Resize.QueueDepth,
			Segment:     sc,
		})
	}
	return b.Build()
}

// desiredSize reads the --width/--height flags.
func desiredSize(cmd *cobra.Command) (width, height int) {
	width, _ = cmd.Flags().GetInt("width")
	height, _ = cmd.Flags().GetInt("height")
	return width, height
}
