package cmd

import (
	"fmt"

	"github.com/photomat/photomat/internal/batch"
	"github.com/photomat/photomat/internal/sizing"
	"github.com/spf13/cobra"
)

// resizeCmd represents the resize command.
var resizeCmd = &cobra.Command{
	Use:   "resize [flags] <image-or-directory> [...]",
	Short: "Resize images with the adaptive sizing policy",
	Long: `Resize one or more images. The output size preserves the source aspect
ratio: the desired dimensions act as a bounding request, not an exact target.
Directories are walked recursively for supported image files.

Examples:
  photomat resize photo.jpg --width 800 --height 600
  photomat resize ./vacation --width 1920 --height 1080 --output-dir ./resized
  photomat resize photo.jpg --width 400 --height 400 --thumbnail`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResize,
}

func runResize(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	width, height := desiredSize(cmd)
	if width <= 0 || height <= 0 {
		return fmt.Errorf("both --width and --height must be positive")
	}
	thumbnail, _ := cmd.Flags().GetBool("thumbnail")

	outputDir := cfg.Batch.OutputDir
	if cmd.Flags().Changed("output-dir") {
		outputDir, _ = cmd.Flags().GetString("output-dir")
	}
	workers := cfg.Batch.Workers
	if cmd.Flags().Changed("workers") {
		workers, _ = cmd.Flags().GetInt("workers")
	}
	continueOnError := cfg.Batch.ContinueOnError
	if cmd.Flags().Changed("continue-on-error") {
		continueOnError, _ = cmd.Flags().GetBool("continue-on-error")
	}
	format := cfg.Batch.SummaryFormat
	if cmd.Flags().Changed("format") {
		format, _ = cmd.Flags().GetString("format")
	}

	files, err := batch.DiscoverImages(args)
	if err != nil {
		return err
	}

	p, err := buildPipeline(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	summary, err := batch.Process(cmd.Context(), p, files, batch.Options{
		Desired:         sizing.Size{Width: width, Height: height},
		Thumbnail:       thumbnail,
		OutputDir:       outputDir,
		Workers:         workers,
		ContinueOnError: continueOnError,
	})
	if werr := batch.WriteSummary(cmd.OutOrStdout(), summary, format); werr != nil {
		return werr
	}
	return err
}

func init() {
	rootCmd.AddCommand(resizeCmd)

	addSizingFlags(resizeCmd)
	resizeCmd.Flags().StringP("output-dir", "o", "", "directory for resized output (default: next to input)")
	resizeCmd.Flags().Int("workers", 0, "number of parallel workers (default: CPU count)")
	resizeCmd.Flags().Bool("continue-on-error", false, "process remaining files after a failure")
	resizeCmd.Flags().String("format", "", "summary output format (json, yaml)")
}
