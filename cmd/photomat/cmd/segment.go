package cmd

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/photomat/photomat/internal/utils"
	"github.com/spf13/cobra"
)

// segmentCmd represents the segment command.
var segmentCmd = &cobra.Command{
	Use:   "segment [flags] <image>",
	Short: "Segment the photo subject from its background",
	Long: `Run the segmentation model on an image. Without --background the raw
segmentation mask is written as a grayscale image. With --background the
masked subject is composited onto the given background image.

A segmentation model is required; point --model (or the segment.model_path
config key) at an ONNX portrait matting model.

Examples:
  photomat segment portrait.jpg --model isnet.onnx -o mask.png
  photomat segment portrait.jpg --model isnet.onnx --background beach.jpg -o out.png`,
	Args: cobra.ExactArgs(1),
	RunE: runSegment,
}

func runSegment(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	input := args[0]
	img, _, err := utils.LoadImage(input)
	if err != nil {
		return err
	}

	p, err := buildPipeline(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	backgroundPath, _ := cmd.Flags().GetString("background")
	var out image.Image
	if backgroundPath != "" {
		bg, _, err := utils.LoadImage(backgroundPath)
		if err != nil {
			return fmt.Errorf("failed to load background: %w", err)
		}
		out, err = p.SegmentBlend(cmd.Context(), img, bg)
		if err != nil {
			return err
		}
	} else {
		out, err = p.SegmentMask(cmd.Context(), img)
		if err != nil {
			return err
		}
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = defaultSegmentOutput(input, backgroundPath != "")
	}
	if err := utils.SaveImage(out, outputPath); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), outputPath)
	return nil
}

// defaultSegmentOutput derives an output name next to the input. Masks are
// always PNG; composites keep the input extension.
func defaultSegmentOutput(input string, blended bool) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(input, ext)
	if blended {
		return stem + "_composite" + ext
	}
	return stem + "_mask.png"
}

func init() {
	rootCmd.AddCommand(segmentCmd)

	addModelFlags(segmentCmd)
	segmentCmd.Flags().StringP("background", "b", "", "background image to composite the subject onto")
	segmentCmd.Flags().StringP("output", "o", "", "output file (default: derived from input name)")
}
