package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/photomat/photomat/internal/pdf"
	"github.com/photomat/photomat/internal/sizing"
	"github.com/photomat/photomat/internal/utils"
	"github.com/spf13/cobra"
)

// pdfCmd represents the pdf command.
var pdfCmd = &cobra.Command{
	Use:   "pdf [flags] <document.pdf>",
	Short: "Extract and resize embedded PDF page images",
	Long: `Extract the images embedded in a PDF and run each through the resize
pipeline. Output files are named page_<page>_image_<index> with a _resized or
_thumb suffix.

Examples:
  photomat pdf scans.pdf --width 1200 --height 1600
  photomat pdf scans.pdf --pages 1-5 --width 400 --height 400 --thumbnail`,
	Args: cobra.ExactArgs(1),
	RunE: runPDF,
}

func runPDF(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	width, height := desiredSize(cmd)
	if width <= 0 || height <= 0 {
		return fmt.Errorf("both --width and --height must be positive")
	}
	thumbnail, _ := cmd.Flags().GetBool("thumbnail")
	pages, _ := cmd.Flags().GetString("pages")
	outputDir, _ := cmd.Flags().GetString("output-dir")
	if outputDir == "" {
		outputDir = filepath.Dir(args[0])
	}

	images, err := pdf.ExtractImages(args[0], pages)
	if err != nil {
		return err
	}
	if len(images) == 0 {
		return fmt.Errorf("no embedded images found in %s", args[0])
	}

	p, err := buildPipeline(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	desired := sizing.Size{Width: width, Height: height}
	suffix := "_resized"
	if thumbnail {
		suffix = "_thumb"
	}

	for _, pi := range images {
		out, err := p.Resize(cmd.Context(), pi.Image, desired, thumbnail)
		if err != nil {
			return fmt.Errorf("page %d image %d: %w", pi.Page, pi.Index, err)
		}
		name := fmt.Sprintf("page_%d_image_%d%s.png", pi.Page, pi.Index, suffix)
		outPath := filepath.Join(outputDir, name)
		if err := utils.SaveImage(out, outPath); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), outPath)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(pdfCmd)

	addSizingFlags(pdfCmd)
	pdfCmd.Flags().String("pages", "", `page selection like "1-5" or "1,3,7" (default: all pages)`)
	pdfCmd.Flags().StringP("output-dir", "o", "", "directory for extracted output (default: next to the PDF)")
}
