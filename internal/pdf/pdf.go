// Package pdf extracts embedded page images from PDF files so they can be
// fed through the resize pipeline.
package pdf

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/photomat/photomat/internal/utils"
)

// PageImage is one embedded image together with the page it came from.
type PageImage struct {
	Page  int
	Index int
	Image image.Image
}

// ExtractImages pulls the embedded images of a PDF, optionally restricted to
// a page selection like "1-5" or "1,3,7". Results are ordered by page, then
// by image index within the page.
func ExtractImages(filename, pageRange string) ([]PageImage, error) {
	pages, err := parsePageRange(pageRange)
	if err != nil {
		return nil, fmt.Errorf("invalid page range %q: %w", pageRange, err)
	}

	tempDir, err := os.MkdirTemp("", "photomat-pdf-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	var selection []string
	for _, p := range pages {
		selection = append(selection, strconv.Itoa(p))
	}

	if err := api.ExtractImagesFile(filename, tempDir, selection, nil); err != nil {
		return nil, fmt.Errorf("failed to extract images from PDF: %w", err)
	}

	out, err := collectExtracted(tempDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load extracted images: %w", err)
	}
	return out, nil
}

// collectExtracted loads the files pdfcpu wrote, which are named
// page_<num>_image_<idx>.<ext>, skipping anything unparsable.
func collectExtracted(dir string) ([]PageImage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var out []PageImage
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		page, idx, err := parseExtractedName(e.Name())
		if err != nil {
			continue
		}
		img, _, err := utils.LoadImage(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		out = append(out, PageImage{Page: page, Index: idx, Image: img})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Page != out[j].Page {
			return out[i].Page < out[j].Page
		}
		return out[i].Index < out[j].Index
	})
	return out, nil
}

// parseExtractedName splits a pdfcpu output name into page and image index.
func parseExtractedName(name string) (page, index int, err error) {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.Split(stem, "_")
	// page_<num>_image_<idx>
	if len(parts) < 4 || parts[0] != "page" || parts[2] != "image" {
		return 0, 0, errors.New("not an extracted page image")
	}
	page, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid page number %q", parts[1])
	}
	index, err = strconv.Atoi(parts[3])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid image index %q", parts[3])
	}
	return page, index, nil
}

// parsePageRange parses selections like "3", "1-5", or "1,3,5-7". An empty
// string selects all pages.
func parsePageRange(pageRange string) ([]int, error) {
	if pageRange == "" {
		return nil, nil
	}

	var pages []int
	for _, part := range strings.Split(pageRange, ",") {
		part = strings.TrimSpace(part)
		token, err := parseRangeToken(part)
		if err != nil {
			return nil, err
		}
		pages = append(pages, token...)
	}
	return pages, nil
}

func parseRangeToken(part string) ([]int, error) {
	if !strings.Contains(part, "-") {
		page, err := strconv.Atoi(part)
		if err != nil || page < 1 {
			return nil, fmt.Errorf("invalid page number: %s", part)
		}
		return []int{page}, nil
	}

	bounds := strings.SplitN(part, "-", 2)
	start, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid start page: %s", bounds[0])
	}
	end, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid end page: %s", bounds[1])
	}
	if start < 1 || start > end {
		return nil, fmt.Errorf("invalid range %s", part)
	}
	out := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		out = append(out, i)
	}
	return out, nil
}
