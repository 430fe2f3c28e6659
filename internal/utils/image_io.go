// Package utils provides image file loading and saving shared by the CLI,
// batch, and server surfaces.
package utils

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Register decoders for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/disintegration/imaging"
)

// ImageIOError wraps a failure in a named image I/O operation.
type ImageIOError struct {
	Operation string
	Err       error
}

func (e *ImageIOError) Error() string {
	return fmt.Sprintf("image %s error: %v", e.Operation, e.Err)
}

func (e *ImageIOError) Unwrap() error { return e.Err }

// SupportedImageExtensions lists file extensions accepted for loading.
var SupportedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff"}

// IsSupportedImage reports whether the path has a supported image extension.
func IsSupportedImage(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedImageExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// ImageMetadata captures lightweight file and pixel information.
type ImageMetadata struct {
	Path      string
	Format    string
	SizeBytes int64
	Width     int
	Height    int
}

// LoadImage opens and decodes an image file, returning the image and its
// metadata.
func LoadImage(path string) (image.Image, ImageMetadata, error) {
	if path == "" {
		return nil, ImageMetadata{}, &ImageIOError{Operation: "load", Err: errors.New("empty path")}
	}
	if !IsSupportedImage(path) {
		return nil, ImageMetadata{}, &ImageIOError{
			Operation: "load",
			Err:       fmt.Errorf("unsupported format: %s", filepath.Ext(path)),
		}
	}

	f, err := os.Open(path) //nolint:gosec // G304: user-provided image path is the point
	if err != nil {
		return nil, ImageMetadata{}, &ImageIOError{Operation: "load", Err: err}
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return nil, ImageMetadata{}, &ImageIOError{Operation: "load", Err: err}
	}

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, ImageMetadata{}, &ImageIOError{Operation: "decode", Err: err}
	}

	b := img.Bounds()
	meta := ImageMetadata{
		Path:      path,
		Format:    format,
		SizeBytes: fi.Size(),
		Width:     b.Dx(),
		Height:    b.Dy(),
	}
	return img, meta, nil
}

// SaveImage encodes img to path, picking the format from the extension.
// Parent directories are created as needed.
func SaveImage(img image.Image, path string) error {
	if img == nil {
		return &ImageIOError{Operation: "save", Err: errors.New("nil image")}
	}
	if path == "" {
		return &ImageIOError{Operation: "save", Err: errors.New("empty path")}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return &ImageIOError{Operation: "save", Err: err}
	}
	if err := imaging.Save(img, path); err != nil {
		return &ImageIOError{Operation: "save", Err: err}
	}
	return nil
}
