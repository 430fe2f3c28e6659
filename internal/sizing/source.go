package sizing

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	// Register decoders so DecodeConfig can read dimensions from raw bytes.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// ErrSizeUndeterminable is returned when neither an explicit size nor
// decodable image bytes are available to derive a source size from.
var ErrSizeUndeterminable = errors.New("sizing: cannot determine source size")

// ResolveSourceSize returns the source dimensions for a resize request.
// An explicit size wins when present and valid; otherwise the image header
// in data is decoded. If both are missing or unusable, ErrSizeUndeterminable
// is returned.
func ResolveSourceSize(explicit *Size, data []byte) (Size, error) {
	if explicit != nil && explicit.Width > 0 && explicit.Height > 0 {
		return *explicit, nil
	}
	if len(data) == 0 {
		return Size{}, ErrSizeUndeterminable
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Size{}, fmt.Errorf("%w: %v", ErrSizeUndeterminable, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Size{}, ErrSizeUndeterminable
	}
	return Size{Width: cfg.Width, Height: cfg.Height}, nil
}
